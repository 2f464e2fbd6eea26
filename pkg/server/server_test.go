package server_test

import (
	"bytes"
	"context"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/server"
	"github.com/walteh/replacer/pkg/store"
)

func TestServeShutsDownOnCancel(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	cfg := config.Default()
	cfg.Report = filepath.Join(t.TempDir(), "report.json")
	h := server.NewHTTPHandler(cfg, store.NewMemoryStore(), logger)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(logger.WithContext(context.Background()))
	done := make(chan error, 1)
	go func() {
		done <- server.Serve(ctx, ln, h)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(server.ShutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, buf.String(), `"path":"/health"`)
	assert.Contains(t, buf.String(), `"status":200`)
}

func TestRunBadAddress(t *testing.T) {
	err := server.Run(context.Background(), "256.0.0.1:-1", http.NotFoundHandler())
	assert.Error(t, err)
}
