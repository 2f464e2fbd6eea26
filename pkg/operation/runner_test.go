package operation

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/text"
)

// funcOperation adapts a function to Operation
type funcOperation struct {
	name string
	fn   func(ctx context.Context) error
}

func (f funcOperation) Name() string                      { return f.name }
func (f funcOperation) Execute(ctx context.Context) error { return f.fn(ctx) }

func TestOperationRunner(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name  string
		fn    func(ctx context.Context) error
		errIs error
	}{
		{name: "success", fn: func(ctx context.Context) error { return nil }},
		{name: "error_passthrough", fn: func(ctx context.Context) error { return errBoom }, errIs: errBoom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.Nop()
			runner := NewRunner(&logger)

			err := runner.Run(context.Background(), funcOperation{name: "fake", fn: tt.fn})
			if tt.errIs == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.errIs)
		})
	}
}

func TestOperationRunner_CancelledBeforeRun(t *testing.T) {
	logger := zerolog.Nop()
	runner := NewRunner(&logger)

	ctx, cancel := context.WithCancel(testContext())
	cancel()

	called := false
	err := runner.Run(ctx, funcOperation{name: "never", fn: func(context.Context) error {
		called = true
		return nil
	}})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called, "operation must not start once cancelled")
}

func TestOperationRunner_FailureMeansNoWrite(t *testing.T) {
	ctx, cancel := context.WithCancel(testContext())
	st := store.NewMemoryStore()
	require.NoError(t, st.Write(ctx, "in.txt", "abc"))
	cancel()

	logger := zerolog.Nop()
	op := NewReplaceOperation(Options{Store: st}, "in.txt", "out.txt", text.ReplacementRule{FromText: "a", ToText: "b"})
	require.Error(t, NewRunner(&logger).Run(ctx, op))

	ok, err := st.Exists(context.Background(), "out.txt")
	require.NoError(t, err)
	assert.False(t, ok)
}
