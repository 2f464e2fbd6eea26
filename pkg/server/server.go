// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/store"
)

// ShutdownTimeout bounds how long in-flight requests get once the server is stopping
const ShutdownTimeout = 5 * time.Second

// 🏗️ NewHTTPHandler assembles routes, CORS and access logging for cfg
func NewHTTPHandler(cfg *config.Config, st store.Store, logger zerolog.Logger) http.Handler {
	h := New(st, cfg.Report, &logger)
	return loggingMiddleware(corsMiddleware(h, cfg.AllowedOrigins), logger)
}

// 🚀 Run listens on addr and serves handler until ctx is done
func Run(ctx context.Context, addr string, handler http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Errorf("listening on %s: %w", addr, err)
	}
	return Serve(ctx, ln, handler)
}

// Serve serves handler on ln, then shuts down gracefully once ctx is done.
// A nil error means the server stopped because ctx was cancelled.
func Serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	logger := zerolog.Ctx(ctx)
	srv := &http.Server{Handler: handler}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("addr", ln.Addr().String()).Msg("listening")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Errorf("serving: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errors.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}
