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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/config"
	"github.com/walteh/replacer/pkg/server"
	"github.com/walteh/replacer/pkg/store"
	"github.com/walteh/replacer/pkg/version"
)

type rootOpts struct {
	configFile string
	debug      bool
	host       string
	port       int
	root       string
	report     string
	backend    string
}

func newRootCmd(out io.Writer) *cobra.Command {
	return (&rootOpts{}).command(out)
}

func (opts *rootOpts) command(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "replacerd",
		Short:        "Serve the replacer file store over HTTP",
		Args:         cobra.NoArgs,
		Version:      version.Get().Version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(out, opts.debug)
			ctx := logger.WithContext(cmd.Context())

			cfg, err := opts.resolve(ctx, cmd)
			if err != nil {
				logger.Error().Err(err).Msg("resolving configuration")
				return err
			}
			if cfg.Debug && !opts.debug {
				logger = newLogger(out, true)
				ctx = logger.WithContext(ctx)
			}

			st, err := store.New(cfg.Backend, cfg.Root)
			if err != nil {
				logger.Error().Err(err).Msg("opening store")
				return errors.Errorf("opening %s store: %w", cfg.Backend, err)
			}
			defer st.Close()

			start := logger.Info().Str("config", cfg.String())
			if fsStore, ok := st.(*store.FileStore); ok {
				start = start.Str("root", fsStore.Root())
			}
			start.Msg("starting replacerd")

			if err := server.Run(ctx, cfg.Address(), server.NewHTTPHandler(cfg, st, logger)); err != nil {
				logger.Error().Err(err).Msg("server stopped")
				return err
			}

			logger.Info().Msg("server stopped")
			return nil
		},
	}
	cmd.SetVersionTemplate(version.Get().Format("replacerd"))

	cmd.Flags().StringVarP(&opts.configFile, "config", "c", "", "config file path (.yaml, .json, .hcl)")
	cmd.Flags().BoolVarP(&opts.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.host, "host", config.DefaultHost, "interface to listen on")
	cmd.Flags().IntVarP(&opts.port, "port", "p", config.DefaultPort, "port to listen on")
	cmd.Flags().StringVar(&opts.root, "root", config.DefaultRoot, "directory holding the files")
	cmd.Flags().StringVar(&opts.report, "report", config.Default().Report, "report document served at /report")
	cmd.Flags().StringVar(&opts.backend, "backend", config.DefaultBackend, "storage backend (fs, sqlite, memory)")

	return cmd
}

func newLogger(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// resolve layers explicitly set flags over the file and environment configuration
func (opts *rootOpts) resolve(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx, opts.configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host = opts.host
	}
	if flags.Changed("port") {
		cfg.Port = opts.port
	}
	if flags.Changed("root") {
		cfg.Root = opts.root
	}
	if flags.Changed("report") {
		cfg.Report = opts.report
	}
	if flags.Changed("backend") {
		cfg.Backend = opts.backend
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}
