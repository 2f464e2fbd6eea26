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

package config

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"

	"github.com/walteh/replacer/pkg/report"
	"github.com/walteh/replacer/pkg/store"
)

// 🎛️ Defaults
const (
	DefaultRoot    = "files"
	DefaultHost    = "0.0.0.0"
	DefaultPort    = 5000
	DefaultBackend = store.BackendFS
)

// 📚 Config represents the complete configuration
type Config struct {
	Root           string   `json:"root,omitempty" yaml:"root,omitempty" hcl:"root,optional"`
	Report         string   `json:"report,omitempty" yaml:"report,omitempty" hcl:"report,optional"`
	Backend        string   `json:"backend,omitempty" yaml:"backend,omitempty" hcl:"backend,optional"`
	Host           string   `json:"host,omitempty" yaml:"host,omitempty" hcl:"host,optional"`
	Port           int      `json:"port,omitempty" yaml:"port,omitempty" hcl:"port,optional"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty" hcl:"allowed_origins,optional"`
	Debug          bool     `json:"debug,omitempty" yaml:"debug,omitempty" hcl:"debug,optional"`
}

// 🏭 Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Root:           DefaultRoot,
		Report:         report.DefaultPath,
		Backend:        DefaultBackend,
		Host:           DefaultHost,
		Port:           DefaultPort,
		AllowedOrigins: []string{"*"},
	}
}

// 🎯 Load resolves defaults, the optional file at path, and the environment
func Load(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, true)
}

// 🎯 LoadStore is Load for commands that only open the store; the listener
// variables PORT, HOST and ALLOWED_ORIGINS are not read
func LoadStore(ctx context.Context, path string) (*Config, error) {
	return load(ctx, path, false)
}

func load(ctx context.Context, path string, server bool) (*Config, error) {
	logger := zerolog.Ctx(ctx)

	cfg := Default()

	if path != "" {
		logger.Debug().Str("path", path).Msg("loading configuration")

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Errorf("reading config file: %w", err)
		}

		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}

		fileCfg, err := p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
		cfg.Merge(fileCfg)
	}

	cfg.ApplyStoreEnv(os.LookupEnv)
	if server {
		if err := cfg.ApplyServerEnv(os.LookupEnv); err != nil {
			return nil, errors.Errorf("reading environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	logger.Debug().Str("config", cfg.String()).Msg("configuration loaded")
	return cfg, nil
}

// 🔀 Merge overlays every non-zero field of other onto cfg
func (cfg *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if other.Root != "" {
		cfg.Root = other.Root
	}
	if other.Report != "" {
		cfg.Report = other.Report
	}
	if other.Backend != "" {
		cfg.Backend = other.Backend
	}
	if other.Host != "" {
		cfg.Host = other.Host
	}
	if other.Port != 0 {
		cfg.Port = other.Port
	}
	if len(other.AllowedOrigins) > 0 {
		cfg.AllowedOrigins = other.AllowedOrigins
	}
	if other.Debug {
		cfg.Debug = true
	}
}

// 🌍 ApplyStoreEnv overlays REPLACER_ROOT, REPLACER_REPORT and STORE_BACKEND
func (cfg *Config) ApplyStoreEnv(lookup func(string) (string, bool)) {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str("REPLACER_ROOT", &cfg.Root)
	str("REPLACER_REPORT", &cfg.Report)
	str("STORE_BACKEND", &cfg.Backend)
}

// ApplyServerEnv overlays HOST, PORT and ALLOWED_ORIGINS
func (cfg *Config) ApplyServerEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("HOST"); ok && v != "" {
		cfg.Host = v
	}

	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Errorf("PORT %q is not a number: %w", v, err)
		}
		cfg.Port = port
	}

	if v, ok := lookup("ALLOWED_ORIGINS"); ok && v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.AllowedOrigins = origins
	}

	return nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Report == "" {
		return errors.Errorf("report is required")
	}
	switch cfg.Backend {
	case store.BackendFS, store.BackendMemory, store.BackendSqlite:
	default:
		return errors.Errorf("backend %q is not one of fs, sqlite, memory", cfg.Backend)
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return errors.Errorf("port %d is out of range", cfg.Port)
	}

	cfg.Root = filepath.Clean(cfg.Root)
	cfg.Report = filepath.Clean(cfg.Report)

	return nil
}

// Address returns the host:port the service listens on
func (cfg *Config) Address() string {
	return net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s store at %s, report %s, listening on %s", cfg.Backend, cfg.Root, cfg.Report, cfg.Address())
}
