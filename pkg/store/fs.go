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

package store

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileStore keeps one file per document directly under root
type FileStore struct {
	root     string
	filePerm os.FileMode
	dirPerm  os.FileMode
}

var _ Store = (*FileStore)(nil)

// 🏭 NewFileStore creates a store rooted at dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		root:     filepath.Clean(dir),
		filePerm: 0644,
		dirPerm:  0755,
	}
}

// Root returns the directory documents live in
func (s *FileStore) Root() string {
	return s.root
}

// 🔍 path maps a validated document name onto the root
func (s *FileStore) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list", "", err)
	}

	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, unavailable("list", "", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), tempPrefix) {
			continue
		}
		names = append(names, entry.Name())
	}

	zerolog.Ctx(ctx).Debug().Str("root", s.root).Int("count", len(names)).Msg("listed documents")
	return names, nil
}

func (s *FileStore) Read(ctx context.Context, name string) (string, error) {
	path, err := s.path(name)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", unavailable("read", name, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound("read", name, nil)
		}
		return "", unavailable("read", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("read document")
	return string(content), nil
}

func (s *FileStore) Exists(ctx context.Context, name string) (bool, error) {
	path, err := s.path(name)
	if err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, unavailable("stat", name, err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, unavailable("stat", name, err)
	}
	return true, nil
}

func (s *FileStore) Write(ctx context.Context, name, content string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable("write", name, err)
	}

	if err := os.MkdirAll(s.root, s.dirPerm); err != nil {
		return unavailable("write", name, errors.Errorf("creating root directory: %w", err))
	}

	if err := s.writeFileAtomic(path, []byte(content)); err != nil {
		return unavailable("write", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("bytes", len(content)).Msg("wrote document")
	return nil
}

func (s *FileStore) Close() error {
	return nil
}

// writeFileAtomic writes to a temp file in the same directory and renames it over path
func (s *FileStore) writeFileAtomic(path string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), tempPrefix+"*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// removing after a successful rename is a harmless ENOENT
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, s.filePerm); err != nil {
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
