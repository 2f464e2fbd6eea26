package store

import (
	"path/filepath"

	"gitlab.com/tozd/go/errors"
)

const (
	BackendFS     = "fs"
	BackendMemory = "memory"
	BackendSqlite = "sqlite"

	// SqliteFile is the database file name used by the sqlite backend inside root
	SqliteFile = "replacer.db"
)

// New creates a Store based on the backend name.
//
// Supported backends:
//
//	"fs"     - one file per document in root (default)
//	"sqlite" - SQLite database at root/replacer.db
//	"memory" - in-memory (ephemeral, for testing)
func New(backend, root string) (Store, error) {
	switch backend {
	case BackendFS, "":
		return NewFileStore(root), nil
	case BackendSqlite:
		return NewSqliteStore(filepath.Join(root, SqliteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, invalid("open", backend,
			errors.Errorf("unknown store backend %q (supported: fs, sqlite, memory)", backend))
	}
}
