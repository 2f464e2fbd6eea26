package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"gitlab.com/tozd/go/errors"
)

// SqliteStore keeps every document in a single SQLite database.
//
// Tables:
//
//	documents(name, content)  PRIMARY KEY (name)
type SqliteStore struct {
	db *sql.DB
}

var _ Store = (*SqliteStore)(nil)

func NewSqliteStore(dbPath string) (*SqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, unavailable("open", dbPath, err)
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, unavailable("open", dbPath, err)
	}
	// a single connection serialises writers instead of surfacing SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, unavailable("open", dbPath, err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		name TEXT PRIMARY KEY,
		content TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, unavailable("open", dbPath, err)
	}
	return &SqliteStore{db: db}, nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name FROM documents ORDER BY name")
	if err != nil {
		return nil, unavailable("list", "", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, unavailable("list", "", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("list", "", err)
	}
	return names, nil
}

func (s *SqliteStore) Read(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	var content string
	err := s.db.QueryRowContext(ctx, "SELECT content FROM documents WHERE name = ?", name).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", notFound("read", name, nil)
	}
	if err != nil {
		return "", unavailable("read", name, err)
	}
	return content, nil
}

func (s *SqliteStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	var found int
	err := s.db.QueryRowContext(ctx, "SELECT 1 FROM documents WHERE name = ?", name).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("stat", name, err)
	}
	return true, nil
}

func (s *SqliteStore) Write(ctx context.Context, name, content string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO documents (name, content) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET content = excluded.content`,
		name, content,
	)
	if err != nil {
		return unavailable("write", name, err)
	}
	return nil
}
