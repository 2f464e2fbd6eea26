// Package store mediates every read, write, and listing of named text documents.
//
// A Store is rooted at a single location fixed at construction. The default
// backend keeps one file per document in a directory; memory and SQLite
// backends implement the same contract for tests and single-file deployments.
package store

import (
	"context"
)

// Store is the interface that all document backends implement.
//
// Implementations keep no state between calls beyond their root. Concurrent
// writes to the same name are not coordinated: the last writer wins.
type Store interface {
	// List returns every document name. Order is unspecified.
	List(ctx context.Context) ([]string, error)

	// Read returns the full contents of a document.
	Read(ctx context.Context, name string) (string, error)

	// Exists reports whether a document is stored under name without reading it.
	Exists(ctx context.Context, name string) (bool, error)

	// Write creates the document or replaces its entire contents.
	Write(ctx context.Context, name, content string) error

	// Close releases any handle held by the backend.
	Close() error
}
