package store

import (
	"context"
	"sync"
)

// MemoryStore holds documents in a map. It is ephemeral and meant for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]string
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]string)}
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable("list", "", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	return names, nil
}

func (s *MemoryStore) Read(ctx context.Context, name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", unavailable("read", name, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.docs[name]
	if !ok {
		return "", notFound("read", name, nil)
	}
	return content, nil
}

func (s *MemoryStore) Exists(ctx context.Context, name string) (bool, error) {
	if err := ValidateName(name); err != nil {
		return false, err
	}
	if err := ctx.Err(); err != nil {
		return false, unavailable("stat", name, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.docs[name]
	return ok, nil
}

func (s *MemoryStore) Write(ctx context.Context, name, content string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return unavailable("write", name, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = content
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
