// Package memstore provides an in-memory store implementation for testing.
package memstore

import (
	"context"
	"sync"

	"github.com/discochess/gsea/internal/store"
)

// Compile-time check that Store implements store.Store.
var _ store.Store = (*Store)(nil)

// Store is an in-memory store for testing. Reports are kept uncompressed.
type Store struct {
	mu      sync.RWMutex
	reports map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		reports: make(map[string][]byte),
	}
}

// WriteReport stores a copy of data.
func (s *Store) WriteReport(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[name] = append([]byte(nil), data...)
	return nil
}

// ReadReport reads a report from memory.
func (s *Store) ReadReport(ctx context.Context, name string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.reports[name]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// Names returns the stored report names.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.reports))
	for name := range s.reports {
		names = append(names, name)
	}
	return names
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
