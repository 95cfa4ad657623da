// Package memstore provides an in-memory store, used in tests and by the
// memorylichessfx module.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/discochess/repertoire/internal/store"
)

// Compile-time checks.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is an in-memory store.
type Store struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		entries: make(map[string][]byte),
	}
}

// Get returns the value stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.entries[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return data, nil
}

// Put stores a copy of data so later caller mutations do not leak in.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	copied := make([]byte, len(data))
	copy(copied, data)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = copied
	return nil
}

// Keys returns the stored keys in lexical order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close is a no-op for the memory store.
func (s *Store) Close() error {
	return nil
}
