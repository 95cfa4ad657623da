package cachedstore

import (
	"context"
	"errors"

	"github.com/discochess/repertoire/internal/store"
)

// ErrNotListable indicates the underlying store cannot list its keys.
var ErrNotListable = errors.New("cachedstore: underlying store cannot list keys")

// Compile-time checks.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store serves reads from a Backend and falls through to the underlying
// store on a miss. Writes go to the underlying store first.
type Store struct {
	underlying store.Store
	backend    Backend
}

// New wraps underlying with backend.
func New(underlying store.Store, backend Backend) *Store {
	return &Store{
		underlying: underlying,
		backend:    backend,
	}
}

// Get returns the response under key, caching it after a miss.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	if body, ok := s.backend.Get(key); ok {
		return body, nil
	}

	body, err := s.underlying.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	s.backend.Set(key, body)
	return body, nil
}

// Put writes body to the underlying store and caches it. When the write
// fails any cached body for key is dropped, so the cache never serves a
// response the underlying store does not hold.
func (s *Store) Put(ctx context.Context, key string, body []byte) error {
	if err := s.underlying.Put(ctx, key, body); err != nil {
		s.backend.Delete(key)
		return err
	}
	s.backend.Set(key, body)
	return nil
}

// Keys lists the keys of the underlying store. It returns ErrNotListable if
// that store is not a store.Lister.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	l, ok := s.underlying.(store.Lister)
	if !ok {
		return nil, ErrNotListable
	}
	return l.Keys(ctx)
}

// Close closes the underlying store.
func (s *Store) Close() error {
	return s.underlying.Close()
}

// Stats returns the backend counters.
func (s *Store) Stats() Stats {
	return s.backend.Stats()
}
