// Package lru evicts the least recently read response once a fixed number
// of responses is cached.
package lru

import (
	"sync"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Strategy implements cachestrategy.Strategy.
var _ cachestrategy.Strategy = (*Strategy)(nil)

// Strategy holds at most a fixed number of response bodies.
type Strategy struct {
	// mu serializes Add so replacing a body adjusts bytes exactly once.
	mu    sync.Mutex
	cache *lru.Cache[string, []byte]
	bytes atomic.Int64
}

// New creates a strategy holding at most capacity responses.
func New(capacity int) (*Strategy, error) {
	s := &Strategy{}
	c, err := lru.NewWithEvict[string, []byte](capacity, func(_ string, body []byte) {
		s.bytes.Add(-int64(len(body)))
	})
	if err != nil {
		return nil, err
	}
	s.cache = c
	return s, nil
}

// Get returns the body for key and marks it recently used.
func (s *Strategy) Get(key string) ([]byte, bool) {
	return s.cache.Get(key)
}

// Add stores body under key, evicting the least recently used body when
// full.
func (s *Strategy) Add(key string, body []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.cache.Peek(key); ok {
		s.bytes.Add(-int64(len(old)))
	}
	s.bytes.Add(int64(len(body)))
	return s.cache.Add(key, body)
}

// Remove drops key.
func (s *Strategy) Remove(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(key)
}

// Len returns the number of bodies held.
func (s *Strategy) Len() int {
	return s.cache.Len()
}

// Bytes returns the total size of the bodies held.
func (s *Strategy) Bytes() int64 {
	return s.bytes.Load()
}
