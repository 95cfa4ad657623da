// Package store defines the key/value interface behind the response cache.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("store: key not found")

// Store defines the interface for cache storage backends.
// Keys are flat file-name-safe strings; implementations decide how they map
// to paths, objects or records.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Close releases any resources held by the store.
	Close() error
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	// Keys returns every stored key in lexical order.
	Keys(ctx context.Context) ([]string, error)
}

// KeyFromName recovers the key of an entry stored as name under prefix by a
// codec with extension ext. It reports false for anything else found next
// to the entries, including entries written with another codec.
func KeyFromName(name, prefix, ext string) (string, bool) {
	key, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return "", false
	}
	if ext != "" {
		if key, ok = strings.CutSuffix(key, "."+ext); !ok {
			return "", false
		}
	}
	if key == ".json" || strings.Contains(key, "/") || !strings.HasSuffix(key, ".json") {
		return "", false
	}
	return key, true
}
