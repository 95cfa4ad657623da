// Package diskstore implements the on-disk response cache: one file per key
// under a root directory.
package diskstore

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

// Compile-time checks.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a disk-based cache. A key maps to the file <root>/<key>, plus
// the codec's extension when it compresses.
type Store struct {
	root  string
	codec codec.Codec
}

// New creates a disk store rooted at the given directory, creating it if
// missing. The codec handles compression/decompression.
func New(root string, c codec.Codec) (*Store, error) {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(root, 0o755); err != nil {
			return nil, fmt.Errorf("creating cache directory: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("stat cache directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	return &Store{
		root:  root,
		codec: c,
	}, nil
}

// Root returns the cache directory.
func (s *Store) Root() string {
	return s.root
}

// Get reads and decompresses the entry stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	raw, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("reading cache entry: %w", err)
	}

	data, err := codec.Decode(s.codec, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("cache entry %s: %w", key, err)
	}
	return data, nil
}

// Put compresses data and writes it under key. The file is written to a
// temporary name and renamed so readers never observe a partial entry.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	encoded, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("cache entry %s: %w", key, err)
	}

	tmp, err := os.CreateTemp(s.root, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return fmt.Errorf("writing cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return fmt.Errorf("renaming cache entry: %w", err)
	}
	return nil
}

// Keys lists the keys of every entry written with this store's codec.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("listing cache directory: %w", err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		if key, ok := store.KeyFromName(e.Name(), "", s.codec.Extension()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases any resources held by the store.
func (s *Store) Close() error {
	return nil
}

// Path returns the filesystem path of the entry for key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.root, s.fileName(key))
}

func (s *Store) fileName(key string) string {
	if ext := s.codec.Extension(); ext != "" {
		return key + "." + ext
	}
	return key
}
