// Package gcsstore implements a response cache in a Google Cloud Storage
// bucket, so several machines can share one cache.
package gcsstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a Google Cloud Storage backend.
type Store struct {
	client *storage.Client
	bucket *storage.BucketHandle
	prefix string
	codec  codec.Codec
}

// New creates a new GCS store using application default credentials.
// The bucket must already exist.
func New(ctx context.Context, bucketName string, c codec.Codec, opts ...Option) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS client: %w", err)
	}

	s := &Store{
		client: client,
		bucket: client.Bucket(bucketName),
		codec:  c,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix sets an object name prefix for all operations.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = normalizePrefix(prefix)
	}
}

// Get downloads and decompresses the object for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	reader, err := s.bucket.Object(s.objectName(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("opening object: %w", err)
	}
	defer reader.Close()

	data, err := codec.Decode(s.codec, reader)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", key, err)
	}
	return data, nil
}

// Put compresses data and uploads it as the object for key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	encoded, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("object %s: %w", key, err)
	}

	w := s.bucket.Object(s.objectName(key)).NewWriter(ctx)
	w.ContentType = contentType(s.codec)
	if _, err := bytes.NewReader(encoded).WriteTo(w); err != nil {
		w.Close()
		return fmt.Errorf("uploading object: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing object: %w", err)
	}
	return nil
}

// Keys lists the entries under the prefix written with this store's codec.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	q := &storage.Query{Prefix: s.prefix}
	if err := q.SetAttrSelection([]string{"Name"}); err != nil {
		return nil, fmt.Errorf("building object query: %w", err)
	}

	var keys []string
	it := s.bucket.Objects(ctx, q)
	for {
		attrs, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing objects: %w", err)
		}
		if key, ok := store.KeyFromName(attrs.Name, s.prefix, s.codec.Extension()); ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}

// objectName returns the full object name for a key.
func (s *Store) objectName(key string) string {
	name := s.prefix + key
	if ext := s.codec.Extension(); ext != "" {
		name += "." + ext
	}
	return name
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return ""
	}
	return prefix + "/"
}

func contentType(c codec.Codec) string {
	if c.Extension() == "" {
		return "application/json"
	}
	return "application/octet-stream"
}
