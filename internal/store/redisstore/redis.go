// Package redisstore implements a response cache in Redis, with optional
// expiry so shared caches pick up new games without --refresh-cache.
package redisstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/store"
)

// DefaultPrefix namespaces cache keys in a shared Redis database.
const DefaultPrefix = "repertoire:cache:"

// Compile-time checks.
var (
	_ store.Store  = (*Store)(nil)
	_ store.Lister = (*Store)(nil)
)

// Store is a Redis storage backend.
type Store struct {
	rdb    *redis.Client
	owned  bool
	prefix string
	ttl    time.Duration
	codec  codec.Codec
}

// Option configures a Store.
type Option func(*Store)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) { s.prefix = prefix }
}

// WithTTL expires entries ttl after they are written. Zero keeps them
// forever.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) { s.ttl = ttl }
}

// New creates a store over an existing client. Close does not close rdb.
func New(rdb *redis.Client, c codec.Codec, opts ...Option) *Store {
	s := &Store{
		rdb:    rdb,
		prefix: DefaultPrefix,
		codec:  c,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open connects to the server named by a redis:// or rediss:// URL and
// checks it answers.
func Open(ctx context.Context, url string, c codec.Codec, opts ...Option) (*Store, error) {
	o, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(o)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	s := New(rdb, c, opts...)
	s.owned = true
	return s, nil
}

// Get returns the decompressed value for key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.rdb.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}

	data, err := codec.Decode(s.codec, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("entry %s: %w", key, err)
	}
	return data, nil
}

// Put compresses data and stores it under key.
func (s *Store) Put(ctx context.Context, key string, data []byte) error {
	encoded, err := codec.Encode(s.codec, data)
	if err != nil {
		return fmt.Errorf("entry %s: %w", key, err)
	}
	if err := s.rdb.Set(ctx, s.prefix+key, encoded, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Keys scans for every key under the prefix.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.rdb.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scanning keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the client if Open created it.
func (s *Store) Close() error {
	if s.owned {
		return s.rdb.Close()
	}
	return nil
}
