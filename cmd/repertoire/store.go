package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/codec"
	"github.com/discochess/repertoire/internal/codec/gzipcodec"
	"github.com/discochess/repertoire/internal/codec/noopcodec"
	"github.com/discochess/repertoire/internal/codec/zstdcodec"
	"github.com/discochess/repertoire/internal/config"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store"
	"github.com/discochess/repertoire/internal/store/cachedstore"
	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/repertoire/internal/store/cachedstore/memory"
	"github.com/discochess/repertoire/internal/store/diskstore"
	"github.com/discochess/repertoire/internal/store/gcsstore"
	"github.com/discochess/repertoire/internal/store/redisstore"
	"github.com/discochess/repertoire/internal/store/s3store"
)

// newCodec returns the codec named by --cache-compression. Entries in a
// shared cache cross the network on every read, so they are compressed
// harder than local ones.
func newCodec(name string, shared bool) (codec.Codec, error) {
	switch name {
	case "", "none":
		return noopcodec.New(), nil
	case "gzip":
		if shared {
			return gzipcodec.NewLevel(gzip.BestCompression), nil
		}
		return gzipcodec.New(), nil
	case "zstd":
		if shared {
			return zstdcodec.New(zstdcodec.WithLevel(zstd.SpeedBetterCompression)), nil
		}
		return zstdcodec.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown cache compression %q", config.ErrUsage, name)
	}
}

// cacheLocation describes where responses are cached.
func cacheLocation(cfg config.Config) string {
	if cfg.CacheURL != "" {
		return cfg.CacheURL
	}
	return cfg.CacheDir
}

// openBackingStore opens the persistent response cache named by cfg: a
// shared bucket or Redis database when a cache URL is set, a local directory
// otherwise.
func openBackingStore(ctx context.Context, cfg config.Config) (store.Store, error) {
	c, err := newCodec(cfg.CacheCompression, cfg.CacheURL != "")
	if err != nil {
		return nil, err
	}

	scheme, rest, _ := strings.Cut(cfg.CacheURL, "://")
	switch scheme {
	case "":
		s, err := diskstore.New(cfg.CacheDir, c)
		if err != nil {
			return nil, fmt.Errorf("opening cache directory: %w", err)
		}
		return s, nil
	case "gs":
		bucket, prefix, _ := strings.Cut(rest, "/")
		s, err := gcsstore.New(ctx, bucket, c, gcsstore.WithPrefix(prefix))
		if err != nil {
			return nil, fmt.Errorf("opening GCS cache: %w", err)
		}
		return s, nil
	case "s3":
		bucket, prefix, _ := strings.Cut(rest, "/")
		s, err := s3store.New(ctx, bucket, c, s3store.WithPrefix(prefix))
		if err != nil {
			return nil, fmt.Errorf("opening S3 cache: %w", err)
		}
		return s, nil
	case "redis", "rediss":
		s, err := redisstore.Open(ctx, cfg.CacheURL, c, redisstore.WithTTL(cfg.CacheTTL))
		if err != nil {
			return nil, fmt.Errorf("opening Redis cache: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: unsupported cache URL %q", config.ErrUsage, cfg.CacheURL)
	}
}

// openCache returns the response cache for a fetch, or nil when caching is
// disabled. Reads are served from an in-memory LRU in front of the backing
// store unless the cache size is 0.
func openCache(ctx context.Context, cfg config.Config, collector stats.Collector, logger *zap.Logger) (store.Store, error) {
	if cfg.NoCache {
		return nil, nil
	}
	backing, err := openBackingStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("response cache opened",
		zap.String("location", cacheLocation(cfg)),
		zap.String("compression", cfg.CacheCompression),
		zap.Int("memory_entries", cfg.CacheSize),
	)
	if cfg.CacheSize == 0 {
		return backing, nil
	}

	strategy, err := lru.New(cfg.CacheSize)
	if err != nil {
		backing.Close()
		return nil, fmt.Errorf("creating memory cache: %w", err)
	}
	return cachedstore.New(backing, memory.New(strategy, collector)), nil
}
