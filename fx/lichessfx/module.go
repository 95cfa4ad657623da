// Package lichessfx provides an fx module for a Lichess game source with a
// disk-backed response cache.
package lichessfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/codec/zstdcodec"
	"github.com/discochess/repertoire/internal/lichess"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/stats/logger"
	"github.com/discochess/repertoire/internal/store/cachedstore"
	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy/lru"
	"github.com/discochess/repertoire/internal/store/cachedstore/memory"
	"github.com/discochess/repertoire/internal/store/diskstore"
)

// Config holds configuration for the Lichess source.
type Config struct {
	// CacheDir is the directory of the zstd-compressed response cache.
	CacheDir string

	// CacheSize is the number of responses kept in memory.
	// Default is 256.
	CacheSize int

	// BaseURL overrides the API root, e.g. for a mirror.
	BaseURL string

	// Refresh ignores cached responses and fetches again.
	Refresh bool
}

// Module provides a repertoire.Source backed by the Lichess API.
// Requires a Config and a *zap.Logger to be provided.
var Module = fx.Module("lichess",
	fx.Provide(
		newStatsCollector,
		newSource,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("repertoire.stats"))
}

// Params holds dependencies for creating the source.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided source.
type Result struct {
	fx.Out

	Source repertoire.Source
}

func newSource(p Params) (Result, error) {
	cacheSize := p.Config.CacheSize
	if cacheSize <= 0 {
		cacheSize = 256
	}

	baseStore, err := diskstore.New(p.Config.CacheDir, zstdcodec.New())
	if err != nil {
		return Result{}, err
	}

	lruStrategy, err := lru.New(cacheSize)
	if err != nil {
		return Result{}, err
	}

	st := cachedstore.New(baseStore, memory.New(lruStrategy, p.Collector))

	opts := []lichess.Option{
		lichess.WithStore(st),
		lichess.WithRefresh(p.Config.Refresh),
		lichess.WithStats(p.Collector),
		lichess.WithLogger(p.Logger.Named("lichess")),
	}
	if p.Config.BaseURL != "" {
		opts = append(opts, lichess.WithBaseURL(p.Config.BaseURL))
	}
	client := lichess.New(opts...)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return st.Close()
		},
	})

	return Result{Source: client}, nil
}
