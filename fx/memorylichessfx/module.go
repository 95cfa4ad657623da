// Package memorylichessfx provides an fx module for a Lichess game source
// caching responses in memory.
// Useful for testing.
package memorylichessfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/lichess"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/stats/logger"
	"github.com/discochess/repertoire/internal/store/memstore"
)

// Config holds optional configuration for the source.
type Config struct {
	// BaseURL overrides the API root.
	BaseURL string
}

// Module provides an in-memory cached Lichess source for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memorylichess",
	fx.Provide(
		newStatsCollector,
		newMemStore,
		newSource,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("repertoire.stats"))
}

func newMemStore() *memstore.Store {
	return memstore.New()
}

// Params holds dependencies for creating the source.
type Params struct {
	fx.In

	Config    Config `optional:"true"`
	Logger    *zap.Logger
	Collector stats.Collector
	Store     *memstore.Store
	Lifecycle fx.Lifecycle
}

// Result holds the provided source. The *memstore.Store it caches to is
// provided by the module as well, for test setup.
type Result struct {
	fx.Out

	Source repertoire.Source
}

func newSource(p Params) (Result, error) {
	opts := []lichess.Option{
		lichess.WithStore(p.Store),
		lichess.WithStats(p.Collector),
		lichess.WithLogger(p.Logger.Named("lichess")),
	}
	if p.Config.BaseURL != "" {
		opts = append(opts, lichess.WithBaseURL(p.Config.BaseURL))
	}
	client := lichess.New(opts...)

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return p.Store.Close()
		},
	})

	return Result{Source: client}, nil
}
