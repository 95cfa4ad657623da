// Package memory keeps cached responses in process memory, evicting by a
// pluggable strategy and reporting hits, misses and size as metrics.
package memory

import (
	"sync/atomic"

	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store/cachedstore"
	"github.com/discochess/repertoire/internal/store/cachedstore/cachestrategy"
)

// Compile-time check that Backend implements cachedstore.Backend.
var _ cachedstore.Backend = (*Backend)(nil)

// Backend is an in-memory cache backend. It is safe for concurrent use when
// its strategy is.
type Backend struct {
	strategy  cachestrategy.Strategy
	collector stats.Collector

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a backend evicting by strategy.
// The collector is optional; if nil, a no-op collector is used.
func New(strategy cachestrategy.Strategy, collector stats.Collector) *Backend {
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Backend{
		strategy:  strategy,
		collector: collector,
	}
}

// Get returns the cached body for key, counting a hit or a miss.
func (b *Backend) Get(key string) ([]byte, bool) {
	body, ok := b.strategy.Get(key)
	if !ok {
		b.misses.Add(1)
		b.collector.IncCounter(stats.MetricCacheMisses, 1)
		return nil, false
	}
	b.hits.Add(1)
	b.collector.IncCounter(stats.MetricCacheHits, 1)
	return body, true
}

// Set caches body under key.
func (b *Backend) Set(key string, body []byte) {
	b.strategy.Add(key, body)
	b.report()
}

// Delete drops key.
func (b *Backend) Delete(key string) {
	if b.strategy.Remove(key) {
		b.report()
	}
}

// Stats returns the current counters.
func (b *Backend) Stats() cachedstore.Stats {
	return cachedstore.Stats{
		Hits:    b.hits.Load(),
		Misses:  b.misses.Load(),
		Entries: b.strategy.Len(),
		Bytes:   b.strategy.Bytes(),
	}
}

func (b *Backend) report() {
	b.collector.SetGauge(stats.MetricCacheSize, int64(b.strategy.Len()))
	b.collector.SetGauge(stats.MetricCacheBytes, b.strategy.Bytes())
}
