// Package stats provides a unified interface for collecting metrics from
// the explorer, the game sources and the response cache.
package stats

// Metric names used throughout the module.
const (
	// Explorer metrics.
	MetricAdvances     = "repertoire_advances_total"
	MetricBacktracks   = "repertoire_backtracks_total"
	MetricInvalidMoves = "repertoire_invalid_moves_total"
	MetricResets       = "repertoire_resets_total"
	MetricActiveGames  = "repertoire_active_games"
	MetricTreeNodes    = "repertoire_tree_nodes"

	// Game source metrics.
	MetricAPIRequests  = "repertoire_api_requests_total"
	MetricAPIThrottled = "repertoire_api_throttled_total"
	MetricAPISeconds   = "repertoire_api_request_seconds"
	MetricGamesFetched = "repertoire_games_fetched"
	MetricGamesSkipped = "repertoire_games_skipped_total"

	// Cache metrics.
	MetricCacheHits   = "repertoire_cache_hits_total"
	MetricCacheMisses = "repertoire_cache_misses_total"
	MetricCacheSize   = "repertoire_cache_size"
	MetricCacheBytes  = "repertoire_cache_bytes"
)

// Help describes each metric for exporters that need descriptions.
var Help = map[string]string{
	MetricAdvances:     "Moves played forward in the explorer.",
	MetricBacktracks:   "Moves taken back in the explorer.",
	MetricInvalidMoves: "Moves entered that no active game continues with.",
	MetricResets:       "Explorer resets, including color flips.",
	MetricActiveGames:  "Games consistent with the current position.",
	MetricTreeNodes:    "Nodes materialized in the move tree.",
	MetricAPIRequests:  "HTTP requests sent to the game API.",
	MetricAPIThrottled: "Requests answered with 429 Too Many Requests.",
	MetricAPISeconds:   "Latency of game API requests in seconds.",
	MetricGamesFetched: "Games returned by the last fetch.",
	MetricGamesSkipped: "Fetched games dropped during normalization.",
	MetricCacheHits:    "Response cache hits.",
	MetricCacheMisses:  "Response cache misses.",
	MetricCacheSize:    "Entries held by the in-memory response cache.",
	MetricCacheBytes:   "Response bytes held by the in-memory response cache.",
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
