package repertoire

import (
	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/opening"
	"github.com/discochess/repertoire/internal/stats"
)

// Option configures an Explorer.
type Option interface {
	apply(*options)
}

// options holds the explorer configuration.
type options struct {
	color   Color
	catalog opening.Catalog
	stats   stats.Collector
	logger  *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		color:   White,
		catalog: opening.Builtin(),
		stats:   stats.NewNoop(),
		logger:  zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithColor sets the color studied after construction.
// Default is White.
func WithColor(c Color) Option {
	return optionFunc(func(o *options) {
		o.color = c
	})
}

// WithCatalog sets the opening catalog used to name positions.
// If not set, the built-in catalog is used.
func WithCatalog(c opening.Catalog) Option {
	return optionFunc(func(o *options) {
		o.catalog = c
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
