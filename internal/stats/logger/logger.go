// Package logger provides a stats collector that writes metrics to a zap
// logger at debug level, for --verbose runs.
package logger

import (
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/stats"
)

// Collector logs metrics via zap. A gauge is logged only when its value
// changes, since the explorer resets the same gauges after every command.
type Collector struct {
	logger *zap.Logger

	mu     sync.Mutex
	gauges map[string]int64
}

var _ stats.Collector = (*Collector)(nil)

// New returns a Collector writing to a "metrics" child of logger.
// A nil logger discards everything.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{
		logger: logger.Named("metrics"),
		gauges: make(map[string]int64),
	}
}

func (c *Collector) IncCounter(name string, delta int64) {
	if ce := c.logger.Check(zap.DebugLevel, "counter"); ce != nil {
		ce.Write(metric(name), zap.Int64("delta", delta))
	}
}

func (c *Collector) SetGauge(name string, value int64) {
	ce := c.logger.Check(zap.DebugLevel, "gauge")
	if ce == nil {
		return
	}
	c.mu.Lock()
	prev, seen := c.gauges[name]
	c.gauges[name] = value
	c.mu.Unlock()
	if seen && prev == value {
		return
	}
	ce.Write(metric(name), zap.Int64("value", value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	if ce := c.logger.Check(zap.DebugLevel, "histogram"); ce != nil {
		ce.Write(metric(name), zap.Float64("value", value))
	}
}

// metric drops the namespace shared by every metric name.
func metric(name string) zap.Field {
	return zap.String("metric", strings.TrimPrefix(name, "repertoire_"))
}
