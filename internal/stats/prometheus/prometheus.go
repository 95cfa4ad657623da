// Package prometheus provides a Prometheus-based stats collector. Metrics are
// registered lazily on first use; serve them with promhttp.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/repertoire/internal/stats"
)

// apiBuckets covers cached reads (sub-millisecond) through throttled
// requests that waited out a backoff.
var apiBuckets = []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 15, 60, 120}

// Collector implements stats.Collector using Prometheus metrics.
type Collector struct {
	registry prometheus.Registerer

	mu         sync.RWMutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	counter := getOrCreate(c, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help(name)})
	})
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	gauge := getOrCreate(c, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: help(name)})
	})
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	histogram := getOrCreate(c, c.histograms, name, func() prometheus.Histogram {
		buckets := prometheus.DefBuckets
		if name == stats.MetricAPISeconds {
			buckets = apiBuckets
		}
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    name,
			Help:    help(name),
			Buckets: buckets,
		})
	})
	histogram.Observe(value)
}

// getOrCreate returns the metric registered under name, creating and
// registering it on first use. A metric already present in the registry is
// reused.
func getOrCreate[M prometheus.Collector](c *Collector, metrics map[string]M, name string, create func() M) M {
	c.mu.RLock()
	m, ok := metrics[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok = metrics[name]; ok {
		return m
	}

	m = create()
	if err := c.registry.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
		// Otherwise the unregistered metric still records values.
	}
	metrics[name] = m
	return m
}

func help(name string) string {
	if h, ok := stats.Help[name]; ok {
		return h
	}
	return name
}
