package stats

// Noop discards all metrics. It is the default collector of every
// component, and can be embedded to implement only part of Collector.
type Noop struct{}

var _ Collector = Noop{}

// NewNoop returns a Noop.
func NewNoop() Noop {
	return Noop{}
}

func (Noop) IncCounter(string, int64)         {}
func (Noop) SetGauge(string, int64)           {}
func (Noop) ObserveHistogram(string, float64) {}

// Tee fans every metric out to several collectors, for example Prometheus
// and the debug log at once.
type Tee []Collector

var _ Collector = Tee(nil)

// NewTee combines cs, dropping nils. It returns a Noop when none remain and
// the collector itself when only one does.
func NewTee(cs ...Collector) Collector {
	var t Tee
	for _, c := range cs {
		if c != nil {
			t = append(t, c)
		}
	}
	switch len(t) {
	case 0:
		return Noop{}
	case 1:
		return t[0]
	}
	return t
}

func (t Tee) IncCounter(name string, delta int64) {
	for _, c := range t {
		c.IncCounter(name, delta)
	}
}

func (t Tee) SetGauge(name string, value int64) {
	for _, c := range t {
		c.SetGauge(name, value)
	}
}

func (t Tee) ObserveHistogram(name string, value float64) {
	for _, c := range t {
		c.ObserveHistogram(name, value)
	}
}
