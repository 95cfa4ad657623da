package lichess

import (
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

type options struct {
	baseURL  string
	http     *http.Client
	store    store.Store
	refresh  bool
	limiter  *rate.Limiter
	backoff  time.Duration
	progress ProgressFunc
	now      func() time.Time
	stats    stats.Collector
	logger   *zap.Logger
}

func defaultOptions() options {
	return options{
		baseURL: DefaultBaseURL,
		http:    newHTTPClient(),
		limiter: rate.NewLimiter(rate.Every(DefaultRequestInterval), 1),
		backoff: DefaultBackoff,
		now:     time.Now,
		stats:   stats.NewNoop(),
		logger:  zap.NewNop(),
	}
}

type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithBaseURL points the client at another API root. It must end in "/".
func WithBaseURL(u string) Option {
	return optionFunc(func(o *options) {
		o.baseURL = u
	})
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return optionFunc(func(o *options) {
		o.http = c
	})
}

// WithStore caches response bodies in s. Without a store every request
// goes to the network.
func WithStore(s store.Store) Option {
	return optionFunc(func(o *options) {
		o.store = s
	})
}

// WithRefresh skips cache reads; fresh responses are still written.
func WithRefresh(refresh bool) Option {
	return optionFunc(func(o *options) {
		o.refresh = refresh
	})
}

// WithRequestInterval sets the minimum time between two network requests.
// Default is DefaultRequestInterval.
func WithRequestInterval(d time.Duration) Option {
	return optionFunc(func(o *options) {
		if d <= 0 {
			o.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		o.limiter = rate.NewLimiter(rate.Every(d), 1)
	})
}

// WithBackoff sets how long to wait after a 429 response before retrying.
// Default is DefaultBackoff.
func WithBackoff(d time.Duration) Option {
	return optionFunc(func(o *options) {
		o.backoff = d
	})
}

// WithProgress reports fetch progress to fn.
func WithProgress(fn ProgressFunc) Option {
	return optionFunc(func(o *options) {
		o.progress = fn
	})
}

// WithClock sets the time source used by the MonthsBack filter.
func WithClock(now func() time.Time) Option {
	return optionFunc(func(o *options) {
		o.now = now
	})
}

// WithStats sets the stats collector.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
