// Package lichess fetches a player's finished games from the Lichess HTTP
// API.
//
// Requests are paced by a per-client limiter, retried after a fixed backoff
// when the API answers 429 Too Many Requests, and cached by request in an
// optional store so later runs start instantly.
package lichess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/discochess/repertoire/internal/game"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store"
)

const (
	// DefaultBaseURL is the root of the Lichess API.
	DefaultBaseURL = "https://lichess.org/api/"

	// DefaultRequestInterval is the minimum time between two requests.
	DefaultRequestInterval = 1500 * time.Millisecond

	// DefaultBackoff is the wait after a 429 response.
	DefaultBackoff = 61 * time.Second

	// PageSize is the number of games requested per page.
	PageSize = 100
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrNetwork indicates a transport failure or an unexpected HTTP status.
	ErrNetwork = errors.New("lichess: network error")

	// ErrMalformedResponse indicates a response body that is not the
	// expected JSON.
	ErrMalformedResponse = errors.New("lichess: malformed response")
)

// Client fetches games from Lichess. A Client is safe for sequential use;
// its limiter paces every request it sends, and no state is shared between
// clients.
type Client struct {
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

// New creates a Client.
func New(opts ...Option) *Client {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if !strings.HasSuffix(cfg.baseURL, "/") {
		cfg.baseURL += "/"
	}
	return &Client{
		baseURL:  cfg.baseURL,
		http:     cfg.http,
		store:    cfg.store,
		refresh:  cfg.refresh,
		limiter:  cfg.limiter,
		backoff:  cfg.backoff,
		progress: cfg.progress,
		now:      cfg.now,
		stats:    cfg.stats,
		logger:   cfg.logger,
	}
}

// Fetch returns every finished standard game of username that passes
// filters, deduplicated by game ID.
func (c *Client) Fetch(ctx context.Context, username string, filters game.Filters) ([]game.Record, error) {
	start := c.now()
	path := "user/" + url.PathEscape(username) + "/games"

	count, err := getJSON[countResponse](ctx, c, path, map[string]string{"nb": "0"})
	if err != nil {
		c.report(Progress{Phase: PhaseError, Error: err})
		return nil, err
	}

	pages := (count.NbResults + PageSize - 1) / PageSize
	c.report(Progress{Phase: PhaseCount, Results: count.NbResults, Pages: pages, StartTime: start})
	c.logger.Debug("fetching games",
		zap.String("user", username),
		zap.Int("results", count.NbResults),
		zap.Int("pages", pages),
	)

	var games []game.Record
	skipped := 0
	for page := 1; page <= pages; page++ {
		resp, err := getJSON[pageResponse](ctx, c, path, map[string]string{
			"nb":           strconv.Itoa(PageSize),
			"page":         strconv.Itoa(page),
			"with_opening": "1",
			"with_moves":   "1",
		})
		if err != nil {
			c.report(Progress{Phase: PhaseError, Error: err})
			return nil, err
		}
		for _, g := range resp.CurrentPageResults {
			rec, ok := normalize(username, g)
			if !ok {
				skipped++
				continue
			}
			games = append(games, rec)
		}
		c.report(Progress{
			Phase:     PhasePage,
			Results:   count.NbResults,
			Page:      page,
			Pages:     pages,
			Games:     len(games),
			Skipped:   skipped,
			StartTime: start,
		})
	}

	games = game.Dedup(games)
	games = filters.Apply(games, c.now())

	c.stats.IncCounter(stats.MetricGamesSkipped, int64(skipped))
	c.stats.SetGauge(stats.MetricGamesFetched, int64(len(games)))
	c.report(Progress{
		Phase:     PhaseDone,
		Results:   count.NbResults,
		Page:      pages,
		Pages:     pages,
		Games:     len(games),
		Skipped:   skipped,
		StartTime: start,
	})
	return games, nil
}

func (c *Client) report(p Progress) {
	if c.progress != nil {
		c.progress(p)
	}
}

// getJSON decodes the response to path with params, from the cache when
// possible. A cached body that fails to decode is treated as a miss.
func getJSON[T any](ctx context.Context, c *Client, path string, params map[string]string) (T, error) {
	var v T
	key := CacheKey(path, params)

	if c.store != nil && !c.refresh {
		data, err := c.store.Get(ctx, key)
		switch {
		case err == nil:
			if err := json.Unmarshal(data, &v); err == nil {
				c.logger.Debug("cache hit", zap.String("key", key))
				return v, nil
			}
			c.logger.Debug("cache entry corrupt", zap.String("key", key))
			v = *new(T)
		case errors.Is(err, store.ErrNotFound):
			c.logger.Debug("cache miss", zap.String("key", key))
		default:
			c.logger.Debug("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	body, err := c.get(ctx, path, params)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}

	if c.store != nil {
		if err := c.store.Put(ctx, key, body); err != nil {
			c.logger.Warn("writing cache entry", zap.String("key", key), zap.Error(err))
		}
	}
	return v, nil
}

// get sends one paced GET request, waiting out 429 responses.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		q := url.Values{}
		for k, v := range params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: waiting to send request: %w", ErrNetwork, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		c.logger.Debug("sending request", zap.String("url", u))
		sent := c.now()
		resp, err := c.http.Do(req)
		c.stats.IncCounter(stats.MetricAPIRequests, 1)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		c.stats.ObserveHistogram(stats.MetricAPISeconds, c.now().Sub(sent).Seconds())
		if err != nil {
			return nil, fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
		}

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			c.stats.IncCounter(stats.MetricAPIThrottled, 1)
			c.logger.Debug("received HTTP 429, backing off", zap.Duration("backoff", c.backoff))
			if err := sleep(ctx, c.backoff); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
			}
			continue
		case resp.StatusCode != http.StatusOK:
			return nil, fmt.Errorf("%w: unexpected status: %s", ErrNetwork, resp.Status)
		}
		return body, nil
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
