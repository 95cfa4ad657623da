// Package config loads the command-line configuration from flags, the
// environment and an optional file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/discochess/repertoire/internal/game"
)

// ErrUsage indicates an invalid combination of settings.
var ErrUsage = errors.New("config: usage error")

// EnvPrefix prefixes environment variables, e.g. REPERTOIRE_CACHEDIR.
const EnvPrefix = "REPERTOIRE"

// DefaultCacheDir is the default on-disk response cache directory.
const DefaultCacheDir = ".lichess_cache"

// DefaultCacheSize is the default number of responses kept in memory.
const DefaultCacheSize = 256

// Keys of the configuration values.
const (
	KeySpeeds           = "speeds"
	KeyMonths           = "months"
	KeyExcludeComputer  = "exclude-computer"
	KeyRefreshCache     = "refresh-cache"
	KeyNoCache          = "no-cache"
	KeyCacheDir         = "cachedir"
	KeyCacheURL         = "cache-url"
	KeyCacheSize        = "cache-size"
	KeyCacheTTL         = "cache-ttl"
	KeyCacheCompression = "cache-compression"
	KeyOpenings         = "openings"
	KeyPGN              = "pgn"
	KeyColor            = "color"
	KeyMetricsAddr      = "metrics-addr"
	KeyVerbose          = "verbose"
)

// Config holds the settings of one run.
type Config struct {
	Speeds           []string      `mapstructure:"speeds"`
	Months           int           `mapstructure:"months"`
	ExcludeComputer  bool          `mapstructure:"exclude-computer"`
	RefreshCache     bool          `mapstructure:"refresh-cache"`
	NoCache          bool          `mapstructure:"no-cache"`
	CacheDir         string        `mapstructure:"cachedir"`
	CacheURL         string        `mapstructure:"cache-url"`
	CacheSize        int           `mapstructure:"cache-size"`
	CacheTTL         time.Duration `mapstructure:"cache-ttl"`
	CacheCompression string        `mapstructure:"cache-compression"`
	Openings         string        `mapstructure:"openings"`
	PGN              string        `mapstructure:"pgn"`
	Color            string        `mapstructure:"color"`
	MetricsAddr      string        `mapstructure:"metrics-addr"`
	Verbose          bool          `mapstructure:"verbose"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		CacheDir:         DefaultCacheDir,
		CacheSize:        DefaultCacheSize,
		CacheCompression: "none",
		Openings:         "builtin",
		Color:            "white",
	}
}

// RegisterFlags defines one flag per configuration key on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.StringSlice(KeySpeeds, nil, "only include games of these speeds (repeatable or comma separated)")
	fs.Int(KeyMonths, 0, "only include games from the last N months")
	fs.Bool(KeyExcludeComputer, false, "exclude games against the computer")
	fs.Bool(KeyRefreshCache, false, "ignore cached responses and fetch again")
	fs.Bool(KeyNoCache, false, "do not read or write the response cache")
	fs.String(KeyCacheDir, d.CacheDir, "directory of the response cache")
	fs.String(KeyCacheURL, "", "shared response cache (gs://bucket/prefix, s3://bucket/prefix or redis://host:port/db)")
	fs.Int(KeyCacheSize, d.CacheSize, "responses kept in memory")
	fs.Duration(KeyCacheTTL, 0, "expire Redis cache entries after this long (0 keeps them)")
	fs.String(KeyCacheCompression, d.CacheCompression, "cache compression (none, gzip, zstd)")
	fs.String(KeyOpenings, d.Openings, "opening names (builtin, eco)")
	fs.String(KeyPGN, "", "read games from a PGN file instead of Lichess")
	fs.String(KeyColor, d.Color, "color to study first (white, black)")
	fs.String(KeyMetricsAddr, "", "serve Prometheus metrics on this address")
	fs.BoolP(KeyVerbose, "v", false, "verbose logging")
}

// Load reads the configuration. Flags set on fs take precedence over
// REPERTOIRE_* environment variables, which take precedence over file.
// An empty file is skipped. fs may be nil.
func Load(fs *pflag.FlagSet, file string) (Config, error) {
	v := viper.New()

	d := Default()
	v.SetDefault(KeySpeeds, d.Speeds)
	v.SetDefault(KeyMonths, d.Months)
	v.SetDefault(KeyExcludeComputer, d.ExcludeComputer)
	v.SetDefault(KeyRefreshCache, d.RefreshCache)
	v.SetDefault(KeyNoCache, d.NoCache)
	v.SetDefault(KeyCacheDir, d.CacheDir)
	v.SetDefault(KeyCacheURL, d.CacheURL)
	v.SetDefault(KeyCacheSize, d.CacheSize)
	v.SetDefault(KeyCacheTTL, d.CacheTTL)
	v.SetDefault(KeyCacheCompression, d.CacheCompression)
	v.SetDefault(KeyOpenings, d.Openings)
	v.SetDefault(KeyPGN, d.PGN)
	v.SetDefault(KeyColor, d.Color)
	v.SetDefault(KeyMetricsAddr, d.MetricsAddr)
	v.SetDefault(KeyVerbose, d.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// Validate reports settings that cannot be combined or parsed.
// Every returned error wraps ErrUsage.
func (c Config) Validate() error {
	if c.NoCache {
		switch {
		case c.RefreshCache:
			return fmt.Errorf("%w: --no-cache cannot be used with --refresh-cache", ErrUsage)
		case c.CacheDir != DefaultCacheDir:
			return fmt.Errorf("%w: --no-cache cannot be used with --cachedir", ErrUsage)
		case c.CacheURL != "":
			return fmt.Errorf("%w: --no-cache cannot be used with --cache-url", ErrUsage)
		}
	}
	if c.Months < 0 {
		return fmt.Errorf("%w: --months must not be negative", ErrUsage)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%w: --cache-size must not be negative", ErrUsage)
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: --cache-ttl must not be negative", ErrUsage)
	}
	if _, err := c.Filters(); err != nil {
		return err
	}
	if _, err := c.StartColor(); err != nil {
		return err
	}
	switch c.Openings {
	case "builtin", "eco":
	default:
		return fmt.Errorf("%w: unknown openings %q", ErrUsage, c.Openings)
	}
	switch c.CacheCompression {
	case "none", "gzip", "zstd":
	default:
		return fmt.Errorf("%w: unknown cache compression %q", ErrUsage, c.CacheCompression)
	}
	if c.CacheURL != "" && !hasScheme(c.CacheURL, "gs", "s3", "redis", "rediss") {
		return fmt.Errorf("%w: unsupported cache URL %q", ErrUsage, c.CacheURL)
	}
	return nil
}

// Filters returns the game filters selected by c.
func (c Config) Filters() (game.Filters, error) {
	f := game.Filters{
		MonthsBack:      c.Months,
		ExcludeComputer: c.ExcludeComputer,
	}
	for _, s := range c.Speeds {
		for _, part := range strings.Split(s, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			sp, err := game.ParseSpeed(part)
			if err != nil {
				return game.Filters{}, fmt.Errorf("%w: %v", ErrUsage, err)
			}
			f.Speeds = append(f.Speeds, sp)
		}
	}
	return f, nil
}

// StartColor returns the color studied first.
func (c Config) StartColor() (game.Color, error) {
	col, err := game.ParseColor(c.Color)
	if err != nil {
		return game.White, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return col, nil
}

func hasScheme(url string, schemes ...string) bool {
	for _, s := range schemes {
		if strings.HasPrefix(url, s+"://") {
			return true
		}
	}
	return false
}
