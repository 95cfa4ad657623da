package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/config"
	"github.com/discochess/repertoire/internal/lichess"
	"github.com/discochess/repertoire/internal/opening"
	"github.com/discochess/repertoire/internal/opening/ecobook"
	"github.com/discochess/repertoire/internal/pgnsource"
	"github.com/discochess/repertoire/internal/repl"
	"github.com/discochess/repertoire/internal/report"
	"github.com/discochess/repertoire/internal/stats"
	"github.com/discochess/repertoire/internal/store/cachedstore"
)

// Compile-time checks that both game sources implement repertoire.Source.
var (
	_ repertoire.Source = (*lichess.Client)(nil)
	_ repertoire.Source = (*pgnsource.Source)(nil)
)

// configFile is the optional configuration file.
var configFile string

var rootCmd = &cobra.Command{
	Use:   "repertoire [username]",
	Short: "Explore the openings a Lichess player has played",
	Long: `Repertoire downloads the finished games of a Lichess player and lets you
walk through the openings they played, move by move, with the results
each move led to.

Examples:
  # Explore alice's games
  repertoire alice

  # Only blitz and rapid games from the last six months, as Black
  repertoire alice --speeds blitz,rapid --months 6 --color black

  # Share the response cache through Redis
  repertoire alice --cache-url redis://localhost:6379/0`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runExplore,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "configuration file (yaml, json or toml)")
	config.RegisterFlags(rootCmd.PersistentFlags())
}

// loadConfig reads and validates the configuration of cmd.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.Flags(), configFile)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	in := bufio.NewReader(cmd.InOrStdin())
	out := cmd.OutOrStdout()

	collector, stopMetrics := startMetrics(cfg.MetricsAddr, cfg.Verbose, logger)
	defer stopMetrics()

	username := ""
	if len(args) > 0 {
		username = args[0]
	} else {
		fmt.Fprint(out, "Please enter your Lichess username: ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading username: %w", err)
		}
		username = strings.TrimSpace(line)
	}
	if username == "" {
		return fmt.Errorf("%w: no username given", config.ErrUsage)
	}

	source, closeSource, err := newSource(ctx, cfg, collector, logger, out)
	if err != nil {
		return err
	}
	defer closeSource()

	filters, err := cfg.Filters()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Loading user data...")
	games, err := source.Fetch(ctx, username, filters)
	if err != nil {
		return fmt.Errorf("loading games of %s: %w", username, err)
	}
	logger.Info("games loaded", zap.String("user", username), zap.Int("games", len(games)))

	color, err := cfg.StartColor()
	if err != nil {
		return err
	}
	ex, err := repertoire.New(games,
		repertoire.WithColor(color),
		repertoire.WithCatalog(newCatalog(cfg.Openings)),
		repertoire.WithStats(collector),
		repertoire.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	session := repl.New(ex, in, out,
		repl.WithWidth(terminalWidth()),
		repl.WithLogger(logger),
	)
	return session.Run(ctx)
}

// newSource returns the PGN source when a file is configured, the Lichess
// client otherwise. The returned func releases the response cache.
func newSource(ctx context.Context, cfg config.Config, collector stats.Collector, logger *zap.Logger, progress io.Writer) (repertoire.Source, func(), error) {
	if cfg.PGN != "" {
		return pgnsource.New(cfg.PGN, pgnsource.WithLogger(logger)), func() {}, nil
	}

	cache, err := openCache(ctx, cfg, collector, logger)
	if err != nil {
		return nil, nil, err
	}
	closeCache := func() {
		if cache == nil {
			return
		}
		if cs, ok := cache.(*cachedstore.Store); ok {
			logger.Debug("memory cache", zap.Stringer("stats", cs.Stats()))
		}
		if err := cache.Close(); err != nil {
			logger.Warn("closing cache", zap.Error(err))
		}
	}

	opts := []lichess.Option{
		lichess.WithRefresh(cfg.RefreshCache),
		lichess.WithProgress(lichess.NewProgressPrinter(progress)),
		lichess.WithStats(collector),
		lichess.WithLogger(logger.Named("lichess")),
	}
	if cache != nil {
		opts = append(opts, lichess.WithStore(cache))
	}
	return lichess.New(opts...), closeCache, nil
}

func newCatalog(name string) opening.Catalog {
	if name == "eco" {
		return ecobook.New()
	}
	return opening.Builtin()
}

// newLogger writes console-encoded logs to w, at debug level when verbose
// and warn level otherwise.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// terminalWidth is the width of stdout, or report.DefaultWidth when stdout
// is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return report.DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return report.DefaultWidth
	}
	return width
}
