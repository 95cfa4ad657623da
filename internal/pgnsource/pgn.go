// Package pgnsource reads a player's games from a PGN file, for players
// whose games live outside Lichess or for offline use.
package pgnsource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/notnil/chess"
	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/game"
)

// ErrNoGames indicates the file holds no game played by the user.
var ErrNoGames = errors.New("pgnsource: no games for user")

// Source reads games from a PGN file on every Fetch.
type Source struct {
	path   string
	now    func() time.Time
	logger *zap.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Source) { s.logger = l }
}

// WithClock sets the time source used by the MonthsBack filter.
func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

// New creates a Source for the PGN file at path.
func New(path string, opts ...Option) *Source {
	s := &Source{
		path:   path,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Fetch returns the finished games in the file where username played
// either side, matched case-insensitively against the White and Black tags.
func (s *Source) Fetch(ctx context.Context, username string, filters game.Filters) ([]game.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening PGN: %w", err)
	}
	defer f.Close()

	games, err := Read(ctx, f, username)
	if err != nil {
		return nil, err
	}
	games = game.Dedup(games)
	if filters.MonthsBack > 0 {
		if n := countUndated(games); n > 0 {
			s.logger.Debug("undated games dropped by the months filter",
				zap.String("path", s.path),
				zap.Int("undated", n),
			)
		}
	}
	games = filters.Apply(games, s.now())

	s.logger.Debug("loaded PGN games",
		zap.String("path", s.path),
		zap.Int("games", len(games)),
	)
	return games, nil
}

// Read scans every game in r and returns the finished ones played by
// username. It returns ErrNoGames when none match.
func Read(ctx context.Context, r io.Reader, username string) ([]game.Record, error) {
	scanner := chess.NewScanner(r)

	var games []game.Record
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if rec, ok := convert(scanner.Next(), username); ok {
			games = append(games, rec)
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading PGN: %w", err)
	}
	if len(games) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoGames, username)
	}
	return games, nil
}

// convert builds a record from g relative to username. It reports false
// when the user did not play the game, it has no moves, or it has no
// result.
func convert(g *chess.Game, username string) (game.Record, bool) {
	white, black := tag(g, "White"), tag(g, "Black")

	var color game.Color
	switch {
	case strings.EqualFold(white, username):
		color = game.White
	case strings.EqualFold(black, username):
		color = game.Black
	default:
		return game.Record{}, false
	}

	var result game.Result
	switch g.Outcome() {
	case chess.WhiteWon:
		result = winOrLoss(color == game.White)
	case chess.BlackWon:
		result = winOrLoss(color == game.Black)
	case chess.Draw:
		result = game.Draw
	default:
		return game.Record{}, false
	}

	moves := sanMoves(g)
	if len(moves) == 0 {
		return game.Record{}, false
	}

	url := tag(g, "Site")
	if !strings.HasPrefix(url, "http") {
		url = ""
	}

	return game.Record{
		ID:         gameID(g, url),
		URL:        url,
		Moves:      moves,
		UserColor:  color,
		UserResult: result,
		Speed:      speedOf(tag(g, "TimeControl")),
		Status:     status(g),
		CreatedAt:  createdAt(g),
		Players: game.Players{
			White: player(white),
			Black: player(black),
		},
	}, true
}

// status is the Termination tag, e.g. "Normal" or "Time forfeit", or the
// result itself when the tag is missing.
func status(g *chess.Game) string {
	if t := tag(g, "Termination"); t != "" {
		return strings.ToLower(t)
	}
	return string(g.Outcome())
}

func winOrLoss(won bool) game.Result {
	if won {
		return game.Win
	}
	return game.Loss
}

// sanMoves re-encodes the game's moves in standard algebraic notation so
// they match the notation of other sources.
func sanMoves(g *chess.Game) []string {
	moves := g.Moves()
	positions := g.Positions()
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = chess.AlgebraicNotation{}.Encode(positions[i], m)
	}
	return out
}

func tag(g *chess.Game, key string) string {
	if tp := g.GetTagPair(key); tp != nil {
		v := strings.TrimSpace(tp.Value)
		if v != "?" {
			return v
		}
	}
	return ""
}

// gameID prefers the Lichess game ID from the site URL, so a file exported
// twice does not count games twice.
func gameID(g *chess.Game, url string) string {
	if url != "" {
		if i := strings.LastIndex(url, "/"); i >= 0 && i < len(url)-1 {
			return url[i+1:]
		}
	}
	return strings.Join([]string{tag(g, "White"), tag(g, "Black"), tag(g, "UTCDate"), tag(g, "UTCTime")}, "|")
}

// player treats engine names as computer opponents, which have no user ID.
func player(name string) game.Player {
	if name == "" || strings.Contains(strings.ToLower(name), "stockfish") {
		return game.Player{Name: name}
	}
	return game.Player{UserID: strings.ToLower(name), Name: name}
}

// countUndated counts games without a UTCDate or Date tag. Their creation
// time is unknown, so a months filter never keeps them.
func countUndated(games []game.Record) int {
	n := 0
	for _, g := range games {
		if g.CreatedAt.IsZero() {
			n++
		}
	}
	return n
}

func createdAt(g *chess.Game) time.Time {
	date, clock := tag(g, "UTCDate"), tag(g, "UTCTime")
	if date == "" {
		date = tag(g, "Date")
	}
	if clock == "" {
		clock = "00:00:00"
	}
	t, err := time.Parse("2006.01.02 15:04:05", date+" "+clock)
	if err != nil {
		return time.Time{}
	}
	return t
}

// speedOf classifies a "base+increment" time control by the estimated game
// duration base + 40*increment, using the Lichess boundaries.
func speedOf(tc string) game.Speed {
	if tc == "" || tc == "-" {
		return game.Correspondence
	}
	var base, inc int
	if _, err := fmt.Sscanf(tc, "%d+%d", &base, &inc); err != nil {
		return ""
	}
	switch total := base + 40*inc; {
	case total < 30:
		return game.UltraBullet
	case total < 180:
		return game.Bullet
	case total < 480:
		return game.Blitz
	case total < 1500:
		return game.Rapid
	default:
		return game.Classical
	}
}
