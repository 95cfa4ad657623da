// Package repertoire explores the opening repertoire implicit in one
// player's game history.
//
// An Explorer builds a move tree from a list of games and walks it: each
// position lists the moves played from it with win, draw and loss counts,
// names the opening when it is known, and supports backtracking and
// switching the color under study.
//
// Example usage:
//
//	games, err := source.Fetch(ctx, "alice", repertoire.Filters{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ex, err := repertoire.New(games)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ex.Advance("e4"); err != nil {
//	    log.Fatal(err)
//	}
//	for _, b := range ex.AvailableMoves() {
//	    fmt.Println(b.Move, b.Node.Tally().Total())
//	}
package repertoire

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/discochess/repertoire/internal/board"
	"github.com/discochess/repertoire/internal/game"
	"github.com/discochess/repertoire/internal/movetree"
	"github.com/discochess/repertoire/internal/opening"
	"github.com/discochess/repertoire/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidMove indicates no active game continues with the move.
	ErrInvalidMove = errors.New("repertoire: no games with this move")

	// ErrAlreadyAtStart indicates a backtrack from the starting position.
	ErrAlreadyAtStart = errors.New("repertoire: already at the starting position")

	// ErrMoveNumberOutOfRange indicates a backtrack target that is not an
	// ancestor of the current position.
	ErrMoveNumberOutOfRange = errors.New("repertoire: move number out of range")

	// ErrNoCatalog indicates a nil opening catalog was configured.
	ErrNoCatalog = errors.New("repertoire: no opening catalog provided")
)

// Explorer navigates the move tree of one player's games.
//
// An Explorer is not safe for concurrent use.
type Explorer struct {
	source  []GameRecord
	catalog opening.Catalog
	stats   stats.Collector
	logger  *zap.Logger

	color      Color
	all        []GameRecord
	root       *movetree.Node
	current    *movetree.Node
	active     []GameRecord
	opening    string
	openingPly int
	nodes      int
}

// New creates an Explorer over games positioned at the start for the
// configured color. The games slice is not modified.
func New(games []GameRecord, opts ...Option) (*Explorer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	if cfg.catalog == nil {
		return nil, ErrNoCatalog
	}

	e := &Explorer{
		source:  games,
		catalog: cfg.catalog,
		stats:   cfg.stats,
		logger:  cfg.logger,
	}
	e.Reset(cfg.color)

	e.logger.Debug("explorer initialized",
		zap.Int("games", len(games)),
		zap.Stringer("color", e.color),
	)
	return e, nil
}

// Reset studies color c from the starting position with a fresh tree.
func (e *Explorer) Reset(c Color) {
	e.color = c
	e.all = game.FilterColor(e.source, c)
	e.root = movetree.NewRoot()
	e.current = e.root
	e.active = e.all
	e.opening = ""
	e.openingPly = 0
	e.nodes = 1
	e.expand()

	e.stats.IncCounter(stats.MetricResets, 1)
	e.stats.SetGauge(stats.MetricActiveGames, int64(len(e.active)))
}

// Restart returns to the starting position, keeping the color.
func (e *Explorer) Restart() {
	e.Reset(e.color)
}

// Flip returns to the starting position with the opposite color.
func (e *Explorer) Flip() {
	e.Reset(e.color.Opposite())
}

// Advance plays move from the current position.
// It returns ErrInvalidMove, leaving the explorer unchanged, if no active game
// continues with move.
func (e *Explorer) Advance(move string) error {
	child, ok := e.current.Child(move)
	if !ok {
		e.stats.IncCounter(stats.MetricInvalidMoves, 1)
		return fmt.Errorf("%w: %s", ErrInvalidMove, move)
	}

	e.current = child
	path := child.Path()
	e.active = game.FilterPrefix(e.active, path)

	if e.opening == "" {
		if name, ok := e.catalog.Lookup(path); ok {
			e.opening = name
			e.openingPly = len(path)
			e.logger.Debug("opening identified",
				zap.String("opening", name),
				zap.Int("ply", e.openingPly),
			)
		}
	}
	e.expand()

	e.stats.IncCounter(stats.MetricAdvances, 1)
	e.stats.SetGauge(stats.MetricActiveGames, int64(len(e.active)))
	return nil
}

// Backtrack takes back the last move.
// It returns ErrAlreadyAtStart, and does nothing, at the starting position.
func (e *Explorer) Backtrack() error {
	parent := e.current.Parent()
	if parent == nil {
		return ErrAlreadyAtStart
	}

	e.current = parent
	path := parent.Path()
	// Narrowed sets cannot recover games excluded deeper in the line, so the
	// active set is rebuilt from every game of the color.
	e.active = game.FilterPrefix(e.all, path)

	if len(path) <= e.openingPly {
		if name, ok := e.catalog.Lookup(path); ok {
			e.opening = name
			e.openingPly = len(path)
		} else {
			e.opening = ""
			e.openingPly = 0
		}
	}

	e.stats.IncCounter(stats.MetricBacktracks, 1)
	e.stats.SetGauge(stats.MetricActiveGames, int64(len(e.active)))
	return nil
}

// BacktrackTo takes back moves until White's move moveNumber is the last
// move played, that is until the depth is 2*moveNumber-1.
// It returns ErrMoveNumberOutOfRange, and does nothing, if that position is
// not on the current line.
func (e *Explorer) BacktrackTo(moveNumber int) error {
	target := 2*moveNumber - 1
	if moveNumber < 1 || target > e.Depth() {
		return fmt.Errorf("%w: %d", ErrMoveNumberOutOfRange, moveNumber)
	}
	for e.Depth() > target {
		if err := e.Backtrack(); err != nil {
			return err
		}
	}
	return nil
}

// expand builds the next ply below the current node from the active games.
func (e *Explorer) expand() {
	if e.current.Expanded() {
		return
	}
	e.current.Expand(e.active)
	e.nodes += e.current.Len()
	e.stats.SetGauge(stats.MetricTreeNodes, int64(e.nodes))
}

// YourTurn reports whether the studied color is to move.
func (e *Explorer) YourTurn() bool {
	if e.color == White {
		return e.Depth()%2 == 0
	}
	return e.Depth()%2 == 1
}

// AvailableMoves returns the moves played from the current position, most
// played first, ties ordered by move string.
func (e *Explorer) AvailableMoves() []movetree.Branch {
	return e.current.Branches()
}

// Color returns the color under study.
func (e *Explorer) Color() Color {
	return e.color
}

// Depth returns the number of plies played from the start.
func (e *Explorer) Depth() int {
	return e.current.Depth()
}

// Path returns the moves played from the start.
func (e *Explorer) Path() []string {
	return e.current.Path()
}

// Node returns the current tree node.
func (e *Explorer) Node() *movetree.Node {
	return e.current
}

// Games returns the games consistent with the current position.
// The slice must not be modified.
func (e *Explorer) Games() []GameRecord {
	return e.active
}

// AllGames returns every game of the color under study.
// The slice must not be modified.
func (e *Explorer) AllGames() []GameRecord {
	return e.all
}

// Opening returns the name of the opening identified on the current line.
func (e *Explorer) Opening() (string, bool) {
	return e.opening, e.opening != ""
}

// OpeningPly returns the depth at which the opening name was last assigned,
// or 0 if there is none.
func (e *Explorer) OpeningPly() int {
	return e.openingPly
}

// Board returns a diagram of the current position.
func (e *Explorer) Board() (string, error) {
	diagram, err := board.Draw(e.current.Path())
	if err != nil {
		return "", fmt.Errorf("replaying moves: %w", err)
	}
	return diagram, nil
}
