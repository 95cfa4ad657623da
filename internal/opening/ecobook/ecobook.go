// Package ecobook provides an opening catalog backed by the ECO book shipped
// with github.com/notnil/chess.
//
// The book itself resolves a move list to its deepest named ancestor. This
// catalog narrows that to an exact match: a name is returned only when the
// named ECO line has the same length as the path.
package ecobook

import (
	"github.com/notnil/chess/opening"

	"github.com/discochess/repertoire/internal/board"
	internalopening "github.com/discochess/repertoire/internal/opening"
)

// Compile-time check that Catalog implements opening.Catalog.
var _ internalopening.Catalog = (*Catalog)(nil)

// Catalog is an exact-match view of the ECO opening book.
type Catalog struct {
	book      *opening.BookECO
	withCodes bool
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithCodes prefixes names with their ECO code, e.g. "B20 Sicilian Defense".
func WithCodes() Option {
	return func(c *Catalog) { c.withCodes = true }
}

// New loads the ECO book.
func New(opts ...Option) *Catalog {
	c := &Catalog{book: opening.NewBookECO()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup returns the ECO title of the line that is exactly path.
// Paths that cannot be replayed never match.
func (c *Catalog) Lookup(path []string) (string, bool) {
	if len(path) == 0 {
		return "", false
	}
	g, err := board.Replay(path)
	if err != nil {
		return "", false
	}
	op := c.book.Find(g.Moves())
	if op == nil {
		return "", false
	}
	if len(op.Game().Moves()) != len(path) {
		return "", false
	}
	if c.withCodes {
		return op.Code() + " " + op.Title(), true
	}
	return op.Title(), true
}
