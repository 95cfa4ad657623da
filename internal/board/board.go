// Package board reconstructs positions by replaying recorded SAN moves.
package board

import (
	"fmt"

	"github.com/notnil/chess"
)

// Replay plays path from the standard starting position.
// Moves must be in standard algebraic notation.
func Replay(path []string) (*chess.Game, error) {
	g := chess.NewGame(chess.UseNotation(chess.AlgebraicNotation{}))
	for i, san := range path {
		if err := g.MoveStr(san); err != nil {
			return nil, fmt.Errorf("ply %d (%s): %w", i+1, san, err)
		}
	}
	return g, nil
}

// Draw returns a text diagram of the position reached by path.
func Draw(path []string) (string, error) {
	g, err := Replay(path)
	if err != nil {
		return "", err
	}
	return g.Position().Board().Draw(), nil
}

// FEN returns the FEN of the position reached by path.
func FEN(path []string) (string, error) {
	g, err := Replay(path)
	if err != nil {
		return "", err
	}
	return g.FEN(), nil
}
