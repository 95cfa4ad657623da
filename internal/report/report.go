// Package report renders explorer state for the terminal: the move
// statistics of a position, the line played so far and game lists.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/discochess/repertoire"
	"github.com/discochess/repertoire/internal/game"
	"github.com/discochess/repertoire/internal/movetree"
)

// DefaultWidth is the line width used when the terminal size is unknown.
const DefaultWidth = 80

// Plural formats n with noun, adding "s" unless n is 1: "1 game", "2 games".
func Plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}

// MoveLabel numbers the move played at ply (0-based): "3. Nf3" for White,
// "3... Nc6" for Black.
func MoveLabel(ply int, move string) string {
	n := ply/2 + 1
	if ply%2 == 0 {
		return fmt.Sprintf("%d. %s", n, move)
	}
	return fmt.Sprintf("%d... %s", n, move)
}

// Score is the expected score of the tally from the player's side: a win
// counts 1, a draw one half and a loss 0. It is 0 for an empty tally.
func Score(t movetree.Tally) float64 {
	if t.Total() == 0 {
		return 0
	}
	return stat.Mean(
		[]float64{1, 0.5, 0},
		[]float64{float64(t.Wins), float64(t.Draws), float64(t.Losses)},
	)
}

// Header returns the title above the move list of a position.
func Header(yourTurn bool, games int) string {
	if yourTurn {
		return fmt.Sprintf("YOUR MOVES (from %s)", Plural(games, "game"))
	}
	return fmt.Sprintf("YOUR OPPONENTS' MOVES (from %s)", Plural(games, "game"))
}

// Stats writes the moves available at the explorer's position, most played
// first, followed by the line played so far.
func Stats(w io.Writer, e *repertoire.Explorer, width int) {
	fmt.Fprintf(w, "\n%s\n", Header(e.YourTurn(), len(e.Games())))

	ply := e.Depth()
	for _, b := range e.AvailableMoves() {
		fmt.Fprintln(w, moveLine(ply, b))
	}
	fmt.Fprintln(w)

	opening, _ := e.Opening()
	if line := Line(e.Path(), opening, width); line != "" {
		fmt.Fprintln(w, line)
	}
}

func moveLine(ply int, b movetree.Branch) string {
	t := b.Node.Tally()
	wins, draws, losses := t.Rates()
	return fmt.Sprintf("%-12s (you won %6.2f%%, drew %6.2f%%, and lost %6.2f%%, from %s; score %.2f)",
		MoveLabel(ply, b.Move),
		wins*100, draws*100, losses*100,
		Plural(t.Total(), "game"),
		Score(t),
	)
}

// Line formats path as numbered move pairs, "1. e4 e5  2. Nf3", followed by
// the opening name in parentheses when known, wrapping at width columns.
// It returns "" for an empty path.
func Line(path []string, opening string, width int) string {
	if len(path) == 0 {
		return ""
	}
	if width <= 0 {
		width = DefaultWidth
	}

	var chunks []string
	for i := 0; i < len(path); i += 2 {
		chunk := fmt.Sprintf("%d. %s", i/2+1, path[i])
		if i+1 < len(path) {
			chunk += " " + path[i+1]
		}
		chunks = append(chunks, chunk)
	}
	if opening != "" {
		chunks = append(chunks, "("+opening+")")
	}

	var b strings.Builder
	col := 0
	for i, c := range chunks {
		if i > 0 {
			if col+2+len(c) > width {
				b.WriteString("\n")
				col = 0
			} else {
				b.WriteString("  ")
				col += 2
			}
		}
		b.WriteString(c)
		col += len(c)
	}
	return b.String()
}

// PlayerName is the display name of p, "Stockfish" for computer players.
func PlayerName(p game.Player) string {
	switch {
	case p.UserID == "":
		return "Stockfish"
	case p.Name != "":
		return p.Name
	default:
		return p.UserID
	}
}

// Games writes one line per game: "white vs. black (url)".
func Games(w io.Writer, games []game.Record) {
	for _, g := range games {
		line := PlayerName(g.Players.White) + " vs. " + PlayerName(g.Players.Black)
		if g.URL != "" {
			line += " (" + g.URL + ")"
		}
		fmt.Fprintln(w, line)
	}
}

// Help describes the REPL commands.
const Help = `Commands:
  <move>      play a move in algebraic notation, e.g. e4 or Nf3
  back [n]    take back the last move, or go back to move n
  start       return to the starting position
  flip        study the other color from the starting position
  board       show the board
  stats       show the moves played from this position
  games       list the games that reached this position
  help        show this message
  quit, exit  leave`
