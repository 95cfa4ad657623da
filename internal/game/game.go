// Package game defines the normalized game record shared by game sources,
// the move tree and the explorer.
package game

import (
	"fmt"
	"strings"
	"time"
)

// Color is the side a player had in a game.
type Color int

const (
	// White moves at even plies.
	White Color = iota
	// Black moves at odd plies.
	Black
)

// Opposite returns the other color.
func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

// String returns "white" or "black".
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// ParseColor parses "white"/"w" or "black"/"b", case-insensitively.
func ParseColor(s string) (Color, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, nil
	case "black", "b":
		return Black, nil
	default:
		return White, fmt.Errorf("unknown color %q", s)
	}
}

// Result is the outcome of a game from the tracked player's point of view.
type Result int

const (
	Win Result = iota
	Draw
	Loss
)

// String returns "win", "draw" or "loss".
func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// Speed is a Lichess time-control category.
type Speed string

const (
	UltraBullet    Speed = "ultraBullet"
	Bullet         Speed = "bullet"
	Blitz          Speed = "blitz"
	Rapid          Speed = "rapid"
	Classical      Speed = "classical"
	Correspondence Speed = "correspondence"
	Unlimited      Speed = "unlimited"
)

// Speeds lists every accepted speed in display order.
var Speeds = []Speed{UltraBullet, Bullet, Blitz, Rapid, Classical, Correspondence, Unlimited}

// ParseSpeed matches s against Speeds, case-insensitively.
func ParseSpeed(s string) (Speed, error) {
	s = strings.TrimSpace(s)
	for _, sp := range Speeds {
		if strings.EqualFold(string(sp), s) {
			return sp, nil
		}
	}
	return "", fmt.Errorf("unknown speed %q", s)
}

// Player identifies one side of a game. UserID is empty for computer opponents.
type Player struct {
	UserID string
	Name   string
	Rating int
}

// Players holds both sides of a game.
type Players struct {
	White Player
	Black Player
}

// Record is one finished game, normalized relative to the tracked player.
// A Record and its Moves slice must not be modified after construction.
type Record struct {
	ID         string
	URL        string
	Moves      []string
	UserColor  Color
	UserResult Result
	Speed      Speed
	Status     string
	CreatedAt  time.Time
	Players    Players
}

// HasPrefix reports whether the game's first len(path) moves equal path.
func (r *Record) HasPrefix(path []string) bool {
	if len(r.Moves) < len(path) {
		return false
	}
	for i, m := range path {
		if r.Moves[i] != m {
			return false
		}
	}
	return true
}

// FilterPrefix returns the games whose move list starts with path.
// The result never aliases games.
func FilterPrefix(games []Record, path []string) []Record {
	out := make([]Record, 0, len(games))
	for i := range games {
		if games[i].HasPrefix(path) {
			out = append(out, games[i])
		}
	}
	return out
}

// FilterColor returns the games in which the tracked player had color c.
func FilterColor(games []Record, c Color) []Record {
	out := make([]Record, 0, len(games))
	for i := range games {
		if games[i].UserColor == c {
			out = append(out, games[i])
		}
	}
	return out
}
