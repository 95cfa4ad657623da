package repertoire

import (
	"context"

	"github.com/discochess/repertoire/internal/game"
)

// GameRecord is one finished game, normalized relative to the tracked player.
type GameRecord = game.Record

// Color is the side the tracked player had.
type Color = game.Color

// Result is a game outcome from the tracked player's point of view.
type Result = game.Result

// Speed is a time-control category.
type Speed = game.Speed

// Filters restricts the games a Source returns.
type Filters = game.Filters

const (
	White = game.White
	Black = game.Black

	Win  = game.Win
	Draw = game.Draw
	Loss = game.Loss
)

// Source supplies the games of one player.
//
// Fetch returns a complete, deduplicated list already restricted by filters.
// It may block for a long time while it retrieves, paces and caches requests.
type Source interface {
	Fetch(ctx context.Context, username string, filters Filters) ([]GameRecord, error)
}
