package lichess

import (
	"strings"
	"time"

	"github.com/discochess/repertoire/internal/game"
)

// countResponse answers a games request with nb=0.
type countResponse struct {
	NbResults int `json:"nbResults"`
}

// pageResponse is one page of a user's games.
type pageResponse struct {
	CurrentPage        int       `json:"currentPage"`
	NbPages            int       `json:"nbPages"`
	CurrentPageResults []apiGame `json:"currentPageResults"`
}

type apiGame struct {
	ID        string     `json:"id"`
	URL       string     `json:"url"`
	Variant   string     `json:"variant"`
	Speed     string     `json:"speed"`
	Status    string     `json:"status"`
	CreatedAt int64      `json:"createdAt"` // milliseconds since the epoch
	Winner    string     `json:"winner"`
	Moves     string     `json:"moves"`
	Players   apiPlayers `json:"players"`
}

type apiPlayers struct {
	White apiPlayer `json:"white"`
	Black apiPlayer `json:"black"`
}

type apiPlayer struct {
	UserID  string   `json:"userId"`
	Rating  int      `json:"rating"`
	User    *apiUser `json:"user"`
	AILevel int      `json:"aiLevel"`
}

type apiUser struct {
	Name string `json:"name"`
}

// finished lists the statuses of games that ended in a result.
var finished = map[string]bool{
	"mate":      true,
	"resign":    true,
	"outoftime": true,
	"timeout":   true,
	"stalemate": true,
	"draw":      true,
}

// normalize converts g into a record relative to username. It reports false
// for games that are not standard chess, have no moves, or did not finish.
func normalize(username string, g apiGame) (game.Record, bool) {
	if g.Variant != "standard" || !finished[g.Status] {
		return game.Record{}, false
	}
	moves := strings.Fields(g.Moves)
	if len(moves) == 0 {
		return game.Record{}, false
	}

	color := game.Black
	if strings.EqualFold(g.Players.White.UserID, username) {
		color = game.White
	}

	result := game.Draw
	if g.Status != "stalemate" && g.Status != "draw" && g.Winner != "" {
		if (g.Winner == "white") == (color == game.White) {
			result = game.Win
		} else {
			result = game.Loss
		}
	}

	url := g.URL
	if url == "" && g.ID != "" {
		url = "https://lichess.org/" + g.ID
	}

	return game.Record{
		ID:         g.ID,
		URL:        url,
		Moves:      moves,
		UserColor:  color,
		UserResult: result,
		Speed:      game.Speed(g.Speed),
		Status:     g.Status,
		CreatedAt:  time.UnixMilli(g.CreatedAt),
		Players: game.Players{
			White: g.Players.White.player(),
			Black: g.Players.Black.player(),
		},
	}, true
}

func (p apiPlayer) player() game.Player {
	name := p.UserID
	if p.User != nil && p.User.Name != "" {
		name = p.User.Name
	}
	return game.Player{
		UserID: p.UserID,
		Name:   name,
		Rating: p.Rating,
	}
}
