package lichess

import (
	"reflect"
	"testing"
	"time"

	"github.com/discochess/repertoire/internal/game"
)

func TestNormalize(t *testing.T) {
	base := apiGame{
		ID:        "abcd1234",
		Variant:   "standard",
		Speed:     "rapid",
		Status:    "mate",
		CreatedAt: 1700000000000,
		Winner:    "black",
		Moves:     "e4 e5 Qh5 Nc6 Bc4 Nf6 Qxf7#",
		Players: apiPlayers{
			White: apiPlayer{UserID: "alice", Rating: 1500, User: &apiUser{Name: "Alice"}},
			Black: apiPlayer{AILevel: 3},
		},
	}

	rec, ok := normalize("ALICE", base)
	if !ok {
		t.Fatal("normalize() rejected a finished standard game")
	}
	if rec.UserColor != game.White || rec.UserResult != game.Loss {
		t.Errorf("color/result = %v/%v, want white/loss", rec.UserColor, rec.UserResult)
	}
	if want := []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6", "Qxf7#"}; !reflect.DeepEqual(rec.Moves, want) {
		t.Errorf("Moves = %v, want %v", rec.Moves, want)
	}
	if rec.Players.White.Name != "Alice" || rec.Players.Black.UserID != "" {
		t.Errorf("Players = %+v", rec.Players)
	}
	if rec.URL != "https://lichess.org/abcd1234" {
		t.Errorf("URL = %q", rec.URL)
	}
	if !rec.CreatedAt.Equal(time.UnixMilli(1700000000000)) || rec.Speed != game.Rapid {
		t.Errorf("CreatedAt/Speed = %v/%v", rec.CreatedAt, rec.Speed)
	}
}

func TestNormalize_Results(t *testing.T) {
	tests := []struct {
		status string
		winner string
		want   game.Result
	}{
		{"resign", "white", game.Win},
		{"outoftime", "black", game.Loss},
		{"draw", "", game.Draw},
		{"stalemate", "", game.Draw},
		{"outoftime", "", game.Draw},
	}
	for _, tt := range tests {
		g := apiGame{
			Variant: "standard",
			Status:  tt.status,
			Winner:  tt.winner,
			Moves:   "e4",
			Players: apiPlayers{White: apiPlayer{UserID: "alice"}},
		}
		rec, ok := normalize("alice", g)
		if !ok {
			t.Errorf("%s/%s rejected", tt.status, tt.winner)
			continue
		}
		if rec.UserResult != tt.want {
			t.Errorf("%s/%s: result = %v, want %v", tt.status, tt.winner, rec.UserResult, tt.want)
		}
	}
}

func TestNormalize_Rejects(t *testing.T) {
	tests := map[string]apiGame{
		"variant":   {Variant: "chess960", Status: "mate", Moves: "e4"},
		"no moves":  {Variant: "standard", Status: "mate", Moves: ""},
		"aborted":   {Variant: "standard", Status: "aborted", Moves: "e4"},
		"unstarted": {Variant: "standard", Status: "started", Moves: "e4 e5"},
	}
	for name, g := range tests {
		if _, ok := normalize("alice", g); ok {
			t.Errorf("%s: normalize() accepted the game", name)
		}
	}
}
