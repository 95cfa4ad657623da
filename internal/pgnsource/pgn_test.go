package pgnsource

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/discochess/repertoire/internal/game"
)

const samplePGN = `[Event "Rated Blitz game"]
[Site "https://lichess.org/AbCdEfGh"]
[White "Alice"]
[Black "bob"]
[Result "1-0"]
[UTCDate "2024.03.01"]
[UTCTime "18:30:00"]
[TimeControl "180+2"]
[Termination "Normal"]

1. e4 e5 2. Nf3 Nc6 3. Bb5 a6 1-0

[Event "Rated Rapid game"]
[Site "https://lichess.org/IjKlMnOp"]
[White "bob"]
[Black "alice"]
[Result "1/2-1/2"]
[UTCDate "2024.03.02"]
[UTCTime "09:00:00"]
[TimeControl "600+0"]

1. d4 Nf6 2. c4 g6 1/2-1/2

[Event "Casual game"]
[Site "https://lichess.org/QrStUvWx"]
[White "carol"]
[Black "dave"]
[Result "0-1"]

1. e4 c5 0-1

[Event "Rated Bullet game"]
[Site "https://lichess.org/YzAbCdEf"]
[White "Stockfish"]
[Black "ALICE"]
[Result "1-0"]
[TimeControl "60+0"]

1. e4 c5 2. Nf3 d6 1-0

`

func TestRead(t *testing.T) {
	games, err := Read(context.Background(), strings.NewReader(samplePGN), "alice")
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(games) != 3 {
		t.Fatalf("Read() = %d games, want 3", len(games))
	}

	first := games[0]
	if first.ID != "AbCdEfGh" || first.URL != "https://lichess.org/AbCdEfGh" {
		t.Errorf("first ID/URL = %q/%q", first.ID, first.URL)
	}
	if want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5", "a6"}; !reflect.DeepEqual(first.Moves, want) {
		t.Errorf("first Moves = %v, want %v", first.Moves, want)
	}
	if first.UserColor != game.White || first.UserResult != game.Win {
		t.Errorf("first = %v/%v, want white win", first.UserColor, first.UserResult)
	}
	if first.Speed != game.Blitz || first.Status != "normal" {
		t.Errorf("first speed/status = %q/%q", first.Speed, first.Status)
	}
	if want := time.Date(2024, 3, 1, 18, 30, 0, 0, time.UTC); !first.CreatedAt.Equal(want) {
		t.Errorf("first CreatedAt = %v, want %v", first.CreatedAt, want)
	}

	if g := games[1]; g.UserColor != game.Black || g.UserResult != game.Draw || g.Speed != game.Rapid {
		t.Errorf("second = %v/%v/%v, want black draw rapid", g.UserColor, g.UserResult, g.Speed)
	}

	last := games[2]
	if last.UserColor != game.Black || last.UserResult != game.Loss || last.Speed != game.Bullet {
		t.Errorf("last = %v/%v/%v, want black loss bullet", last.UserColor, last.UserResult, last.Speed)
	}
	if last.Players.White.UserID != "" {
		t.Errorf("engine opponent has user ID %q", last.Players.White.UserID)
	}
}

func TestRead_NoGames(t *testing.T) {
	_, err := Read(context.Background(), strings.NewReader(samplePGN), "mallory")
	if !errors.Is(err, ErrNoGames) {
		t.Errorf("Read() error = %v, want ErrNoGames", err)
	}
}

func TestSource_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.pgn")
	// The same export twice must not double count.
	if err := os.WriteFile(path, []byte(samplePGN+samplePGN), 0o644); err != nil {
		t.Fatal(err)
	}

	src := New(path)
	games, err := src.Fetch(context.Background(), "Alice", game.Filters{})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(games) != 3 {
		t.Errorf("Fetch() = %d games, want 3", len(games))
	}

	games, err = src.Fetch(context.Background(), "alice", game.Filters{
		Speeds:          []game.Speed{game.Blitz, game.Bullet},
		ExcludeComputer: true,
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(games) != 1 || games[0].ID != "AbCdEfGh" {
		t.Errorf("filtered Fetch() = %+v, want the blitz game", games)
	}
}

func TestSource_FetchMonthsLogsUndated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.pgn")
	if err := os.WriteFile(path, []byte(samplePGN), 0o644); err != nil {
		t.Fatal(err)
	}
	core, logs := observer.New(zap.DebugLevel)
	now := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	src := New(path,
		WithLogger(zap.New(core)),
		WithClock(func() time.Time { return now }),
	)

	games, err := src.Fetch(context.Background(), "alice", game.Filters{MonthsBack: 1})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	// The undated Stockfish game cannot be placed in the last month.
	if len(games) != 2 {
		t.Errorf("Fetch() = %d games, want the 2 dated ones", len(games))
	}
	entries := logs.FilterMessage("undated games dropped by the months filter").All()
	if len(entries) != 1 {
		t.Fatalf("logged %d undated entries, want 1", len(entries))
	}
	if got := entries[0].ContextMap()["undated"]; got != int64(1) {
		t.Errorf("undated = %v, want 1", got)
	}

	logs.TakeAll()
	if _, err := src.Fetch(context.Background(), "alice", game.Filters{}); err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if n := logs.FilterMessage("undated games dropped by the months filter").Len(); n != 0 {
		t.Errorf("logged undated games without a months filter")
	}
}

func TestSource_FetchMissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.pgn")).Fetch(context.Background(), "alice", game.Filters{})
	if err == nil {
		t.Error("Fetch() of a missing file should fail")
	}
}

func TestSpeedOf(t *testing.T) {
	tests := map[string]game.Speed{
		"15+0":   game.UltraBullet,
		"60+0":   game.Bullet,
		"120+1":  game.Bullet,
		"180+2":  game.Blitz,
		"600+0":  game.Rapid,
		"900+10": game.Rapid,
		"1800+0": game.Classical,
		"-":      game.Correspondence,
		"":       game.Correspondence,
		"junk":   "",
	}
	for tc, want := range tests {
		if got := speedOf(tc); got != want {
			t.Errorf("speedOf(%q) = %q, want %q", tc, got, want)
		}
	}
}
