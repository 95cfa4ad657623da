package game

import (
	"testing"
	"time"
)

func TestColor_Opposite(t *testing.T) {
	if White.Opposite() != Black {
		t.Error("White.Opposite() != Black")
	}
	if Black.Opposite() != White {
		t.Error("Black.Opposite() != White")
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"white", White, false},
		{"W", White, false},
		{" Black ", Black, false},
		{"b", Black, false},
		{"red", White, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseSpeed(t *testing.T) {
	got, err := ParseSpeed("ULTRABULLET")
	if err != nil {
		t.Fatalf("ParseSpeed() error = %v", err)
	}
	if got != UltraBullet {
		t.Errorf("ParseSpeed() = %q, want %q", got, UltraBullet)
	}
	if _, err := ParseSpeed("hyper"); err == nil {
		t.Error("ParseSpeed(hyper) should fail")
	}
}

func TestRecord_HasPrefix(t *testing.T) {
	r := Record{Moves: []string{"e4", "e5", "Nf3"}}
	tests := []struct {
		path []string
		want bool
	}{
		{nil, true},
		{[]string{"e4"}, true},
		{[]string{"e4", "e5", "Nf3"}, true},
		{[]string{"e4", "c5"}, false},
		{[]string{"e4", "e5", "Nf3", "Nc6"}, false},
	}
	for _, tt := range tests {
		if got := r.HasPrefix(tt.path); got != tt.want {
			t.Errorf("HasPrefix(%v) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestFilterPrefix(t *testing.T) {
	games := []Record{
		{ID: "a", Moves: []string{"e4", "e5"}},
		{ID: "b", Moves: []string{"e4", "c5"}},
		{ID: "c", Moves: []string{"d4"}},
	}
	got := FilterPrefix(games, []string{"e4"})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("FilterPrefix() = %+v", got)
	}
}

func TestFilters_Apply(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	human := Players{White: Player{UserID: "alice"}, Black: Player{UserID: "bob"}}
	games := []Record{
		{ID: "recent-blitz", Speed: Blitz, CreatedAt: now.Add(-24 * time.Hour), Players: human},
		{ID: "old-blitz", Speed: Blitz, CreatedAt: now.Add(-90 * 24 * time.Hour), Players: human},
		{ID: "recent-bullet", Speed: Bullet, CreatedAt: now.Add(-time.Hour), Players: human},
		{ID: "computer", Speed: Blitz, CreatedAt: now.Add(-time.Hour),
			Players: Players{White: Player{UserID: "alice"}}},
	}

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"no filters", Filters{}, []string{"recent-blitz", "old-blitz", "recent-bullet", "computer"}},
		{"speeds", Filters{Speeds: []Speed{Bullet}}, []string{"recent-bullet"}},
		{"months", Filters{MonthsBack: 2}, []string{"recent-blitz", "recent-bullet", "computer"}},
		{"exclude computer", Filters{ExcludeComputer: true}, []string{"recent-blitz", "old-blitz", "recent-bullet"}},
		{"combined", Filters{Speeds: []Speed{Blitz}, MonthsBack: 1, ExcludeComputer: true}, []string{"recent-blitz"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filters.Apply(games, now)
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() returned %d games, want %d", len(got), len(tt.want))
			}
			for i, id := range tt.want {
				if got[i].ID != id {
					t.Errorf("Apply()[%d].ID = %q, want %q", i, got[i].ID, id)
				}
			}
		})
	}
}

func TestDedup(t *testing.T) {
	games := []Record{{ID: "a"}, {ID: "b"}, {ID: "a"}, {}, {}}
	got := Dedup(games)
	if len(got) != 4 {
		t.Fatalf("Dedup() returned %d games, want 4", len(got))
	}
	if got[0].ID != "a" || got[1].ID != "b" {
		t.Errorf("Dedup() order = %+v", got)
	}
}
