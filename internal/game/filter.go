package game

import "time"

// month is the fixed month length used by the MonthsBack filter.
const month = 30 * 24 * time.Hour

// Filters restricts which games a source returns.
type Filters struct {
	// Speeds keeps only games with one of these speeds. Empty keeps all.
	Speeds []Speed

	// MonthsBack keeps only games created within the last MonthsBack
	// 30-day months. Zero disables the filter.
	MonthsBack int

	// ExcludeComputer drops games where either side has no user ID.
	ExcludeComputer bool
}

// Apply returns the games in games that pass f, evaluated at now.
func (f Filters) Apply(games []Record, now time.Time) []Record {
	var earliest time.Time
	if f.MonthsBack > 0 {
		earliest = now.Add(-time.Duration(f.MonthsBack) * month)
	}

	out := make([]Record, 0, len(games))
	for i := range games {
		g := &games[i]
		if len(f.Speeds) > 0 && !containsSpeed(f.Speeds, g.Speed) {
			continue
		}
		if !earliest.IsZero() && g.CreatedAt.Before(earliest) {
			continue
		}
		if f.ExcludeComputer && (g.Players.White.UserID == "" || g.Players.Black.UserID == "") {
			continue
		}
		out = append(out, *g)
	}
	return out
}

func containsSpeed(speeds []Speed, s Speed) bool {
	for _, sp := range speeds {
		if sp == s {
			return true
		}
	}
	return false
}

// Dedup drops records whose ID was already seen, keeping the first.
// Records without an ID are always kept.
func Dedup(games []Record) []Record {
	seen := make(map[string]struct{}, len(games))
	out := games[:0:0]
	for _, g := range games {
		if g.ID != "" {
			if _, ok := seen[g.ID]; ok {
				continue
			}
			seen[g.ID] = struct{}{}
		}
		out = append(out, g)
	}
	return out
}
