package lichess

import (
	"fmt"
	"io"
	"time"
)

// Progress phases.
const (
	PhaseCount = "count"
	PhasePage  = "page"
	PhaseDone  = "done"
	PhaseError = "error"
)

// Progress tracks a fetch.
type Progress struct {
	Phase     string
	Results   int // games the API reports for the user
	Page      int
	Pages     int
	Games     int // games kept so far
	Skipped   int // games dropped during normalization
	StartTime time.Time
	Error     error
}

// ProgressFunc is called as a fetch advances.
type ProgressFunc func(Progress)

// FormatDuration formats duration as human-readable string.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
}

// NewProgressPrinter returns a ProgressFunc that rewrites one status line
// on w.
func NewProgressPrinter(w io.Writer) ProgressFunc {
	return func(p Progress) {
		switch p.Phase {
		case PhaseCount:
			fmt.Fprintf(w, "[Fetch] %d games in %d pages", p.Results, p.Pages)
		case PhasePage:
			fmt.Fprintf(w, "\r[Fetch] page %d / %d, %d games", p.Page, p.Pages, p.Games)
		case PhaseDone:
			elapsed := time.Since(p.StartTime)
			fmt.Fprintf(w, "\n[Done] %d games, %d skipped (%s)\n",
				p.Games, p.Skipped, FormatDuration(elapsed))
		case PhaseError:
			fmt.Fprintf(w, "\n[Error] %v\n", p.Error)
		}
	}
}
