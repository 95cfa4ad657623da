package movetree

import (
	"strings"
	"testing"

	"github.com/discochess/repertoire/internal/game"
)

func rec(moves string, result game.Result) game.Record {
	return game.Record{
		Moves:      strings.Fields(moves),
		UserColor:  game.White,
		UserResult: result,
	}
}

// scenarioGames are G1..G3 from the reference scenario.
func scenarioGames() []game.Record {
	return []game.Record{
		rec("e4 e5", game.Win),
		rec("e4 e5", game.Win),
		rec("e4 c5", game.Loss),
	}
}

func checkTallyInvariant(t *testing.T, n *Node) {
	t.Helper()
	tally := n.Tally()
	if tally.Total() != tally.Wins+tally.Draws+tally.Losses {
		t.Errorf("node %v: Total() = %d, want %d", n.Path(), tally.Total(), tally.Wins+tally.Draws+tally.Losses)
	}
	for _, b := range n.Branches() {
		checkTallyInvariant(t, b.Node)
	}
}

func TestExpand_Scenario(t *testing.T) {
	games := scenarioGames()
	root := NewRoot()
	root.Expand(games)

	if root.Len() != 1 {
		t.Fatalf("root has %d children, want 1", root.Len())
	}
	e4, ok := root.Child("e4")
	if !ok {
		t.Fatal("root has no e4 child")
	}
	want := Tally{Wins: 2, Draws: 0, Losses: 1}
	if e4.Tally() != want {
		t.Errorf("e4 tally = %+v, want %+v", e4.Tally(), want)
	}
	if e4.Tally().Total() != 3 {
		t.Errorf("e4 total = %d, want 3", e4.Tally().Total())
	}

	e4.Expand(games)
	branches := e4.Branches()
	if len(branches) != 2 {
		t.Fatalf("e4 has %d branches, want 2", len(branches))
	}
	if branches[0].Move != "e5" || branches[0].Node.Tally() != (Tally{Wins: 2}) {
		t.Errorf("branches[0] = %s %+v, want e5 {Wins:2}", branches[0].Move, branches[0].Node.Tally())
	}
	if branches[1].Move != "c5" || branches[1].Node.Tally() != (Tally{Losses: 1}) {
		t.Errorf("branches[1] = %s %+v, want c5 {Losses:1}", branches[1].Move, branches[1].Node.Tally())
	}

	checkTallyInvariant(t, root)
}

func TestExpand_Idempotent(t *testing.T) {
	root := NewRoot()
	root.Expand(scenarioGames())

	// A second call with a different game list must not change anything.
	root.Expand([]game.Record{rec("d4 d5", game.Draw), rec("e4", game.Win)})

	if root.Len() != 1 {
		t.Errorf("root has %d children after second Expand, want 1", root.Len())
	}
	e4, _ := root.Child("e4")
	if e4.Tally() != (Tally{Wins: 2, Losses: 1}) {
		t.Errorf("e4 tally changed to %+v", e4.Tally())
	}
	if _, ok := root.Child("d4"); ok {
		t.Error("second Expand added d4")
	}
}

func TestExpand_NoContinuation(t *testing.T) {
	games := []game.Record{rec("e4", game.Win), rec("e4", game.Draw)}
	root := NewRoot()
	root.Expand(games)

	e4, _ := root.Child("e4")
	if e4.Expanded() {
		t.Fatal("child should not be expanded before Expand")
	}
	e4.Expand(games)

	if !e4.Expanded() {
		t.Error("Expanded() = false after Expand")
	}
	if e4.Len() != 0 {
		t.Errorf("e4 has %d children, want 0", e4.Len())
	}
	if e4.Tally().Total() != 2 {
		t.Errorf("e4 total = %d, want 2", e4.Tally().Total())
	}

	// Expanded with no children must still be a no-op on later calls.
	e4.Expand([]game.Record{rec("e4 e5", game.Win)})
	if e4.Len() != 0 {
		t.Errorf("e4 gained %d children on a repeated Expand", e4.Len())
	}
}

func TestExpand_ChildTotalsBoundedByGames(t *testing.T) {
	tests := []struct {
		name      string
		games     []game.Record
		wantEqual bool
	}{
		{"all continue", scenarioGames(), true},
		{"some end", append(scenarioGames(), rec("e4", game.Win)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRoot()
			root.Expand(tt.games)
			e4, _ := root.Child("e4")
			e4.Expand(tt.games)

			sum := 0
			for _, b := range e4.Branches() {
				sum += b.Node.Tally().Total()
			}
			if sum > len(tt.games) {
				t.Errorf("sum of child totals %d > %d games", sum, len(tt.games))
			}
			if (sum == len(tt.games)) != tt.wantEqual {
				t.Errorf("sum = %d, games = %d, wantEqual %v", sum, len(tt.games), tt.wantEqual)
			}
		})
	}
}

func TestBranches_TieBreak(t *testing.T) {
	games := []game.Record{
		rec("d4", game.Win),
		rec("c4", game.Win),
		rec("e4", game.Win),
		rec("e4", game.Loss),
		rec("Nf3", game.Draw),
	}
	root := NewRoot()
	root.Expand(games)

	got := root.Branches()
	want := []string{"e4", "Nf3", "c4", "d4"}
	if len(got) != len(want) {
		t.Fatalf("Branches() returned %d, want %d", len(got), len(want))
	}
	for i, m := range want {
		if got[i].Move != m {
			t.Errorf("Branches()[%d] = %s, want %s", i, got[i].Move, m)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Node.Tally().Total() < got[i].Node.Tally().Total() {
			t.Errorf("Branches() not sorted by total at %d", i)
		}
	}
}

func TestNode_Paths(t *testing.T) {
	games := scenarioGames()
	root := NewRoot()
	root.Expand(games)
	e4, _ := root.Child("e4")
	e4.Expand(games)
	c5, _ := e4.Child("c5")

	if !root.IsRoot() || root.Depth() != 0 || root.Move() != "" {
		t.Errorf("root: IsRoot=%v Depth=%d Move=%q", root.IsRoot(), root.Depth(), root.Move())
	}
	if c5.Parent() != e4 || e4.Parent() != root {
		t.Error("parent links are wrong")
	}
	if got := strings.Join(c5.Path(), " "); got != "e4 c5" {
		t.Errorf("c5.Path() = %q, want %q", got, "e4 c5")
	}
	if c5.Move() != "c5" || c5.Depth() != 2 {
		t.Errorf("c5: Move=%q Depth=%d", c5.Move(), c5.Depth())
	}

	// Path returns a copy.
	p := c5.Path()
	p[0] = "d4"
	if c5.Path()[0] != "e4" {
		t.Error("Path() exposed internal slice")
	}
}

func TestTally_Rates(t *testing.T) {
	w, d, l := Tally{Wins: 1, Draws: 1, Losses: 2}.Rates()
	if w != 0.25 || d != 0.25 || l != 0.5 {
		t.Errorf("Rates() = %v %v %v", w, d, l)
	}
	w, d, l = Tally{}.Rates()
	if w != 0 || d != 0 || l != 0 {
		t.Errorf("empty Rates() = %v %v %v", w, d, l)
	}
}
