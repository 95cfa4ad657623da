// Package movetree implements a trie over move sequences whose nodes count
// the wins, draws and losses of the games that reached them.
//
// Nodes are expanded lazily, one ply at a time, from the set of games that is
// active when the node is visited. Expansion happens at most once per node.
package movetree

import (
	"sort"

	"github.com/discochess/repertoire/internal/game"
)

// Tally counts game outcomes from the tracked player's point of view.
type Tally struct {
	Wins   int
	Draws  int
	Losses int
}

// Total returns Wins + Draws + Losses.
func (t Tally) Total() int {
	return t.Wins + t.Draws + t.Losses
}

// Rates returns the win, draw and loss fractions. All are zero for an empty tally.
func (t Tally) Rates() (win, draw, loss float64) {
	total := t.Total()
	if total == 0 {
		return 0, 0, 0
	}
	n := float64(total)
	return float64(t.Wins) / n, float64(t.Draws) / n, float64(t.Losses) / n
}

func (t *Tally) add(r game.Result) {
	switch r {
	case game.Win:
		t.Wins++
	case game.Draw:
		t.Draws++
	default:
		t.Losses++
	}
}

// Node is one position in the tree, identified by the moves leading to it.
//
// The parent pointer is a non-owning back reference; children are owned
// through the children map.
type Node struct {
	parent   *Node
	children map[string]*Node
	path     []string
	tally    Tally
	expanded bool
}

// NewRoot returns an unexpanded root node with an empty path.
func NewRoot() *Node {
	return &Node{children: make(map[string]*Node)}
}

func newChild(parent *Node, move string) *Node {
	path := make([]string, len(parent.path)+1)
	copy(path, parent.path)
	path[len(parent.path)] = move
	return &Node{
		parent:   parent,
		children: make(map[string]*Node),
		path:     path,
	}
}

// Parent returns the parent node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Depth returns the number of plies from the root.
func (n *Node) Depth() int { return len(n.path) }

// Path returns a copy of the moves from the root to n.
func (n *Node) Path() []string {
	out := make([]string, len(n.path))
	copy(out, n.path)
	return out
}

// Move returns the last move of the path, or "" for the root.
func (n *Node) Move() string {
	if len(n.path) == 0 {
		return ""
	}
	return n.path[len(n.path)-1]
}

// Tally returns the outcome counts of the games that reached n.
func (n *Node) Tally() Tally { return n.tally }

// Expanded reports whether n's children have been built.
func (n *Node) Expanded() bool { return n.expanded }

// Len returns the number of children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the child reached by move.
func (n *Node) Child(move string) (*Node, bool) {
	c, ok := n.children[move]
	return c, ok
}

// Expand builds n's children from games, which should be the games active at
// n. Every game with more than Depth() moves contributes its next move and its
// own result to the matching child. Games ending exactly at n contribute
// nothing, so an expanded node may have no children.
//
// Expand is a no-op once n has been expanded, whatever games are passed.
func (n *Node) Expand(games []game.Record) {
	if n.expanded {
		return
	}
	n.expanded = true

	depth := len(n.path)
	for i := range games {
		g := &games[i]
		if len(g.Moves) <= depth {
			continue
		}
		move := g.Moves[depth]
		child, ok := n.children[move]
		if !ok {
			child = newChild(n, move)
			n.children[move] = child
		}
		child.tally.add(g.UserResult)
	}
}

// Branch is a move available from a node and the node it leads to.
type Branch struct {
	Move string
	Node *Node
}

// Branches returns n's children ordered by total games, most played first.
// Moves with equal totals are ordered by move string.
func (n *Node) Branches() []Branch {
	out := make([]Branch, 0, len(n.children))
	for move, child := range n.children {
		out = append(out, Branch{Move: move, Node: child})
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].Node.tally.Total(), out[j].Node.tally.Total()
		if ti != tj {
			return ti > tj
		}
		return out[i].Move < out[j].Move
	})
	return out
}
