package prefixcode

import (
	"errors"

	"github.com/ei-projects/prefixcode/pkg/analysis"
)

var ErrEmptyAlphabet = errors.New("no symbols to build a code from")

// Node is a code tree node. A leaf has no children and carries a symbol;
// an internal node always owns exactly two children.
type Node struct {
	Symbol      rune
	Probability float64
	Count       int
	Left        *Node
	Right       *Node
}

func newLeaf(stat analysis.SymbolStat) *Node {
	return &Node{Symbol: stat.Symbol, Probability: stat.Probability, Count: stat.Count}
}

func newInternal(left, right *Node, probability float64, count int) *Node {
	return &Node{Probability: probability, Count: count, Left: left, Right: right}
}

func (n *Node) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// Leaves returns the number of leaves under n.
func (n *Node) Leaves() int {
	if n.IsLeaf() {
		return 1
	}
	return n.Left.Leaves() + n.Right.Leaves()
}

// Depth returns the length of the longest root-to-leaf path.
func (n *Node) Depth() int {
	if n.IsLeaf() {
		return 0
	}
	l, r := n.Left.Depth(), n.Right.Depth()
	if l > r {
		return l + 1
	}
	return r + 1
}

// walk visits every leaf depth-first, left edge appends '0', right edge '1'.
func (n *Node) walk(prefix []byte, visit func(leaf *Node, code string)) {
	if n.IsLeaf() {
		visit(n, string(prefix))
		return
	}
	n.Left.walk(append(prefix, '0'), visit)
	n.Right.walk(append(prefix, '1'), visit)
}
