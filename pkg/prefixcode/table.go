package prefixcode

import "sort"

// CodeEntry is a symbol together with its code word.
type CodeEntry struct {
	Symbol      rune
	Code        string
	Probability float64
	Count       int
}

// CodeTable is a prefix-free code derived from a code tree. Entries are kept
// in depth-first order of the tree.
type CodeTable struct {
	root    *Node
	entries []CodeEntry
	index   map[rune]int
}

// NewCodeTable walks root and assigns each leaf the path to it as its code.
// A tree that is a single leaf yields one entry with an empty code.
func NewCodeTable(root *Node) *CodeTable {
	t := &CodeTable{
		root:  root,
		index: make(map[rune]int),
	}
	root.walk(make([]byte, 0, 16), func(leaf *Node, code string) {
		t.index[leaf.Symbol] = len(t.entries)
		t.entries = append(t.entries, CodeEntry{
			Symbol:      leaf.Symbol,
			Code:        code,
			Probability: leaf.Probability,
			Count:       leaf.Count,
		})
	})
	return t
}

func (t *CodeTable) Root() *Node { return t.root }

func (t *CodeTable) Len() int { return len(t.entries) }

// Entries returns a copy of the entries in tree order.
func (t *CodeTable) Entries() []CodeEntry {
	res := make([]CodeEntry, len(t.entries))
	copy(res, t.entries)
	return res
}

// ByProbability returns the entries ordered by descending probability.
func (t *CodeTable) ByProbability() []CodeEntry {
	res := t.Entries()
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Probability > res[j].Probability
	})
	return res
}

func (t *CodeTable) Lookup(symbol rune) (CodeEntry, bool) {
	i, ok := t.index[symbol]
	if !ok {
		return CodeEntry{}, false
	}
	return t.entries[i], true
}

// Inverse maps every code word to its symbol.
func (t *CodeTable) Inverse() map[string]rune {
	res := make(map[string]rune, len(t.entries))
	for _, e := range t.entries {
		res[e.Code] = e.Symbol
	}
	return res
}

// AverageLength returns Σ probability·len(code).
func (t *CodeTable) AverageLength() float64 {
	var avg float64
	for _, e := range t.entries {
		avg += e.Probability * float64(len(e.Code))
	}
	return avg
}

// Efficiency compares a code's average length with the source entropy.
type Efficiency struct {
	Entropy            float64
	AverageLength      float64
	AbsoluteRedundancy float64
	RelativeRedundancy float64
}

func MeasureEfficiency(t *CodeTable, entropy float64) Efficiency {
	eff := Efficiency{
		Entropy:       entropy,
		AverageLength: t.AverageLength(),
	}
	eff.AbsoluteRedundancy = eff.AverageLength - entropy
	if eff.AverageLength > 0 {
		eff.RelativeRedundancy = eff.AbsoluteRedundancy / eff.AverageLength
	}
	return eff
}
