package prefixcode

import (
	"math"
	"sort"

	"github.com/ei-projects/prefixcode/pkg/analysis"
)

// BuildShannonFanoTree splits the symbols, sorted by descending probability,
// at the point where both halves are closest in total probability, and
// recurses into each half. stats is not modified.
//
// An internal node holds the probability of its left group and the number
// of symbols under it as its count.
func BuildShannonFanoTree(stats []analysis.SymbolStat) (*Node, error) {
	if len(stats) == 0 {
		return nil, ErrEmptyAlphabet
	}

	group := make([]analysis.SymbolStat, len(stats))
	copy(group, stats)
	return splitGroup(group), nil
}

func splitGroup(group []analysis.SymbolStat) *Node {
	if len(group) == 1 {
		return newLeaf(group[0])
	}

	sort.SliceStable(group, func(i, j int) bool {
		return group[i].Probability > group[j].Probability
	})

	var total float64
	for _, s := range group {
		total += s.Probability
	}

	splitIndex := 0
	minDiff := math.Inf(1)
	var cumulative float64
	for i := 0; i < len(group)-1; i++ {
		cumulative += group[i].Probability
		diff := math.Abs(cumulative - (total - cumulative))
		if diff < minDiff {
			minDiff = diff
			splitIndex = i
		}
	}

	left, right := group[:splitIndex+1], group[splitIndex+1:]
	var leftProbability float64
	for _, s := range left {
		leftProbability += s.Probability
	}
	return newInternal(splitGroup(left), splitGroup(right), leftProbability, len(group))
}

func BuildShannonFanoCode(stats []analysis.SymbolStat) (*CodeTable, error) {
	root, err := BuildShannonFanoTree(stats)
	if err != nil {
		return nil, err
	}
	return NewCodeTable(root), nil
}
