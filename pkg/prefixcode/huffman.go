package prefixcode

import "github.com/ei-projects/prefixcode/pkg/analysis"

// BuildHuffmanTree merges the two least probable nodes until one remains.
// The first extracted node becomes the left child. Zero-probability symbols
// are kept and receive codes like any other symbol.
func BuildHuffmanTree(stats []analysis.SymbolStat) (*Node, error) {
	if len(stats) == 0 {
		return nil, ErrEmptyAlphabet
	}

	q := newNodeQueue(len(stats))
	for _, stat := range stats {
		q.insert(newLeaf(stat))
	}
	for q.len() > 1 {
		left := q.extractMin()
		right := q.extractMin()
		q.insert(newInternal(left, right,
			left.Probability+right.Probability, left.Count+right.Count))
	}
	return q.extractMin(), nil
}

func BuildHuffmanCode(stats []analysis.SymbolStat) (*CodeTable, error) {
	root, err := BuildHuffmanTree(stats)
	if err != nil {
		return nil, err
	}
	return NewCodeTable(root), nil
}
