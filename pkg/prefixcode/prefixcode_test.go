package prefixcode

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ei-projects/prefixcode/pkg/analysis"
	"github.com/stretchr/testify/require"
)

type builder struct {
	name  string
	build func([]analysis.SymbolStat) (*CodeTable, error)
}

var builders = []builder{
	{"huffman", BuildHuffmanCode},
	{"shannon-fano", BuildShannonFanoCode},
}

func stats(probs map[rune]float64, order string) []analysis.SymbolStat {
	res := make([]analysis.SymbolStat, 0, len(order))
	for _, r := range order {
		res = append(res, analysis.SymbolStat{Symbol: r, Probability: probs[r], Count: int(probs[r] * 100)})
	}
	return res
}

func codesOf(t *CodeTable) map[rune]string {
	res := make(map[rune]string)
	for _, e := range t.Entries() {
		res[e.Symbol] = e.Code
	}
	return res
}

func requirePrefixFree(t *testing.T, table *CodeTable) {
	entries := table.Entries()
	for i, a := range entries {
		for j, b := range entries {
			if i != j && strings.HasPrefix(b.Code, a.Code) {
				t.Fatalf("code %q of %q is a prefix of %q of %q", a.Code, a.Symbol, b.Code, b.Symbol)
			}
		}
	}
}

var fourSymbols = stats(map[rune]float64{'a': 0.45, 'b': 0.25, 'c': 0.2, 'd': 0.1}, "abcd")

func TestHuffmanCodes(t *testing.T) {
	table, err := BuildHuffmanCode(fourSymbols)
	require.NoError(t, err)
	require.Equal(t, map[rune]string{'a': "0", 'b': "10", 'd': "110", 'c': "111"}, codesOf(table))
	require.InDelta(t, 1.85, table.AverageLength(), 1e-9)

	root := table.Root()
	require.InDelta(t, 1.0, root.Probability, 1e-9)
	require.Equal(t, 100, root.Count)
	require.Equal(t, 4, root.Leaves())
	require.Equal(t, 3, root.Depth())
}

func TestHuffmanTwoSymbols(t *testing.T) {
	two := stats(map[rune]float64{'a': 0.75, 'b': 0.25}, "ab")
	table, err := BuildHuffmanCode(two)
	require.NoError(t, err)
	for _, e := range table.Entries() {
		require.Len(t, e.Code, 1)
	}
	require.NotEqual(t, codesOf(table)['a'], codesOf(table)['b'])
	require.InDelta(t, 0.8113, analysis.Entropy(two), 1e-4)
	require.InDelta(t, 1.0, table.AverageLength(), 1e-12)
}

func TestShannonFanoCodes(t *testing.T) {
	table, err := BuildShannonFanoCode(fourSymbols)
	require.NoError(t, err)
	require.Equal(t, map[rune]string{'a': "0", 'b': "10", 'c': "110", 'd': "111"}, codesOf(table))

	root := table.Root()
	require.InDelta(t, 0.45, root.Probability, 1e-9)
	require.Equal(t, 4, root.Count)
}

func TestShannonFanoFirstMinimumSplit(t *testing.T) {
	even := stats(map[rune]float64{'a': 0.25, 'b': 0.25, 'c': 0.25, 'd': 0.25}, "abcd")
	table, err := BuildShannonFanoCode(even)
	require.NoError(t, err)
	require.Equal(t, map[rune]string{'a': "00", 'b': "01", 'c': "10", 'd': "11"}, codesOf(table))
}

func TestShannonFanoKeepsInput(t *testing.T) {
	input := stats(map[rune]float64{'a': 0.1, 'b': 0.2, 'c': 0.3, 'd': 0.4}, "abcd")
	_, err := BuildShannonFanoTree(input)
	require.NoError(t, err)
	for i, r := range "abcd" {
		require.Equal(t, r, input[i].Symbol)
	}
}

func TestEmptyAlphabet(t *testing.T) {
	for _, b := range builders {
		_, err := b.build(nil)
		require.True(t, errors.Is(err, ErrEmptyAlphabet), b.name)
	}
	_, err := BuildHuffmanTree([]analysis.SymbolStat{})
	require.True(t, errors.Is(err, ErrEmptyAlphabet))
	_, err = BuildShannonFanoTree([]analysis.SymbolStat{})
	require.True(t, errors.Is(err, ErrEmptyAlphabet))
}

func TestSingleSymbol(t *testing.T) {
	single := []analysis.SymbolStat{{Symbol: 'x', Count: 5, Probability: 1, SelfInformation: 0}}
	for _, b := range builders {
		table, err := b.build(single)
		require.NoError(t, err, b.name)
		require.True(t, table.Root().IsLeaf(), b.name)
		require.Equal(t, 1, table.Len(), b.name)

		e, ok := table.Lookup('x')
		require.True(t, ok)
		require.Equal(t, "", e.Code)
		require.Equal(t, "", Encode("xxx", table))
		require.Equal(t, "", Decode("", table))
		require.Equal(t, 0.0, MeasureEfficiency(table, 0).RelativeRedundancy)
	}
}

func TestCodecLossyEdges(t *testing.T) {
	table, err := BuildShannonFanoCode(fourSymbols)
	require.NoError(t, err)

	require.Equal(t, "010", Encode("a?b", table))
	require.Equal(t, "", Encode("", table))
	require.Equal(t, "b", Decode("1011", table))
	require.Equal(t, "", Decode("", table))
	require.Equal(t, "aa", Decode("001", table))
}

func TestAnalyzedSourceRoundTrip(t *testing.T) {
	text := "Широкая электрификация южных губерний даст мощный толчок подъёму сельского хозяйства. " +
		"В 1920 году: план ГОЭЛРО; 10-15 лет."
	res, err := analysis.Analyze(text)
	require.NoError(t, err)
	message := analysis.ValidText(text, res.Alphabet)

	for _, b := range builders {
		table, err := b.build(res.Symbols)
		require.NoError(t, err, b.name)
		require.Equal(t, analysis.Russian.Len(), table.Len(), b.name)
		requirePrefixFree(t, table)

		encoded := Encode(message, table)
		require.Equal(t, message, Decode(encoded, table), b.name)

		eff := MeasureEfficiency(table, res.Entropy)
		require.GreaterOrEqual(t, eff.AverageLength, res.Entropy-1e-9, b.name)
		require.InDelta(t, eff.AverageLength-res.Entropy, eff.AbsoluteRedundancy, 1e-12)
	}
}

func TestHuffmanNotWorseThanShannonFano(t *testing.T) {
	res, err := analysis.Analyze("мама мыла раму, а папа читал газету; 2024.")
	require.NoError(t, err)

	huffman, err := BuildHuffmanCode(res.Symbols)
	require.NoError(t, err)
	shannonFano, err := BuildShannonFanoCode(res.Symbols)
	require.NoError(t, err)
	require.LessOrEqual(t, huffman.AverageLength(), shannonFano.AverageLength()+1e-9)
}

func TestByProbability(t *testing.T) {
	table, err := BuildHuffmanCode(fourSymbols)
	require.NoError(t, err)
	sorted := table.ByProbability()
	for i := 1; i < len(sorted); i++ {
		require.GreaterOrEqual(t, sorted[i-1].Probability, sorted[i].Probability)
	}
	require.Equal(t, 'a', sorted[0].Symbol)
	require.Equal(t, 'a', table.Inverse()["0"])
}

func TestConcurrentBuilds(t *testing.T) {
	res, err := analysis.Analyze("параллельное построение кодов по одной таблице")
	require.NoError(t, err)
	before := make([]analysis.SymbolStat, len(res.Symbols))
	copy(before, res.Symbols)

	var wg sync.WaitGroup
	tables := make([]*CodeTable, 8)
	for i := range tables {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tables[i], _ = builders[i%len(builders)].build(res.Symbols)
		}(i)
	}
	wg.Wait()

	require.Equal(t, before, res.Symbols)
	for i := range tables {
		require.Equal(t, codesOf(tables[i%len(builders)]), codesOf(tables[i]))
	}
}

func TestQueueOrder(t *testing.T) {
	q := newNodeQueue(0)
	for _, p := range []float64{0.5, 0.1, 0.4, 0.3, 0.2} {
		q.insert(&Node{Probability: p})
	}
	var got []float64
	for q.len() > 0 {
		got = append(got, q.extractMin().Probability)
	}
	require.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5}, got)
}
