package analysis

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const eps = 1e-4

func TestAnalyzeCounts(t *testing.T) {
	abc, err := ParseAlphabet("abc")
	require.NoError(t, err)

	res, err := AnalyzeAlphabet("aabbbcc", abc)
	require.NoError(t, err)

	expected := []struct {
		symbol      rune
		count       int
		probability float64
	}{
		{'a', 2, 0.2857},
		{'b', 3, 0.4286},
		{'c', 2, 0.2857},
	}
	require.Len(t, res.Symbols, len(expected))
	for i, e := range expected {
		stat := res.Symbols[i]
		require.Equal(t, e.symbol, stat.Symbol)
		require.Equal(t, e.count, stat.Count)
		require.InDelta(t, e.probability, stat.Probability, eps)
		require.InDelta(t, -math.Log2(stat.Probability), stat.SelfInformation, 1e-12)
	}
	require.Equal(t, 7, res.ValidLength)
	require.Equal(t, 7, res.TotalSymbols)
	require.InDelta(t, 1.0, res.TotalProbability, 1e-12)
	require.InDelta(t, 1.5567, res.Entropy, eps)
}

func TestAnalyzeRussianDefault(t *testing.T) {
	res, err := Analyze("Привет, МИР!")
	require.NoError(t, err)
	require.Equal(t, Russian.Len(), len(res.Symbols))
	require.Equal(t, 11, res.ValidLength)

	counts := map[rune]int{}
	for _, s := range res.Symbols {
		counts[s.Symbol] = s.Count
	}
	require.Equal(t, 2, counts['р'])
	require.Equal(t, 2, counts['и'])
	require.Equal(t, 1, counts[','])
	require.Equal(t, 1, counts[' '])
	require.Equal(t, 0, counts['я'])
}

func TestAnalyzeProbabilitiesSumToOne(t *testing.T) {
	texts := []string{
		"Съешь же ещё этих мягких французских булок, да выпей чаю.",
		"1234567890 - 0987654321; конец.",
		"а",
	}
	for _, text := range texts {
		res, err := Analyze(text)
		require.NoError(t, err)
		var sum float64
		total := 0
		for _, s := range res.Symbols {
			sum += s.Probability
			total += s.Count
		}
		require.Equal(t, res.ValidLength, total, text)
		require.InDelta(t, 1.0, sum, 1e-9, text)
	}
}

func TestAnalyzeFilteredToNothing(t *testing.T) {
	res, err := Analyze("Hello!?")
	require.NoError(t, err)
	require.Equal(t, 0, res.ValidLength)
	require.Equal(t, 0.0, res.TotalProbability)
	require.Equal(t, 0.0, res.Entropy)
	for _, s := range res.Symbols {
		require.Equal(t, 0.0, s.Probability)
		require.Equal(t, 0.0, s.SelfInformation)
	}
	require.Equal(t, 8.0, res.ASCII.AbsoluteRedundancy)
	require.Equal(t, 1.0, res.ASCII.RelativeRedundancy)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	_, err := Analyze("")
	require.True(t, errors.Is(err, ErrEmptyInput))
}

func TestComparisons(t *testing.T) {
	res, err := Analyze("аааабб")
	require.NoError(t, err)

	require.Equal(t, 8.0, res.ASCII.Uncertainty)
	require.Equal(t, 8, res.ASCII.CodeLength)
	require.InDelta(t, 8-res.Entropy, res.ASCII.AbsoluteRedundancy, 1e-12)
	require.InDelta(t, (8-res.Entropy)/8, res.ASCII.RelativeRedundancy, 1e-12)

	require.InDelta(t, math.Log2(48), res.Hartley.Uncertainty, 1e-12)
	require.Equal(t, 6, res.Hartley.CodeLength)
	require.InDelta(t, 6-res.Entropy, res.Hartley.AbsoluteRedundancy, 1e-12)
	require.InDelta(t, (6-res.Entropy)/6, res.Hartley.RelativeRedundancy, 1e-12)
}

func TestEntropyTwoSymbols(t *testing.T) {
	stats := []SymbolStat{
		{Symbol: 'a', Count: 3, Probability: 0.75},
		{Symbol: 'b', Count: 1, Probability: 0.25},
		{Symbol: 'c'},
	}
	require.InDelta(t, 0.8113, Entropy(stats), eps)
}

func TestAlphabets(t *testing.T) {
	require.Equal(t, 48, Russian.Len())
	require.Equal(t, 42, Latin.Len())
	require.False(t, Russian.Contains('ё'))
	require.Equal(t, []string{"latin", "russian"}, AlphabetNames())

	a, err := LookupAlphabet("latin")
	require.NoError(t, err)
	require.Equal(t, language.English, a.Language())

	tests := []struct {
		symbols string
	}{
		{""},
		{"abca"},
	}
	for _, test := range tests {
		_, err := ParseAlphabet(test.symbols)
		require.True(t, errors.Is(err, ErrInvalidAlphabet), "symbols %q", test.symbols)
	}
	_, err = LookupAlphabet("klingon")
	require.True(t, errors.Is(err, ErrInvalidAlphabet))
}

func TestSymbolsIsCopy(t *testing.T) {
	symbols := Latin.Symbols()
	symbols[0] = 'X'
	require.Equal(t, 'a', Latin.Symbols()[0])
}

func TestUppercaseCustomAlphabet(t *testing.T) {
	upper, err := ParseAlphabet("ABC")
	require.NoError(t, err)
	require.Equal(t, "abc", upper.String())

	res, err := AnalyzeAlphabet("AABBBCC", upper)
	require.NoError(t, err)
	require.Equal(t, 7, res.ValidLength)
	require.Equal(t, 3, res.Symbols[1].Count)
	require.InDelta(t, 1.5567, res.Entropy, eps)

	cyrillic, err := NewAlphabet("upper", language.Russian, "АБВ")
	require.NoError(t, err)
	require.True(t, cyrillic.Contains('б'))

	_, err = ParseAlphabet("Aa")
	require.True(t, errors.Is(err, ErrInvalidAlphabet))
}
