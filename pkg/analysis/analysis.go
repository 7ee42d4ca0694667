package analysis

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// FixedCodeLength is the code length of the fixed-length ("ASCII") reference code.
const FixedCodeLength = 8

var ErrEmptyInput = errors.New("no source text supplied")

// SymbolStat holds per-symbol statistics of the valid text.
type SymbolStat struct {
	Symbol          rune
	Count           int
	Probability     float64
	SelfInformation float64
}

// Comparison describes a reference code against the source entropy.
type Comparison struct {
	Uncertainty        float64
	CodeLength         int
	AbsoluteRedundancy float64
	RelativeRedundancy float64
}

type Result struct {
	Alphabet         *Alphabet
	Symbols          []SymbolStat // One per alphabet symbol, in alphabet order
	ValidLength      int
	TotalSymbols     int
	TotalProbability float64
	Entropy          float64
	ASCII            Comparison
	Hartley          Comparison
}

// Analyze runs AnalyzeAlphabet with the Russian alphabet.
func Analyze(text string) (*Result, error) {
	return AnalyzeAlphabet(text, Russian)
}

// AnalyzeAlphabet computes symbol statistics of text restricted to alphabet.
// Text that contains no alphabet symbols is valid and yields all-zero
// probabilities; only an empty text is an error.
func AnalyzeAlphabet(text string, alphabet *Alphabet) (*Result, error) {
	if text == "" {
		return nil, ErrEmptyInput
	}

	valid := ValidText(text, alphabet)
	counts := make(map[rune]int, alphabet.Len())
	validLen := 0
	for _, r := range valid {
		counts[r]++
		validLen++
	}

	res := &Result{
		Alphabet:    alphabet,
		Symbols:     make([]SymbolStat, 0, alphabet.Len()),
		ValidLength: validLen,
	}
	for _, sym := range alphabet.symbols {
		stat := newSymbolStat(sym, counts[sym], validLen)
		res.TotalSymbols += stat.Count
		res.TotalProbability += stat.Probability
		res.Symbols = append(res.Symbols, stat)
	}
	res.Entropy = Entropy(res.Symbols)
	res.ASCII = compare(FixedCodeLength, FixedCodeLength, res.Entropy)
	uncertainty := math.Log2(float64(alphabet.Len()))
	res.Hartley = compare(uncertainty, int(math.Ceil(uncertainty)), res.Entropy)
	return res, nil
}

// ValidText returns text lower-cased for the alphabet's language with every
// symbol outside the alphabet removed.
func ValidText(text string, alphabet *Alphabet) string {
	lower := cases.Lower(alphabet.lang).String(text)
	var sb strings.Builder
	sb.Grow(len(lower))
	for _, r := range lower {
		if alphabet.Contains(r) {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func newSymbolStat(sym rune, count, total int) SymbolStat {
	stat := SymbolStat{Symbol: sym, Count: count}
	if total > 0 {
		stat.Probability = float64(count) / float64(total)
	}
	if stat.Probability > 0 {
		stat.SelfInformation = -math.Log2(stat.Probability)
	}
	return stat
}

// Entropy returns Σ p·log2(1/p) over stats, which equals Σ p·SelfInformation
// for stats produced by the analyzer. Zero-probability symbols contribute nothing.
func Entropy(stats []SymbolStat) float64 {
	var h float64
	for _, s := range stats {
		if s.Probability > 0 {
			h -= s.Probability * math.Log2(s.Probability)
		}
	}
	return h
}

func compare(uncertainty float64, codeLength int, entropy float64) Comparison {
	abs := float64(codeLength) - entropy
	cmp := Comparison{
		Uncertainty:        uncertainty,
		CodeLength:         codeLength,
		AbsoluteRedundancy: abs,
	}
	if codeLength > 0 {
		cmp.RelativeRedundancy = abs / float64(codeLength)
	}
	return cmp
}
