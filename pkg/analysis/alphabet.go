package analysis

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	russianSymbols = "абвгдежзийклмнопрстуфхцчшщъыьэюя0123456789.,:;- "
	latinSymbols   = "abcdefghijklmnopqrstuvwxyz0123456789.,:;- "
)

var ErrInvalidAlphabet = errors.New("invalid alphabet")

// Alphabet is an ordered set of recognized symbols. Text is lower-cased with
// the alphabet's language before filtering.
type Alphabet struct {
	name    string
	lang    language.Tag
	symbols []rune
	index   map[rune]int
}

// Russian is the default alphabet: lowercase Russian letters without "ё",
// digits and ".,:;- ".
var Russian = mustAlphabet("russian", language.Russian, russianSymbols)

var Latin = mustAlphabet("latin", language.English, latinSymbols)

var namedAlphabets = map[string]*Alphabet{
	Russian.name: Russian,
	Latin.name:   Latin,
}

func mustAlphabet(name string, lang language.Tag, symbols string) *Alphabet {
	a, err := NewAlphabet(name, lang, symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// NewAlphabet builds an alphabet from symbols in the given order. Symbols are
// lower-cased the same way as analysed text, so "Aa" is a duplicate.
func NewAlphabet(name string, lang language.Tag, symbols string) (*Alphabet, error) {
	runes := []rune(cases.Lower(lang).String(symbols))
	if len(runes) == 0 {
		return nil, fmt.Errorf("%w: no symbols", ErrInvalidAlphabet)
	}
	index := make(map[rune]int, len(runes))
	for i, r := range runes {
		if _, ok := index[r]; ok {
			return nil, fmt.Errorf("%w: duplicate symbol %q", ErrInvalidAlphabet, r)
		}
		index[r] = i
	}
	return &Alphabet{name: name, lang: lang, symbols: runes, index: index}, nil
}

// ParseAlphabet builds a custom alphabet with no language-specific casing.
func ParseAlphabet(symbols string) (*Alphabet, error) {
	return NewAlphabet("custom", language.Und, symbols)
}

// LookupAlphabet returns a named alphabet.
func LookupAlphabet(name string) (*Alphabet, error) {
	a, ok := namedAlphabets[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown alphabet %q (known: %v)",
			ErrInvalidAlphabet, name, AlphabetNames())
	}
	return a, nil
}

func AlphabetNames() []string {
	names := make([]string, 0, len(namedAlphabets))
	for name := range namedAlphabets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (a *Alphabet) Name() string { return a.name }

func (a *Alphabet) Language() language.Tag { return a.lang }

func (a *Alphabet) Len() int { return len(a.symbols) }

// Symbols returns a copy of the alphabet's symbols in order.
func (a *Alphabet) Symbols() []rune {
	res := make([]rune, len(a.symbols))
	copy(res, a.symbols)
	return res
}

func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

func (a *Alphabet) String() string {
	return string(a.symbols)
}
