package main

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/ei-projects/prefixcode/pkg/analysis"
	"github.com/ei-projects/prefixcode/pkg/charset"
	"github.com/ei-projects/prefixcode/pkg/prefixcode"
	"github.com/spf13/cobra"
)

const (
	methodHuffman     = "huffman"
	methodShannonFano = "shannon-fano"
)

var methods = map[string]func([]analysis.SymbolStat) (*prefixcode.CodeTable, error){
	methodHuffman:     prefixcode.BuildHuffmanCode,
	methodShannonFano: prefixcode.BuildShannonFanoCode,
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("alphabet", analysis.Russian.Name(),
		fmt.Sprintf("Recognized alphabet: %s", strings.Join(analysis.AlphabetNames(), ", ")))
	cmd.PersistentFlags().String("symbols", "",
		"Custom alphabet as a literal list of symbols. Overrides --alphabet")
	cmd.PersistentFlags().String("charset", charset.UTF8,
		fmt.Sprintf("Charset of the source file: %s", strings.Join(charset.Names(), ", ")))
}

func addMethodFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("method", "m", methodHuffman,
		fmt.Sprintf("Coding method: %s or %s", methodHuffman, methodShannonFano))
}

func resolveAlphabet(name, symbols string) (*analysis.Alphabet, error) {
	if symbols != "" {
		return analysis.ParseAlphabet(symbols)
	}
	return analysis.LookupAlphabet(name)
}

func alphabetFromFlags(cmd *cobra.Command) (*analysis.Alphabet, error) {
	name, _ := cmd.Flags().GetString("alphabet")
	symbols, _ := cmd.Flags().GetString("symbols")
	return resolveAlphabet(name, symbols)
}

// readSource reads a source text from path ("-" is stdin) in the given charset.
func readSource(path, charsetName string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = ioutil.ReadAll(os.Stdin)
	} else {
		data, err = ioutil.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read source %s: %w", path, err)
	}
	text, err := charset.Decode(data, charsetName)
	if err != nil {
		return "", fmt.Errorf("failed to decode source %s: %w", path, err)
	}
	return text, nil
}

func analyzeSource(cmd *cobra.Command, path string) (*analysis.Result, error) {
	alphabet, err := alphabetFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	charsetName, _ := cmd.Flags().GetString("charset")
	text, err := readSource(path, charsetName)
	if err != nil {
		return nil, err
	}
	res, err := analysis.AnalyzeAlphabet(text, alphabet)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze %s: %w", path, err)
	}
	log.Debugf("Analyzed %s: alphabet %s (%d symbols), %d valid of %d characters",
		path, alphabet.Name(), alphabet.Len(), res.ValidLength, len([]rune(text)))
	return res, nil
}

func buildTable(method string, stats []analysis.SymbolStat) (*prefixcode.CodeTable, error) {
	build, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf("unknown method %q", method)
	}
	table, err := build(stats)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s code: %w", method, err)
	}
	log.Debugf("Built %s code: %d symbols, tree depth %d", method, table.Len(), table.Root().Depth())
	return table, nil
}

// missingSymbols lists distinct symbols of message that the table cannot encode.
func missingSymbols(message string, table *prefixcode.CodeTable) []rune {
	var missing []rune
	seen := make(map[rune]bool)
	for _, r := range message {
		if _, ok := table.Lookup(r); !ok && !seen[r] {
			seen[r] = true
			missing = append(missing, r)
		}
	}
	return missing
}

func displaySymbol(r rune) string {
	switch r {
	case ' ':
		return "' '"
	case '\t':
		return "\\t"
	case '\n':
		return "\\n"
	}
	return string(r)
}
