package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ei-projects/prefixcode/pkg/analysis"
	"github.com/ei-projects/prefixcode/pkg/prefixcode"
)

type symbolReport struct {
	Symbol      string  `json:"symbol"`
	CharCode    int     `json:"charCode"`
	Count       int     `json:"count"`
	Probability float64 `json:"probability"`
	Information float64 `json:"information"`
}

type comparisonReport struct {
	Uncertainty        float64 `json:"uncertainty"`
	CodeLength         int     `json:"codeLength"`
	AbsoluteRedundancy float64 `json:"absoluteRedundancy"`
	RelativeRedundancy float64 `json:"relativeRedundancy"`
}

type analysisReport struct {
	Alphabet         string           `json:"alphabet"`
	Symbols          []symbolReport   `json:"symbols"`
	TotalSymbols     int              `json:"totalSymbols"`
	TotalProbability float64          `json:"totalProbability"`
	Entropy          float64          `json:"entropy"`
	ASCII            comparisonReport `json:"ascii"`
	Hartley          comparisonReport `json:"hartley"`
}

type codeEntryReport struct {
	Symbol      string  `json:"symbol"`
	Count       int     `json:"count"`
	Code        string  `json:"code"`
	Probability float64 `json:"probability"`
	Length      int     `json:"length"`
}

type codeReport struct {
	Method             string            `json:"method"`
	Codes              []codeEntryReport `json:"codes"`
	Entropy            float64           `json:"entropy"`
	AverageLength      float64           `json:"averageLength"`
	AbsoluteRedundancy float64           `json:"absoluteRedundancy"`
	RelativeRedundancy float64           `json:"relativeRedundancy"`
}

func newComparisonReport(c analysis.Comparison) comparisonReport {
	return comparisonReport(c)
}

func newAnalysisReport(res *analysis.Result) *analysisReport {
	report := &analysisReport{
		Alphabet:         res.Alphabet.Name(),
		Symbols:          make([]symbolReport, 0, len(res.Symbols)),
		TotalSymbols:     res.TotalSymbols,
		TotalProbability: res.TotalProbability,
		Entropy:          res.Entropy,
		ASCII:            newComparisonReport(res.ASCII),
		Hartley:          newComparisonReport(res.Hartley),
	}
	for _, s := range res.Symbols {
		report.Symbols = append(report.Symbols, symbolReport{
			Symbol:      string(s.Symbol),
			CharCode:    int(s.Symbol),
			Count:       s.Count,
			Probability: s.Probability,
			Information: s.SelfInformation,
		})
	}
	return report
}

func newCodeReport(method string, table *prefixcode.CodeTable, entropy float64) *codeReport {
	eff := prefixcode.MeasureEfficiency(table, entropy)
	report := &codeReport{
		Method:             method,
		Codes:              make([]codeEntryReport, 0, table.Len()),
		Entropy:            eff.Entropy,
		AverageLength:      eff.AverageLength,
		AbsoluteRedundancy: eff.AbsoluteRedundancy,
		RelativeRedundancy: eff.RelativeRedundancy,
	}
	for _, e := range table.ByProbability() {
		report.Codes = append(report.Codes, codeEntryReport{
			Symbol:      string(e.Symbol),
			Count:       e.Count,
			Code:        e.Code,
			Probability: e.Probability,
			Length:      len(e.Code),
		})
	}
	return report
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (r *analysisReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%-8s %-6s %-8s %-14s %s\n", "Symbol", "Code", "Count", "Probability", "Information")
	for _, s := range r.Symbols {
		fmt.Fprintf(w, "%-8s %-6d %-8d %-14.10f %.4f\n",
			displaySymbol([]rune(s.Symbol)[0]), s.CharCode, s.Count, s.Probability, s.Information)
	}
	fmt.Fprintf(w, "\nTotal symbols:     %d\n", r.TotalSymbols)
	fmt.Fprintf(w, "Total probability: %.4f\n", r.TotalProbability)
	fmt.Fprintf(w, "Source entropy:    %.4f\n\n", r.Entropy)

	fmt.Fprintf(w, "%-8s %-12s %-12s %-20s %s\n",
		"Method", "Uncertainty", "Code length", "Abs. redundancy", "Rel. redundancy")
	for _, row := range []struct {
		name string
		cmp  comparisonReport
	}{{"ASCII", r.ASCII}, {"Hartley", r.Hartley}} {
		fmt.Fprintf(w, "%-8s %-12.4f %-12d %-20.4f %.4f\n", row.name,
			row.cmp.Uncertainty, row.cmp.CodeLength, row.cmp.AbsoluteRedundancy, row.cmp.RelativeRedundancy)
	}
}

func (r *codeReport) writeText(w io.Writer) {
	fmt.Fprintf(w, "%-8s %-8s %-24s %-14s %s\n", "Symbol", "Count", "Code", "Probability", "Length")
	for _, e := range r.Codes {
		fmt.Fprintf(w, "%-8s %-8d %-24s %-14.10f %d\n",
			displaySymbol([]rune(e.Symbol)[0]), e.Count, e.Code, e.Probability, e.Length)
	}
	r.writeSummary(w)
}

func (r *codeReport) writeSummary(w io.Writer) {
	fmt.Fprintf(w, "%s: entropy %.4f, average code length %.4f, redundancy %.4f (%.2f%%)\n",
		r.Method, r.Entropy, r.AverageLength, r.AbsoluteRedundancy, r.RelativeRedundancy*100)
}
