package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/roach88/connective/internal/ir"
)

// PrintConnectives writes the "Connectives:" listing, one name per line.
func PrintConnectives(w io.Writer, names []string) {
	fmt.Fprintln(w, "Connectives:")
	for _, n := range names {
		fmt.Fprintln(w, n)
	}
}

// PrintFrontier writes the "Pareto front:" listing as a table.
func PrintFrontier(w io.Writer, records []ir.Record) {
	fmt.Fprintln(w, "Pareto front:")
	RenderRecords(w, records)
}

// RenderRecords writes records as a table, one row per record.
func RenderRecords(w io.Writer, records []ir.Record) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(0 languages)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "language", "complexity", "informativeness", "exact"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.Index,
			strings.Join(r.Names, " "),
			r.Complexity,
			FormatDecimal(r.InformativenessFloat()),
			string(ir.IRRat(r.Informativeness)),
		})
	}
	t.Render()
}

// Summary holds descriptive statistics of a scored table.
type Summary struct {
	Languages int
	Frontier  int

	ComplexityMin    float64
	ComplexityMax    float64
	ComplexityMean   float64
	ComplexityMedian float64

	InformativenessMin    float64
	InformativenessMax    float64
	InformativenessMean   float64
	InformativenessMedian float64

	// Correlation is the Pearson correlation of complexity and
	// informativeness. It is NaN when either axis is constant.
	Correlation float64
}

// Summarize computes summary statistics over every record of t.
// Returns an error for an empty table.
func Summarize(t *ir.Table) (Summary, error) {
	n := len(t.Records)
	if n == 0 {
		return Summary{}, fmt.Errorf("summarize: table has no records")
	}

	cx := make(stats.Float64Data, n)
	info := make(stats.Float64Data, n)
	for i, r := range t.Records {
		cx[i] = float64(r.Complexity)
		info[i] = r.InformativenessFloat()
	}

	s := Summary{Languages: n, Frontier: len(t.Frontier)}
	var err error
	if s.ComplexityMin, s.ComplexityMax, s.ComplexityMean, s.ComplexityMedian, err = describe(cx); err != nil {
		return Summary{}, fmt.Errorf("summarize complexity: %w", err)
	}
	if s.InformativenessMin, s.InformativenessMax, s.InformativenessMean, s.InformativenessMedian, err = describe(info); err != nil {
		return Summary{}, fmt.Errorf("summarize informativeness: %w", err)
	}
	s.Correlation = stat.Correlation(cx, info, nil)
	return s, nil
}

func describe(data stats.Float64Data) (lo, hi, mean, median float64, err error) {
	if lo, err = stats.Min(data); err != nil {
		return
	}
	if hi, err = stats.Max(data); err != nil {
		return
	}
	if mean, err = stats.Mean(data); err != nil {
		return
	}
	median, err = stats.Median(data)
	return
}

// PrintSummary writes s as a two-column table.
func PrintSummary(w io.Writer, s Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"", "complexity", "informativeness"})
	t.AppendRows([]table.Row{
		{"min", s.ComplexityMin, FormatDecimal(s.InformativenessMin)},
		{"max", s.ComplexityMax, FormatDecimal(s.InformativenessMax)},
		{"mean", s.ComplexityMean, FormatDecimal(s.InformativenessMean)},
		{"median", s.ComplexityMedian, FormatDecimal(s.InformativenessMedian)},
	})
	t.AppendFooter(table.Row{"languages", s.Languages, fmt.Sprintf("frontier %d", s.Frontier)})
	t.Render()
}
