package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/connective/internal/ir"
)

// csvFields is the number of columns in a table row.
const csvFields = 4

// WriteTable writes one row per record, without a header:
//
//	"[[1, 1, 1, 0], [1, 0, 0, 0]]",6,0.5,"['OR', 'AND']"
//
// The columns are the plain language as truth vectors, complexity,
// informativeness as a decimal, and the display names. Rows end in CRLF.
func WriteTable(w io.Writer, records []ir.Record) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	for _, r := range records {
		if err := cw.Write(recordRow(r)); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFrontier writes the frontier records of t in the WriteTable format.
func WriteFrontier(w io.Writer, t *ir.Table) error {
	return WriteTable(w, t.FrontierRecords())
}

func recordRow(r ir.Record) []string {
	return []string{
		formatLanguage(r.Language),
		strconv.Itoa(r.Complexity),
		FormatDecimal(r.InformativenessFloat()),
		formatNames(r.Names),
	}
}

// formatLanguage renders a language as nested truth vectors,
// e.g. "[[1, 1, 1, 0], [1, 0, 0, 0]]".
func formatLanguage(l ir.Language) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, w := range l {
		if i > 0 {
			b.WriteString(", ")
		}
		v := w.Vector()
		fmt.Fprintf(&b, "[%d, %d, %d, %d]", v[0], v[1], v[2], v[3])
	}
	b.WriteByte(']')
	return b.String()
}

// formatNames renders names as a quoted list, e.g. "['OR', 'AND']".
func formatNames(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// FormatDecimal renders f as the shortest decimal that reads back to f.
// Integral values keep a trailing ".0", so 1 renders as "1.0".
func FormatDecimal(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eIN") {
		s += ".0"
	}
	return s
}

// ReadTable parses rows written by WriteTable. Record indices are assigned in
// row order and informativeness is the exact rational of the decimal.
func ReadTable(r io.Reader) ([]ir.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = csvFields

	var records []ir.Record
	for line := 1; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rec, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		rec.Index = len(records)
		records = append(records, rec)
	}
	return records, nil
}

func parseRow(row []string) (ir.Record, error) {
	var vectors [][]int
	if err := yaml.Unmarshal([]byte(row[0]), &vectors); err != nil {
		return ir.Record{}, fmt.Errorf("language %q: %w", row[0], err)
	}
	lang := make(ir.Language, 0, len(vectors))
	for _, v := range vectors {
		w, err := ir.WordFromVector(v)
		if err != nil {
			return ir.Record{}, err
		}
		lang = append(lang, w)
	}
	if err := lang.Validate(); err != nil {
		return ir.Record{}, err
	}

	complexity, err := strconv.Atoi(strings.TrimSpace(row[1]))
	if err != nil {
		return ir.Record{}, fmt.Errorf("complexity %q: %w", row[1], err)
	}

	info, ok := new(big.Rat).SetString(strings.TrimSpace(row[2]))
	if !ok {
		return ir.Record{}, fmt.Errorf("informativeness %q is not a number", row[2])
	}

	var names []string
	if err := yaml.Unmarshal([]byte(row[3]), &names); err != nil {
		return ir.Record{}, fmt.Errorf("names %q: %w", row[3], err)
	}
	if len(names) != len(lang) {
		return ir.Record{}, fmt.Errorf("%d names for %d words", len(names), len(lang))
	}

	return ir.Record{
		Language:        lang,
		Complexity:      complexity,
		Informativeness: info,
		Names:           names,
	}, nil
}
