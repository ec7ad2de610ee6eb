package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/roach88/connective/internal/ir"
)

// Output file names written by WriteFiles.
const (
	FullCSV   = "full.csv"
	ParetoCSV = "pareto.csv"
)

// Options selects the files WriteFiles produces.
type Options struct {
	// CSV writes full.csv and pareto.csv.
	CSV bool

	// Plot is the scatter plot path; empty skips the plot. A relative path
	// is resolved against the output directory.
	Plot string

	// XLSX is the workbook path; empty skips the workbook. A relative path
	// is resolved against the output directory.
	XLSX string
}

// WriteFiles writes the requested outputs of t into dir, creating dir if
// needed. It returns the paths written, in order. Any failure to open or
// write a file is returned immediately.
func WriteFiles(dir string, t *ir.Table, opts Options) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	var written []string
	if opts.CSV {
		full := filepath.Join(dir, FullCSV)
		if err := writeFile(full, func(w io.Writer) error { return WriteTable(w, t.Records) }); err != nil {
			return written, err
		}
		written = append(written, full)

		pareto := filepath.Join(dir, ParetoCSV)
		if err := writeFile(pareto, func(w io.Writer) error { return WriteFrontier(w, t) }); err != nil {
			return written, err
		}
		written = append(written, pareto)
	}
	if opts.Plot != "" {
		path := resolve(dir, opts.Plot)
		if err := WritePlot(path, t); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	if opts.XLSX != "" {
		path := resolve(dir, opts.XLSX)
		if err := WriteXLSX(path, t); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
