package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/roach88/connective/internal/ir"
)

// Workbook sheet names.
const (
	SheetFull   = "full"
	SheetPareto = "pareto"
)

var xlsxHeader = []any{"language", "names", "complexity", "informativeness", "informativeness_exact"}

// WriteXLSX writes a workbook with one sheet for every record and one for the
// frontier. Informativeness appears both as a number and as an exact "p/q"
// string.
func WriteXLSX(path string, t *ir.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes "full".
	if err := f.SetSheetName(f.GetSheetName(0), SheetFull); err != nil {
		return err
	}
	if err := writeSheet(f, SheetFull, t.Records); err != nil {
		return err
	}

	idx, err := f.NewSheet(SheetPareto)
	if err != nil {
		return err
	}
	if err := writeSheet(f, SheetPareto, t.FrontierRecords()); err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, records []ir.Record) error {
	if err := f.SetSheetRow(sheet, "A1", &xlsxHeader); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			r.Language.String(),
			strings.Join(r.Names, " "),
			r.Complexity,
			r.InformativenessFloat(),
			string(ir.IRRat(r.Informativeness)),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
