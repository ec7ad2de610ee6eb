// Package report renders scored tables: CSV files, a scatter plot, an Excel
// workbook, console listings and canonical JSON snapshots.
//
// The CSV layout is headerless, one row per language:
//
//	"[[1, 0, 0, 0], [1, 1, 1, 0]]",6,0.5,"['AND', 'OR']"
//
// ReadTable parses the same layout back, so a table written by one run can
// be re-examined (for example by recomputing its frontier) without
// re-running the enumeration.
package report
