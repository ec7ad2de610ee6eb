package engine

import (
	"errors"

	"github.com/roach88/connective/internal/ir"
)

// Complexity returns the summed cost of the words of l under table.
// l should be the plain language, not its strengthened form.
func Complexity(l ir.Language, table ir.WeightTable) (int, error) {
	total := 0
	for _, w := range l {
		c, err := table.Cost(w)
		if err != nil {
			var e *ir.Error
			if errors.As(err, &e) {
				return 0, e.WithLanguage(l)
			}
			return 0, err
		}
		total += c
	}
	return total, nil
}
