package engine

import (
	"cmp"
	"math/big"
	"slices"

	"github.com/roach88/connective/internal/ir"
)

// Dominates reports whether a is at least as good as b on both axes and
// strictly better on one. Lower complexity and higher informativeness are
// better; informativeness is compared exactly.
func Dominates(a, b ir.Record) bool {
	ci := cmp.Compare(b.Complexity, a.Complexity) // positive when a is simpler
	ii := informativeness(a).Cmp(informativeness(b))
	if ci < 0 || ii < 0 {
		return false
	}
	return ci > 0 || ii > 0
}

// Frontier returns the indices of the non-dominated records, in table order.
//
// Each record is checked against every other; the inner scan runs best-first
// (complexity ascending, informativeness descending) and stops at the first
// record more complex than the one being checked. Records with identical scores do
// not dominate one another and are all kept.
func Frontier(records []ir.Record) []int {
	order := make([]int, len(records))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		if c := cmp.Compare(records[a].Complexity, records[b].Complexity); c != 0 {
			return c
		}
		return informativeness(records[b]).Cmp(informativeness(records[a]))
	})

	var out []int
	for i := range records {
		dominated := false
		for _, j := range order {
			if records[j].Complexity > records[i].Complexity {
				break
			}
			if j != i && Dominates(records[j], records[i]) {
				dominated = true
				break
			}
		}
		if !dominated {
			out = append(out, i)
		}
	}
	return out
}

func informativeness(r ir.Record) *big.Rat {
	if r.Informativeness == nil {
		return new(big.Rat)
	}
	return r.Informativeness
}
