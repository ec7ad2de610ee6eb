package testutil

import (
	"math/big"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

// Catalogs used across package tests. They mirror the built-in presets so
// engine tests do not depend on the CUE compiler.
var (
	FourCornerWords = []ir.Word{catalog.AND, catalog.OR, catalog.NAND, catalog.NOR}

	CommutativeWords = []ir.Word{
		catalog.TAU, catalog.OR, catalog.IFF, catalog.AND,
		catalog.NAND, catalog.XOR, catalog.NOR, catalog.CONT,
	}
)

// Lot2 returns the lot2 weight table.
func Lot2() ir.WeightTable {
	return ir.WeightTable{
		Name: "lot2",
		Costs: map[ir.Word]int{
			catalog.OR: 3, catalog.AND: 3,
			catalog.IF: 4, catalog.THEN: 4, catalog.NAND: 4,
			catalog.ONLYP: 4, catalog.ONLYQ: 4, catalog.NOR: 4,
			catalog.P: 1, catalog.Q: 1,
			catalog.CONT: 4, catalog.TAU: 4,
			catalog.IFF: 8, catalog.XOR: 8,
			catalog.NOTQ: 2, catalog.NOTP: 2,
		},
	}
}

// BinaryUtility returns the utility that rewards exact recovery only.
func BinaryUtility() ir.Utility {
	return utility("binary", big.NewRat(0, 1), big.NewRat(0, 1))
}

// GradedUtility returns the utility with partial credit 1/2 for worlds that
// share a disjunct and 1/3 for the opposite corners.
func GradedUtility() ir.Utility {
	return utility("graded", big.NewRat(1, 2), big.NewRat(1, 3))
}

// CornerUtility returns the utility with partial credit 1/2 and none for the
// opposite corners.
func CornerUtility() ir.Utility {
	return utility("corner", big.NewRat(1, 2), big.NewRat(0, 1))
}

func utility(name string, near, opposite *big.Rat) ir.Utility {
	u := ir.Utility{Name: name}
	for _, a := range ir.AllWorlds {
		for _, b := range ir.AllWorlds {
			switch {
			case a == b:
				u.Matrix[a][b] = big.NewRat(1, 1)
			case a+b == 3 && (a == 0 || b == 0):
				u.Matrix[a][b] = new(big.Rat).Set(opposite)
			default:
				u.Matrix[a][b] = new(big.Rat).Set(near)
			}
		}
	}
	return u
}

// Experiment returns an experiment over words with lot2 weights, binary
// utility and uniform normalization.
func Experiment(name string, words []ir.Word) ir.Experiment {
	return ir.Experiment{
		Name:          name,
		Catalog:       ir.Catalog{Name: name, Words: words},
		Weights:       Lot2(),
		Utility:       BinaryUtility(),
		Normalization: ir.NormalizationUniform,
	}
}

// Rat parses a rational such as "3/4". It panics on malformed input.
func Rat(s string) *big.Rat {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		panic("testutil.Rat: malformed rational " + s)
	}
	return r
}
