package engine

import (
	"fmt"

	"github.com/roach88/connective/internal/ir"
)

// MaxCandidates bounds the catalog size: there are only sixteen connectives
// over two variables, and 2^16 - 1 languages.
const MaxCandidates = 1 << ir.Worlds

// ForEachSubset visits every non-empty subset of n items as an inclusion
// mask (bit i set means item i is included), stopping early if fn returns
// false.
//
// Order: masks descend from all-ones to 1. Item 0 toggles fastest and is
// included before it is excluded, which is the order the recursive power set
// of the reference scripts produced. The implicature engine's maximality
// replay depends on this order.
func ForEachSubset(n int, fn func(mask uint32) bool) {
	if n <= 0 {
		return
	}
	for mask := uint32(1)<<n - 1; mask > 0; mask-- {
		if !fn(mask) {
			return
		}
	}
}

// ForEachLanguage streams every non-empty language over the candidates, in
// ForEachSubset order. Words keep candidate order within each language. The
// language passed to fn is freshly allocated and may be retained.
//
// Returns an InvalidCatalog error for duplicate candidates or more than
// MaxCandidates of them.
func ForEachLanguage(candidates []ir.Word, fn func(ir.Language) error) error {
	if len(candidates) > MaxCandidates {
		return ir.NewInvalidCatalogError(fmt.Sprintf("%d candidates, at most %d", len(candidates), MaxCandidates))
	}
	if err := ir.Language(candidates).Validate(); err != nil {
		return err
	}

	var err error
	ForEachSubset(len(candidates), func(mask uint32) bool {
		err = fn(selectMask(candidates, mask))
		return err == nil
	})
	return err
}

// EnumerateLanguages returns all 2^N - 1 non-empty languages over the
// candidates.
func EnumerateLanguages(candidates []ir.Word) ([]ir.Language, error) {
	out := make([]ir.Language, 0, LanguageCount(len(candidates)))
	err := ForEachLanguage(candidates, func(l ir.Language) error {
		out = append(out, l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// LanguageCount returns 2^n - 1.
func LanguageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return 1<<n - 1
}

// selectMask returns the items whose bit is set in mask, in item order.
func selectMask(items []ir.Word, mask uint32) ir.Language {
	out := make(ir.Language, 0, popcount(mask))
	for i, w := range items {
		if mask&(1<<i) != 0 {
			out = append(out, w)
		}
	}
	return out
}
