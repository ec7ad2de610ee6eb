package harness

import (
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strings"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/engine"
	"github.com/roach88/connective/internal/ir"
)

// EvaluateExpectations compares a result with the scenario's expectations.
// Returns one message per mismatch, in a stable order; empty means pass.
func EvaluateExpectations(e Expectations, r *Result) []string {
	var errs []string

	errs = append(errs, checkWordSets("alternatives", e.Alternatives, r, func(ex engine.Explanation) ir.Language {
		return ex.Alternatives
	})...)
	errs = append(errs, checkWordSets("excludable", e.Excludable, r, func(ex engine.Explanation) ir.Language {
		return ex.Excludable
	})...)

	if len(e.Strengthened) > 0 {
		errs = append(errs, checkStrengthened(e.Strengthened, r)...)
	}

	if e.Complexity != nil && *e.Complexity != r.Record.Complexity {
		errs = append(errs, fmt.Sprintf("complexity: expected %d, got %d", *e.Complexity, r.Record.Complexity))
	}

	if e.Informativeness != "" {
		want, ok := new(big.Rat).SetString(e.Informativeness)
		got := r.Record.Informativeness
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("informativeness: %q is not a rational number", e.Informativeness))
		case got == nil || want.Cmp(got) != 0:
			errs = append(errs, fmt.Sprintf("informativeness: expected %s, got %s", want.RatString(), ir.IRRat(got)))
		}
	}
	return errs
}

func checkWordSets(field string, sets map[string][]string, r *Result, pick func(engine.Explanation) ir.Language) []string {
	var errs []string
	for _, key := range slices.Sorted(maps.Keys(sets)) {
		w, err := catalog.Lookup(key)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s.%s: %v", field, key, err))
			continue
		}
		ex, ok := findExplanation(r, w)
		if !ok {
			errs = append(errs, fmt.Sprintf("%s.%s: word not in language", field, key))
			continue
		}

		want, err := lookupAll(sets[key])
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s.%s: %v", field, key, err))
			continue
		}
		got := pick(ex)
		if !sameSet(want, got) {
			errs = append(errs, fmt.Sprintf("%s.%s: expected [%s], got [%s]",
				field, key, strings.Join(wordNames(want), " "), strings.Join(wordNames(got), " ")))
		}
	}
	return errs
}

func checkStrengthened(names []string, r *Result) []string {
	if len(names) != len(r.Explanations) {
		return []string{fmt.Sprintf("strengthened: expected %d words, got %d", len(names), len(r.Explanations))}
	}
	var errs []string
	for i, name := range names {
		want, err := catalog.Lookup(name)
		if err != nil {
			errs = append(errs, fmt.Sprintf("strengthened[%d]: %v", i, err))
			continue
		}
		ex := r.Explanations[i]
		if ex.Strengthened != want {
			errs = append(errs, fmt.Sprintf("strengthened[%d] (%s): expected %s, got %s",
				i, wordName(ex.Prejacent), wordName(want), wordName(ex.Strengthened)))
		}
	}
	return errs
}

func findExplanation(r *Result, w ir.Word) (engine.Explanation, bool) {
	for _, ex := range r.Explanations {
		if ex.Prejacent == w {
			return ex, true
		}
	}
	return engine.Explanation{}, false
}

func lookupAll(names []string) (ir.Language, error) {
	out := make(ir.Language, 0, len(names))
	for _, n := range names {
		w, err := catalog.Lookup(n)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

func sameSet(a, b ir.Language) bool {
	if len(a) != len(b) {
		return false
	}
	for _, w := range a {
		if !b.Contains(w) {
			return false
		}
	}
	return true
}
