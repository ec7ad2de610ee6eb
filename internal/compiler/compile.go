// Package compiler turns CUE experiment definitions into ir values.
//
// Built-in presets (presets/presets.cue) are always loaded; a user
// experiments directory is unified with them, so user files can reference
// preset catalogs, weight tables and utilities by name.
package compiler

import (
	"fmt"
	"math/big"
	"slices"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

// Registry holds compiled catalogs, weight tables, utilities and
// experiments, keyed by name.
type Registry struct {
	Catalogs    map[string]ir.Catalog
	Weights     map[string]ir.WeightTable
	Utilities   map[string]ir.Utility
	Experiments map[string]ir.Experiment
}

func newRegistry() *Registry {
	return &Registry{
		Catalogs:    make(map[string]ir.Catalog),
		Weights:     make(map[string]ir.WeightTable),
		Utilities:   make(map[string]ir.Utility),
		Experiments: make(map[string]ir.Experiment),
	}
}

// Experiment returns the named experiment.
func (r *Registry) Experiment(name string) (ir.Experiment, error) {
	exp, ok := r.Experiments[name]
	if !ok {
		return ir.Experiment{}, &CompileError{
			Field:   "experiment." + name,
			Message: fmt.Sprintf("no experiment named %q (have %s)", name, strings.Join(sortedKeys(r.Experiments), ", ")),
			Code:    ErrUnknownExperiment,
		}
	}
	return exp, nil
}

// ExperimentNames returns experiment names in sorted order.
func (r *Registry) ExperimentNames() []string { return sortedKeys(r.Experiments) }

// CatalogNames returns catalog names in sorted order.
func (r *Registry) CatalogNames() []string { return sortedKeys(r.Catalogs) }

// WeightNames returns weight table names in sorted order.
func (r *Registry) WeightNames() []string { return sortedKeys(r.Weights) }

// UtilityNames returns utility names in sorted order.
func (r *Registry) UtilityNames() []string { return sortedKeys(r.Utilities) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Compile builds a Registry from a CUE value with top-level "catalog",
// "weights", "utility" and "experiment" structs. Every section is optional.
//
// Compile does not stop at the first error: it returns every error found,
// together with whatever compiled cleanly.
func Compile(v cue.Value) (*Registry, []error) {
	reg := newRegistry()
	if err := v.Err(); err != nil {
		return reg, []error{formatCUEError("cue", err)}
	}

	var errs []error
	eachField(v, "catalog", &errs, func(name string, fv cue.Value) {
		words, err := compileWords("catalog."+name, fv)
		if err != nil {
			errs = append(errs, err)
			return
		}
		reg.Catalogs[name] = ir.Catalog{Name: name, Words: words}
	})
	eachField(v, "weights", &errs, func(name string, fv cue.Value) {
		t, err := compileWeights("weights."+name, name, fv)
		if err != nil {
			errs = append(errs, err)
			return
		}
		reg.Weights[name] = t
	})
	eachField(v, "utility", &errs, func(name string, fv cue.Value) {
		u, err := compileUtility("utility."+name, name, fv)
		if err != nil {
			errs = append(errs, err)
			return
		}
		reg.Utilities[name] = u
	})
	eachField(v, "experiment", &errs, func(name string, fv cue.Value) {
		exp, err := reg.CompileExperiment(name, fv)
		if err != nil {
			errs = append(errs, err)
			return
		}
		reg.Experiments[name] = *exp
	})
	return reg, errs
}

// eachField calls fn for every field of the struct at path, if it exists.
func eachField(v cue.Value, path string, errs *[]error, fn func(name string, fv cue.Value)) {
	sv := v.LookupPath(cue.ParsePath(path))
	if !sv.Exists() {
		return
	}
	iter, err := sv.Fields()
	if err != nil {
		*errs = append(*errs, formatCUEError(path, err))
		return
	}
	for iter.Next() {
		fn(iter.Selector().Unquoted(), iter.Value())
	}
}

// CompileExperiment resolves one experiment value. Its catalog, weights and
// utility fields each hold either the name of a registry entry or an inline
// value. Normalization defaults to "uniform".
//
// The result is validated: every catalog word needs a cost.
func (r *Registry) CompileExperiment(name string, v cue.Value) (*ir.Experiment, error) {
	field := "experiment." + name
	if err := v.Err(); err != nil {
		return nil, formatCUEError(field, err)
	}

	exp := &ir.Experiment{Name: name, Normalization: ir.NormalizationUniform}

	if dv := v.LookupPath(cue.ParsePath("description")); dv.Exists() {
		d, err := dv.String()
		if err != nil {
			return nil, formatCUEError(field+".description", err)
		}
		exp.Description = d
	}

	// Catalog (required)
	cv := v.LookupPath(cue.ParsePath("catalog"))
	if !cv.Exists() {
		return nil, &CompileError{Field: field + ".catalog", Message: "catalog is required", Code: ErrEmptyCatalog, Pos: v.Pos()}
	}
	if ref, err := cv.String(); err == nil {
		c, ok := r.Catalogs[ref]
		if !ok {
			return nil, &CompileError{Field: field + ".catalog", Message: fmt.Sprintf("unknown catalog %q", ref), Code: ErrUnknownCatalogRef, Pos: cv.Pos()}
		}
		exp.Catalog = c
	} else {
		words, err := compileWords(field+".catalog", cv)
		if err != nil {
			return nil, err
		}
		exp.Catalog = ir.Catalog{Name: name, Words: words}
	}

	// Weights (required)
	wv := v.LookupPath(cue.ParsePath("weights"))
	if !wv.Exists() {
		return nil, &CompileError{Field: field + ".weights", Message: "weights are required", Code: ErrUnknownWeightsRef, Pos: v.Pos()}
	}
	if ref, err := wv.String(); err == nil {
		t, ok := r.Weights[ref]
		if !ok {
			return nil, &CompileError{Field: field + ".weights", Message: fmt.Sprintf("unknown weight table %q", ref), Code: ErrUnknownWeightsRef, Pos: wv.Pos()}
		}
		exp.Weights = t
	} else {
		t, err := compileWeights(field+".weights", name, wv)
		if err != nil {
			return nil, err
		}
		exp.Weights = t
	}

	// Utility (required)
	uv := v.LookupPath(cue.ParsePath("utility"))
	if !uv.Exists() {
		return nil, &CompileError{Field: field + ".utility", Message: "utility is required", Code: ErrUnknownUtilityRef, Pos: v.Pos()}
	}
	if ref, err := uv.String(); err == nil {
		u, ok := r.Utilities[ref]
		if !ok {
			return nil, &CompileError{Field: field + ".utility", Message: fmt.Sprintf("unknown utility %q", ref), Code: ErrUnknownUtilityRef, Pos: uv.Pos()}
		}
		exp.Utility = u
	} else {
		u, err := compileUtility(field+".utility", name, uv)
		if err != nil {
			return nil, err
		}
		exp.Utility = u
	}

	// Normalization (optional)
	if nv := v.LookupPath(cue.ParsePath("normalization")); nv.Exists() {
		n, err := nv.String()
		if err != nil {
			return nil, formatCUEError(field+".normalization", err)
		}
		if !ir.ValidNormalizations[ir.Normalization(n)] {
			return nil, &CompileError{Field: field + ".normalization", Message: fmt.Sprintf("normalization %q must be uniform or none", n), Code: ErrInvalidNormalization, Pos: nv.Pos()}
		}
		exp.Normalization = ir.Normalization(n)
	}

	// Every catalog word needs a cost.
	for _, w := range exp.Catalog.Words {
		if _, err := exp.Weights.Cost(w); err != nil {
			return nil, &CompileError{
				Field:   field + ".weights",
				Message: fmt.Sprintf("weight table %q has no cost for %s (%s) in catalog %q", exp.Weights.Name, w, nameOf(w), exp.Catalog.Name),
				Code:    ErrMissingCost,
				Pos:     wv.Pos(),
				Err:     err,
			}
		}
	}
	return exp, nil
}

// compileWords compiles a list of words: truth vectors or connective names.
func compileWords(field string, v cue.Value) ([]ir.Word, error) {
	iter, err := v.List()
	if err != nil {
		return nil, formatCUEError(field, err)
	}

	var words []ir.Word
	for i := 0; iter.Next(); i++ {
		ev := iter.Value()
		w, err := compileWord(ev)
		if err != nil {
			return nil, &CompileError{Field: fmt.Sprintf("%s[%d]", field, i), Message: err.Error(), Code: ErrMalformedWord, Pos: ev.Pos(), Err: err}
		}
		if slices.Contains(words, w) {
			return nil, &CompileError{
				Field:   fmt.Sprintf("%s[%d]", field, i),
				Message: fmt.Sprintf("duplicate word %s (%s)", w, nameOf(w)),
				Code:    ErrDuplicateWord,
				Pos:     ev.Pos(),
				Err:     &ir.Error{Kind: ir.KindInvalidCatalog, Message: "duplicate word in catalog", Word: w, HasWord: true},
			}
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return nil, &CompileError{Field: field, Message: "catalog has no words", Code: ErrEmptyCatalog, Pos: v.Pos(), Err: ir.NewInvalidCatalogError("empty catalog")}
	}
	return words, nil
}

// compileWord accepts a truth vector [1, 1, 1, 0], a bit string "1110" or a
// connective name "OR".
func compileWord(v cue.Value) (ir.Word, error) {
	if s, err := v.String(); err == nil {
		return catalog.Lookup(s)
	}
	iter, err := v.List()
	if err != nil {
		return 0, ir.NewInvalidCatalogError(fmt.Sprintf("word must be a truth vector or a name, got %s", v.Kind()))
	}
	var vec []int
	for iter.Next() {
		x, err := iter.Value().Int64()
		if err != nil {
			return 0, ir.NewInvalidCatalogError(fmt.Sprintf("truth value is not an integer: %v", err))
		}
		vec = append(vec, int(x))
	}
	return ir.WordFromVector(vec)
}

func compileWeights(field, name string, v cue.Value) (ir.WeightTable, error) {
	t := ir.WeightTable{Name: name, Costs: make(map[ir.Word]int)}
	iter, err := v.Fields()
	if err != nil {
		return t, formatCUEError(field, err)
	}
	for iter.Next() {
		key := iter.Selector().Unquoted()
		w, err := catalog.Lookup(key)
		if err != nil {
			return t, &CompileError{Field: field + "." + key, Message: err.Error(), Code: ErrMalformedCostKey, Pos: iter.Value().Pos(), Err: err}
		}
		c, err := iter.Value().Int64()
		if err != nil {
			return t, formatCUEError(field+"."+key, err)
		}
		if c < 0 {
			return t, &CompileError{Field: field + "." + key, Message: fmt.Sprintf("cost %d is negative", c), Code: ErrNegativeCost, Pos: iter.Value().Pos()}
		}
		t.Costs[w] = int(c)
	}
	return t, nil
}

func compileUtility(field, name string, v cue.Value) (ir.Utility, error) {
	u := ir.Utility{Name: name}
	shapeErr := func(pos cue.Value, msg string) error {
		return &CompileError{Field: field, Message: msg, Code: ErrUtilityShape, Pos: pos.Pos()}
	}

	rows, err := v.List()
	if err != nil {
		return u, shapeErr(v, fmt.Sprintf("utility must be a %dx%d matrix", ir.Worlds, ir.Worlds))
	}
	i := 0
	for ; rows.Next(); i++ {
		if i >= ir.Worlds {
			return u, shapeErr(rows.Value(), fmt.Sprintf("utility has more than %d rows", ir.Worlds))
		}
		cols, err := rows.Value().List()
		if err != nil {
			return u, shapeErr(rows.Value(), fmt.Sprintf("row %d is not a list", i))
		}
		j := 0
		for ; cols.Next(); j++ {
			if j >= ir.Worlds {
				return u, shapeErr(cols.Value(), fmt.Sprintf("row %d has more than %d entries", i, ir.Worlds))
			}
			r, err := compileRat(cols.Value())
			if err != nil {
				return u, shapeErr(cols.Value(), fmt.Sprintf("entry [%d][%d]: %v", i, j, err))
			}
			if r.Sign() < 0 || r.Cmp(big.NewRat(1, 1)) > 0 {
				return u, &CompileError{
					Field:   fmt.Sprintf("%s[%d][%d]", field, i, j),
					Message: fmt.Sprintf("utility %s is outside [0,1]", r.RatString()),
					Code:    ErrUtilityRange,
					Pos:     cols.Value().Pos(),
				}
			}
			u.Matrix[i][j] = r
		}
		if j != ir.Worlds {
			return u, shapeErr(rows.Value(), fmt.Sprintf("row %d has %d entries, want %d", i, j, ir.Worlds))
		}
	}
	if i != ir.Worlds {
		return u, shapeErr(v, fmt.Sprintf("utility has %d rows, want %d", i, ir.Worlds))
	}
	return u, nil
}

// compileRat accepts an integer or a rational string such as "1/3" or "0.5".
func compileRat(v cue.Value) (*big.Rat, error) {
	if s, err := v.String(); err == nil {
		r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
		if !ok {
			return nil, fmt.Errorf("%q is not a rational", s)
		}
		return r, nil
	}
	n, err := v.Int64()
	if err != nil {
		return nil, fmt.Errorf("want an integer or a rational string")
	}
	return big.NewRat(n, 1), nil
}

func nameOf(w ir.Word) string {
	n, err := catalog.Name(w)
	if err != nil {
		return "?"
	}
	return n
}
