package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
	"github.com/roach88/connective/internal/testutil"
)

func assertSameUtility(t *testing.T, want, got ir.Utility) {
	t.Helper()
	for _, a := range ir.AllWorlds {
		for _, b := range ir.AllWorlds {
			assert.Equal(t, want.Value(a, b).RatString(), got.Value(a, b).RatString(), "U(%d,%d)", a, b)
		}
	}
}

func TestLoadPresets(t *testing.T) {
	reg, err := LoadPresets()
	require.NoError(t, err)

	assert.Equal(t, []string{"commutative", "commutative_nontautological", "four_corner", "full"}, reg.CatalogNames())
	assert.Equal(t, []string{"lot1", "lot2", "lot3", "lot4"}, reg.WeightNames())
	assert.Equal(t, []string{"binary", "corner", "graded"}, reg.UtilityNames())
	assert.Equal(t, []string{"commutative", "commutative_nontautological", "default", "four_corner", "legacy"}, reg.ExperimentNames())

	assert.Equal(t, catalog.All(), reg.Catalogs["full"].Words)
	assert.Equal(t, testutil.CommutativeWords, reg.Catalogs["commutative"].Words)
	assert.Equal(t, testutil.FourCornerWords, reg.Catalogs["four_corner"].Words)
	assert.Len(t, reg.Catalogs["commutative_nontautological"].Words, 6)
	assert.NotContains(t, reg.Catalogs["commutative_nontautological"].Words, catalog.TAU)
	assert.NotContains(t, reg.Catalogs["commutative_nontautological"].Words, catalog.CONT)

	assert.Equal(t, testutil.Lot2().Costs, reg.Weights["lot2"].Costs)
	for _, name := range reg.WeightNames() {
		assert.Len(t, reg.Weights[name].Costs, 16, "weight table %s", name)
	}

	assertSameUtility(t, testutil.BinaryUtility(), reg.Utilities["binary"])
	assertSameUtility(t, testutil.GradedUtility(), reg.Utilities["graded"])
	assertSameUtility(t, testutil.CornerUtility(), reg.Utilities["corner"])
}

func TestLoadPresets_Experiments(t *testing.T) {
	reg, err := LoadPresets()
	require.NoError(t, err)

	def, err := reg.Experiment("default")
	require.NoError(t, err)
	assert.Equal(t, "full", def.Catalog.Name)
	assert.Equal(t, "lot2", def.Weights.Name)
	assert.Equal(t, "binary", def.Utility.Name)
	assert.Equal(t, ir.NormalizationUniform, def.Normalization)
	assert.NotEmpty(t, def.Description)

	legacy, err := reg.Experiment("legacy")
	require.NoError(t, err)
	assert.Equal(t, "corner", legacy.Utility.Name)
	assert.Equal(t, ir.NormalizationNone, legacy.Normalization)

	_, err = reg.Experiment("nope")
	var ce *CompileError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, ErrUnknownExperiment, ce.Code)
}

func TestLoadPresets_FingerprintsDiffer(t *testing.T) {
	reg, err := LoadPresets()
	require.NoError(t, err)

	seen := make(map[string]string)
	for _, name := range reg.ExperimentNames() {
		fp, err := ir.ExperimentFingerprint(reg.Experiments[name])
		require.NoError(t, err)
		if other, ok := seen[fp]; ok {
			t.Errorf("experiments %s and %s share fingerprint %s", name, other, fp)
		}
		seen[fp] = name
	}
}

func compileInline(t *testing.T, src string) (*ir.Experiment, error) {
	t.Helper()
	reg, err := LoadPresets()
	require.NoError(t, err)

	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())
	return reg.CompileExperiment("inline", v.LookupPath(cue.ParsePath("experiment.inline")))
}

func TestCompileExperiment_Inline(t *testing.T) {
	exp, err := compileInline(t, `
		experiment: inline: {
			description: "names, bit strings and vectors mix"
			catalog: ["AND", "1110", [0, 0, 0, 1]]
			weights: { AND: 1, OR: 2, NOR: 3 }
			utility: [
				[1, "1/2", "1/2", 0],
				["1/2", 1, "0.5", "1/2"],
				["1/2", "1/2", 1, "1/2"],
				[0, "1/2", "1/2", 1],
			]
			normalization: "none"
		}
	`)
	require.NoError(t, err)

	assert.Equal(t, "inline", exp.Name)
	assert.Equal(t, []ir.Word{catalog.AND, catalog.OR, catalog.NOR}, exp.Catalog.Words)
	assert.Equal(t, map[ir.Word]int{catalog.AND: 1, catalog.OR: 2, catalog.NOR: 3}, exp.Weights.Costs)
	assertSameUtility(t, testutil.CornerUtility(), exp.Utility)
	assert.Equal(t, ir.NormalizationNone, exp.Normalization)
}

func TestCompileExperiment_References(t *testing.T) {
	exp, err := compileInline(t, `
		experiment: inline: {
			catalog: "four_corner"
			weights: "lot1"
			utility: "graded"
		}
	`)
	require.NoError(t, err)
	assert.Equal(t, testutil.FourCornerWords, exp.Catalog.Words)
	assert.Equal(t, "lot1", exp.Weights.Name)
	assert.Equal(t, ir.NormalizationUniform, exp.Normalization)
}

func TestCompileExperiment_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code string
		kind ir.ErrorKind
	}{
		{
			name: "vector too short",
			body: `catalog: [[1, 1, 0]], weights: "lot2", utility: "binary"`,
			code: ErrMalformedWord,
			kind: ir.KindInvalidCatalog,
		},
		{
			name: "vector entry not 0 or 1",
			body: `catalog: [[1, 2, 0, 0]], weights: "lot2", utility: "binary"`,
			code: ErrMalformedWord,
			kind: ir.KindInvalidCatalog,
		},
		{
			name: "unknown name",
			body: `catalog: ["MAYBE"], weights: "lot2", utility: "binary"`,
			code: ErrMalformedWord,
			kind: ir.KindUnknownConnective,
		},
		{
			name: "duplicate word",
			body: `catalog: ["AND", [1, 0, 0, 0]], weights: "lot2", utility: "binary"`,
			code: ErrDuplicateWord,
			kind: ir.KindInvalidCatalog,
		},
		{
			name: "empty catalog",
			body: `catalog: [], weights: "lot2", utility: "binary"`,
			code: ErrEmptyCatalog,
			kind: ir.KindInvalidCatalog,
		},
		{
			name: "unknown catalog",
			body: `catalog: "nine_corner", weights: "lot2", utility: "binary"`,
			code: ErrUnknownCatalogRef,
		},
		{
			name: "missing cost",
			body: `catalog: ["AND", "XOR"], weights: { AND: 1 }, utility: "binary"`,
			code: ErrMissingCost,
			kind: ir.KindUnknownConnective,
		},
		{
			name: "negative cost",
			body: `catalog: ["AND"], weights: { AND: -1 }, utility: "binary"`,
			code: ErrNegativeCost,
		},
		{
			name: "unknown weights",
			body: `catalog: "full", weights: "lot9", utility: "binary"`,
			code: ErrUnknownWeightsRef,
		},
		{
			name: "utility with three rows",
			body: `catalog: "full", weights: "lot2", utility: [[1, 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0]]`,
			code: ErrUtilityShape,
		},
		{
			name: "utility entry out of range",
			body: `catalog: "full", weights: "lot2", utility: [[2, 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]]`,
			code: ErrUtilityRange,
		},
		{
			name: "utility entry not rational",
			body: `catalog: "full", weights: "lot2", utility: [["one", 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]]`,
			code: ErrUtilityShape,
		},
		{
			name: "unknown utility",
			body: `catalog: "full", weights: "lot2", utility: "cosine"`,
			code: ErrUnknownUtilityRef,
		},
		{
			name: "bad normalization",
			body: `catalog: "full", weights: "lot2", utility: "binary", normalization: "softmax"`,
			code: ErrInvalidNormalization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileInline(t, "experiment: inline: {"+tt.body+"}")
			require.Error(t, err)

			var ce *CompileError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tt.code, ce.Code, "error: %v", err)
			assert.True(t, ce.Pos.IsValid(), "error has no position: %v", err)

			if tt.kind != "" {
				var ie *ir.Error
				require.True(t, errors.As(err, &ie), "no domain error in %v", err)
				assert.Equal(t, tt.kind, ie.Kind)
			}
		})
	}
}

func TestCompile_CollectsAllErrors(t *testing.T) {
	v := cuecontext.New().CompileString(`
		catalog: broken: [[1, 1]]
		weights: bad: { AND: -2 }
		utility: flat: [[1]]
		experiment: ok: { catalog: ["AND"], weights: { AND: 1 }, utility: [[1, 0, 0, 0], [0, 1, 0, 0], [0, 0, 1, 0], [0, 0, 0, 1]] }
	`)
	require.NoError(t, v.Err())

	reg, errs := Compile(v)
	assert.Len(t, errs, 3)
	assert.Contains(t, reg.Experiments, "ok")
	assert.Empty(t, reg.Catalogs)
}

func TestLoadDir_UserExperiments(t *testing.T) {
	dir := t.TempDir()
	src := `package experiments

catalog: duo: ["AND", "OR"]

experiment: duo: {
	description: "conjunction and disjunction"
	catalog:     "duo"
	weights:     "lot1"
	utility:     "graded"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "duo.cue"), []byte(src), 0o644))

	res, errs := LoadDir(dir)
	require.Empty(t, errs)
	assert.Equal(t, 1, res.FileCount)

	exp, err := res.Registry.Experiment("duo")
	require.NoError(t, err)
	assert.Equal(t, []ir.Word{catalog.AND, catalog.OR}, exp.Catalog.Words)
	assert.Equal(t, "lot1", exp.Weights.Name)

	// Presets stay available alongside user definitions.
	_, err = res.Registry.Experiment("default")
	assert.NoError(t, err)
}

func TestLoadDir_ConflictWithPreset(t *testing.T) {
	dir := t.TempDir()
	src := "package experiments\n\ncatalog: four_corner: [\"AND\"]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conflict.cue"), []byte(src), 0o644))

	_, errs := LoadDir(dir)
	assert.NotEmpty(t, errs)
}

func TestLoadDir_EmptyDirIsPresets(t *testing.T) {
	res, errs := LoadDir(t.TempDir())
	require.Empty(t, errs)
	assert.Zero(t, res.FileCount)
	assert.Contains(t, res.Registry.Experiments, "default")

	res, errs = LoadDir("")
	require.Empty(t, errs)
	assert.Contains(t, res.Registry.Experiments, "legacy")
}

func TestLoadDir_Missing(t *testing.T) {
	_, errs := LoadDir(filepath.Join(t.TempDir(), "nope"))
	require.Len(t, errs, 1)
}
