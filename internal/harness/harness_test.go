package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/compiler"
	"github.com/roach88/connective/internal/testutil"
)

func intPtr(n int) *int { return &n }

func TestRun_AndOr(t *testing.T) {
	scenario := &Scenario{
		Name:     "and_or",
		Language: []string{"AND", "OR"},
		Expect: Expectations{
			Excludable:      map[string][]string{"OR": {"AND"}, "AND": {}},
			Strengthened:    []string{"AND", "XOR"},
			Complexity:      intPtr(6),
			Informativeness: "1/2",
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, EventExplain, result.Trace[0].Type)
	assert.Equal(t, "AND", result.Trace[0].Word)
	assert.Equal(t, "OR", result.Trace[1].Word)
	assert.Equal(t, "XOR", result.Trace[1].Strengthened)
	assert.Equal(t, EventScore, result.Trace[2].Type)
	assert.Equal(t, int64(2), result.Trace[2].Seq)
	assert.Equal(t, "1/2", result.Trace[2].Informativeness)

	require.Len(t, result.Explanations, 2)
	assert.Equal(t, catalog.XOR, result.Explanations[1].Strengthened)
	assert.Equal(t, 6, result.Record.Complexity)
}

func TestRun_Mismatches(t *testing.T) {
	scenario := &Scenario{
		Name:     "wrong",
		Language: []string{"AND", "OR"},
		Expect: Expectations{
			Alternatives:    map[string][]string{"AND": {"OR"}},
			Excludable:      map[string][]string{"OR": {}},
			Strengthened:    []string{"AND", "OR"},
			Complexity:      intPtr(5),
			Informativeness: "1/3",
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 5)
	assert.Equal(t, "alternatives.AND: expected [OR], got []", result.Errors[0])
	assert.Equal(t, "excludable.OR: expected [], got [AND]", result.Errors[1])
	assert.Equal(t, "strengthened[1] (OR): expected OR, got XOR", result.Errors[2])
	assert.Equal(t, "complexity: expected 5, got 6", result.Errors[3])
	assert.Equal(t, "informativeness: expected 1/3, got 1/2", result.Errors[4])
}

func TestRun_ExcludableComparedAsSets(t *testing.T) {
	scenario := &Scenario{
		Name:     "order",
		Language: []string{"P", "Q", "OR", "AND"},
		Expect: Expectations{
			Excludable: map[string][]string{"P": {"AND", "Q"}},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_UnknownExperiment(t *testing.T) {
	scenario := &Scenario{
		Name:       "x",
		Experiment: "nine_corner",
		Language:   []string{"AND"},
		Expect:     Expectations{Complexity: intPtr(3)},
	}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nine_corner")
}

func TestHarness_UserRegistry(t *testing.T) {
	reg, err := compiler.LoadPresets()
	require.NoError(t, err)

	exp, err := reg.Experiment("four_corner")
	require.NoError(t, err)
	exp.Name = "cheap"
	exp.Weights = reg.Weights["lot1"]
	reg.Experiments["cheap"] = exp

	h := New(reg, testutil.NewTestLogger(t))
	result, err := h.Run(&Scenario{
		Name:       "cheap",
		Experiment: "cheap",
		Language:   []string{"AND", "OR"},
		Expect:     Expectations{Complexity: intPtr(2)},
	})
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_ScenarioFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, path := range files {
		t.Run(filepath.Base(path), func(t *testing.T) {
			scenario, err := LoadScenario(path)
			require.NoError(t, err)

			result, err := Run(scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}
