package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/compiler"
	"github.com/roach88/connective/internal/engine"
)

// Harness is the test execution engine.
// It resolves scenario experiments against a registry and scores each
// scenario's language in isolation.
type Harness struct {
	registry *compiler.Registry
	logger   *slog.Logger
}

// New creates a harness over reg. A nil logger discards engine logs.
func New(reg *compiler.Registry, logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{registry: reg, logger: logger}
}

// Run executes a scenario against the built-in presets.
func Run(scenario *Scenario) (*Result, error) {
	reg, err := compiler.LoadPresets()
	if err != nil {
		return nil, err
	}
	return New(reg, nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Resolve the experiment and parse the language
//  2. Explain every word of the language against the language
//  3. Score the language under the experiment
//  4. Compare the outcome with the scenario's expectations
//
// A returned error means the scenario could not be executed at all
// (unknown experiment, unscorable language). Expectation mismatches are
// reported in Result.Errors.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	exp, err := h.registry.Experiment(scenario.ExperimentName())
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	lang, err := catalog.ParseLanguage(scenario.Language)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: language: %w", scenario.Name, err)
	}

	result := NewResult()
	for _, w := range lang {
		result.AddExplainTrace(engine.Explain(w, lang))
	}

	eng := engine.New(exp, engine.WithLogger(h.logger))
	rec, err := eng.Score(lang)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	result.AddScoreTrace(rec)

	for _, msg := range EvaluateExpectations(scenario.Expect, result) {
		result.AddError(msg)
	}
	return result, nil
}
