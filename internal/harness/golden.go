package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/connective/internal/ir"
)

// TraceSnapshot captures the complete trace for a scenario execution.
type TraceSnapshot struct {
	ScenarioName string       `json:"scenario_name"`
	Experiment   string       `json:"experiment"`
	Trace        []TraceEvent `json:"trace"`
}

// toCanonical converts a TraceSnapshot to an IRObject for canonical JSON
// serialization. Empty optional fields are left out.
func (s *TraceSnapshot) toCanonical() ir.IRObject {
	trace := make(ir.IRArray, len(s.Trace))
	for i, event := range s.Trace {
		obj := ir.NewIRObjectFromPairs(
			ir.O("type", ir.IRString(event.Type)),
			ir.O("seq", ir.IRInt(event.Seq)),
		)
		switch event.Type {
		case EventExplain:
			obj["word"] = ir.IRString(event.Word)
			obj["alternatives"] = ir.IRStrings(event.Alternatives)
			obj["excludable"] = ir.IRStrings(event.Excludable)
			obj["strengthened"] = ir.IRString(event.Strengthened)
		case EventScore:
			obj["language"] = ir.IRStrings(event.Language)
			obj["complexity"] = ir.IRInt(event.Complexity)
			obj["informativeness"] = ir.IRString(event.Informativeness)
		}
		trace[i] = obj
	}

	return ir.NewIRObjectFromPairs(
		ir.O("scenario_name", ir.IRString(s.ScenarioName)),
		ir.O("experiment", ir.IRString(s.Experiment)),
		ir.O("trace", trace),
	)
}

// MarshalTrace returns the canonical JSON of a scenario's trace.
func MarshalTrace(scenario *Scenario, result *Result) ([]byte, error) {
	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Experiment:   scenario.ExperimentName(),
		Trace:        result.Trace,
	}
	return ir.MarshalCanonical(snapshot.toCanonical())
}

// RunWithGolden executes a scenario against the presets and compares the
// trace against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	traceJSON, err := MarshalTrace(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)
	return result, nil
}
