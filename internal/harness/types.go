package harness

import (
	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/engine"
	"github.com/roach88/connective/internal/ir"
)

// Trace event types.
const (
	EventExplain = "explain"
	EventScore   = "score"
)

// TraceEvent is one step of a scenario execution.
// Explain events carry the word fields; the score event carries the
// language, complexity and informativeness.
type TraceEvent struct {
	Type string `json:"type"`
	Seq  int64  `json:"seq"`

	Word         string   `json:"word,omitempty"`
	Alternatives []string `json:"alternatives,omitempty"`
	Excludable   []string `json:"excludable,omitempty"`
	Strengthened string   `json:"strengthened,omitempty"`

	Language        []string `json:"language,omitempty"`
	Complexity      int      `json:"complexity,omitempty"`
	Informativeness string   `json:"informativeness,omitempty"`
}

// Result is the outcome of a test scenario execution.
type Result struct {
	// Pass indicates overall test success.
	// True if all expectations match.
	Pass bool `json:"pass"`

	// Trace contains the explain events and the score event in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation mismatch messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Explanations holds the engine's explanation of each word, in language
	// order.
	Explanations []engine.Explanation `json:"-"`

	// Record is the scored language.
	Record ir.Record `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddExplainTrace adds a word explanation to the trace.
func (r *Result) AddExplainTrace(ex engine.Explanation) {
	r.Explanations = append(r.Explanations, ex)
	r.Trace = append(r.Trace, TraceEvent{
		Type:         EventExplain,
		Seq:          int64(len(r.Trace)),
		Word:         wordName(ex.Prejacent),
		Alternatives: wordNames(ex.Alternatives),
		Excludable:   wordNames(ex.Excludable),
		Strengthened: wordName(ex.Strengthened),
	})
}

// AddScoreTrace adds the scored language to the trace.
func (r *Result) AddScoreTrace(rec ir.Record) {
	r.Record = rec
	r.Trace = append(r.Trace, TraceEvent{
		Type:            EventScore,
		Seq:             int64(len(r.Trace)),
		Language:        wordNames(rec.Language),
		Complexity:      rec.Complexity,
		Informativeness: string(ir.IRRat(rec.Informativeness)),
	})
}

func wordName(w ir.Word) string {
	name, err := catalog.Name(w)
	if err != nil {
		return w.String()
	}
	return name
}

func wordNames(l ir.Language) []string {
	out := make([]string, len(l))
	for i, w := range l {
		out[i] = wordName(w)
	}
	return out
}
