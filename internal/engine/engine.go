package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/ir"
)

// progressEvery is the number of languages between progress reports.
const progressEvery = 4096

// Engine scores every language of one experiment.
//
// A run is a pure function of the experiment: enumeration order, the
// implicature replay and the exact rational scores are all deterministic,
// so two runs of the same experiment produce the same table (run ID aside).
//
// An Engine is not safe for concurrent use; Run is single-threaded.
type Engine struct {
	exp      ir.Experiment
	logger   *slog.Logger
	runIDs   RunIDGenerator
	progress func(done, total int)
	exh      *Exhaustifier
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithRunIDGenerator sets the run ID source. Default: UUIDv7Generator.
func WithRunIDGenerator(g RunIDGenerator) Option {
	return func(e *Engine) {
		e.runIDs = g
	}
}

// WithProgress registers a callback invoked every few thousand languages and
// once at the end of a run.
func WithProgress(fn func(done, total int)) Option {
	return func(e *Engine) {
		e.progress = fn
	}
}

// New creates an Engine for exp.
func New(exp ir.Experiment, opts ...Option) *Engine {
	e := &Engine{
		exp:    exp,
		logger: slog.Default(),
		runIDs: UUIDv7Generator{},
		exh:    NewExhaustifier(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Experiment returns the experiment the engine scores.
func (e *Engine) Experiment() ir.Experiment {
	return e.exp
}

// CacheStats returns the hit and miss counts of the implicature cache.
func (e *Engine) CacheStats() ExhaustifierStats {
	return e.exh.Stats()
}

// Run enumerates every language of the catalog, scores it and extracts the
// Pareto frontier.
//
// Any UnknownConnective, DegenerateWord or InvalidCatalog error aborts the
// run and is returned wrapped in a *RunError naming the language. ctx is
// checked between languages.
func (e *Engine) Run(ctx context.Context) (*ir.Table, error) {
	if !ir.ValidNormalizations[e.exp.Normalization] {
		return nil, fmt.Errorf("experiment %q: unknown normalization %q", e.exp.Name, e.exp.Normalization)
	}
	if err := e.exp.Catalog.Validate(); err != nil {
		return nil, fmt.Errorf("experiment %q: %w", e.exp.Name, err)
	}

	runID := e.runIDs.Generate()
	total := LanguageCount(len(e.exp.Catalog.Words))
	start := time.Now()

	e.logger.Info("run starting",
		"run_id", runID,
		"experiment", e.exp.Name,
		"catalog", e.exp.Catalog.Name,
		"weights", e.exp.Weights.Name,
		"utility", e.exp.Utility.Name,
		"normalization", string(e.exp.Normalization),
		"languages", total)

	records := make([]ir.Record, 0, total)
	err := ForEachLanguage(e.exp.Catalog.Words, func(l ir.Language) error {
		if err := ctx.Err(); err != nil {
			return &RunError{Index: len(records), Language: l, Err: err}
		}
		rec, err := e.score(len(records), l)
		if err != nil {
			return err
		}
		records = append(records, rec)

		if done := len(records); done%progressEvery == 0 {
			e.logger.Debug("run progress", "run_id", runID, "done", done, "total", total)
			if e.progress != nil {
				e.progress(done, total)
			}
		}
		return nil
	})
	if err != nil {
		e.logger.Error("run failed", "run_id", runID, "error", err)
		return nil, err
	}
	if e.progress != nil && total%progressEvery != 0 {
		e.progress(total, total)
	}

	frontier := Frontier(records)
	stats := e.exh.Stats()
	e.logger.Info("run finished",
		"run_id", runID,
		"languages", len(records),
		"frontier", len(frontier),
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"elapsed", time.Since(start))

	return &ir.Table{
		Experiment: e.exp,
		RunID:      runID,
		Records:    records,
		Frontier:   frontier,
	}, nil
}

// Score scores a single language under the engine's experiment. The record's
// Index is zero.
func (e *Engine) Score(l ir.Language) (ir.Record, error) {
	if err := l.Validate(); err != nil {
		return ir.Record{}, err
	}
	return e.score(0, l)
}

func (e *Engine) score(index int, l ir.Language) (ir.Record, error) {
	names, err := catalog.Names(l)
	if err != nil {
		return ir.Record{}, &RunError{Index: index, Language: l, Stage: "names", Err: err}
	}

	c, err := Complexity(l, e.exp.Weights)
	if err != nil {
		return ir.Record{}, &RunError{Index: index, Language: l, Names: names, Stage: "complexity", Err: err}
	}

	strengthened := e.exh.StrengthenLanguage(l)
	info, err := Informativeness(strengthened, e.exp.Utility, e.exp.Normalization)
	if err != nil {
		return ir.Record{}, &RunError{Index: index, Language: l, Names: names, Stage: "informativeness", Err: err}
	}

	return ir.Record{
		Index:           index,
		Language:        l,
		Complexity:      c,
		Informativeness: info,
		Names:           names,
	}, nil
}
