package cli

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/engine"
	"github.com/roach88/connective/internal/ir"
	"github.com/roach88/connective/internal/report"
)

// RunOptions holds flags for the run command. Flag values reach the command
// through the layered Config.
type RunOptions struct {
	*RootOptions
	experiment string
	outDir     string
	plot       string
	xlsx       string
	noCSV      bool

	// RunIDs allows overriding the run ID generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	RunIDs engine.RunIDGenerator
}

// RunSummary is the JSON payload of the run command.
type RunSummary struct {
	RunID       string         `json:"run_id"`
	Experiment  string         `json:"experiment"`
	Fingerprint string         `json:"fingerprint"`
	Digest      string         `json:"digest"`
	Catalog     []string       `json:"catalog"`
	Languages   int            `json:"languages"`
	Frontier    []RecordOutput `json:"frontier"`
	Summary     SummaryOutput  `json:"summary"`
	Files       []string       `json:"files"`
}

// SummaryOutput is the JSON form of report.Summary. Correlation is omitted
// when it is undefined.
type SummaryOutput struct {
	Complexity      Stats    `json:"complexity"`
	Informativeness Stats    `json:"informativeness"`
	Correlation     *float64 `json:"correlation,omitempty"`
}

// Stats describes one axis of the table.
type Stats struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
}

// RecordOutput is the JSON form of a scored language.
type RecordOutput struct {
	Index           int      `json:"index"`
	Names           []string `json:"names"`
	Language        []string `json:"language"`
	Complexity      int      `json:"complexity"`
	Informativeness string   `json:"informativeness"`
	Value           float64  `json:"value"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [experiments-dir]",
		Short: "Score every inventory of an experiment's catalog",
		Long: `Enumerate every non-empty inventory of the experiment's catalog, strengthen
each word, score complexity and informativeness, and extract the Pareto
frontier.

Writes full.csv and pareto.csv to the output directory, plus an optional
scatter plot (SVG or PNG by extension) and Excel workbook. Experiments come
from the built-in presets and any .cue files in experiments-dir.

Example:
  connective run
  connective run --experiment four_corner --plot plot.svg
  connective run ./experiments --experiment mine --out ./results --xlsx tables.xlsx`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExperiment(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.experiment, "experiment", "e", DefaultExperiment, "experiment name")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", DefaultOutDir, "output directory")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "scatter plot file (.svg, .png, .pdf)")
	cmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Excel workbook file")
	cmd.Flags().BoolVar(&opts.noCSV, "no-csv", false, "skip full.csv and pareto.csv")

	return cmd
}

func runExperiment(opts *RunOptions, args []string, cmd *cobra.Command) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	formatter := opts.formatter(cmd)
	logger := opts.logger(cmd.ErrOrStderr())

	dir := cfg.ExperimentsDir
	if len(args) == 1 {
		dir = args[0]
	}
	exp, err := loadExperiment(dir, cfg.Experiment)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load experiment", err)
	}
	fingerprint, err := ir.ExperimentFingerprint(exp)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to fingerprint experiment", err)
	}
	logger.Debug("experiment loaded", "experiment", exp.Name, "fingerprint", fingerprint)

	runIDs := opts.RunIDs
	if runIDs == nil {
		runIDs = engine.UUIDv7Generator{}
	}
	eng := engine.New(exp,
		engine.WithLogger(logger),
		engine.WithRunIDGenerator(runIDs),
		engine.WithProgress(func(done, total int) {
			formatter.VerboseLog("scored %d/%d languages", done, total)
		}))

	// Setup signal handling for graceful shutdown
	// Use command's context if available (for testing), otherwise create one
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan) // Prevent signal handler leak

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("received signal, stopping run", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	table, err := eng.Run(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return formatter.Fail(ExitCommandError, ErrCodeRunFailed, "run cancelled", err)
		}
		return formatter.Fail(ExitCommandError, ErrCodeRunFailed, "run failed", err)
	}

	files, err := report.WriteFiles(cfg.OutDir, table, report.Options{
		CSV:  cfg.WriteCSV,
		Plot: cfg.Plot,
		XLSX: cfg.XLSX,
	})
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write results", err)
	}
	for _, f := range files {
		logger.Debug("wrote file", "path", f)
	}

	summary, err := report.Summarize(table)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to summarize", err)
	}

	names := namesOf(exp.Catalog.Words)
	if formatter.Format == "json" {
		digest, err := ir.TableDigest(table.Records)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeGeneric, "failed to digest table", err)
		}
		if files == nil {
			files = []string{}
		}
		return formatter.SuccessWithRunID(RunSummary{
			RunID:       table.RunID,
			Experiment:  exp.Name,
			Fingerprint: fingerprint,
			Digest:      digest,
			Catalog:     names,
			Languages:   len(table.Records),
			Frontier:    recordOutputs(table.FrontierRecords()),
			Summary:     summaryOutput(summary),
			Files:       files,
		}, table.RunID)
	}

	w := formatter.Writer
	report.PrintConnectives(w, names)
	fmt.Fprintln(w)
	report.PrintFrontier(w, table.FrontierRecords())
	if formatter.Verbose {
		fmt.Fprintln(w)
		report.PrintSummary(w, summary)
	}
	for _, f := range files {
		fmt.Fprintf(w, "wrote %s\n", f)
	}
	return nil
}

func recordOutputs(records []ir.Record) []RecordOutput {
	out := make([]RecordOutput, len(records))
	for i, r := range records {
		lang := make([]string, len(r.Language))
		for j, w := range r.Language {
			lang[j] = w.String()
		}
		out[i] = RecordOutput{
			Index:           r.Index,
			Names:           r.Names,
			Language:        lang,
			Complexity:      r.Complexity,
			Informativeness: string(ir.IRRat(r.Informativeness)),
			Value:           r.InformativenessFloat(),
		}
	}
	return out
}

func summaryOutput(s report.Summary) SummaryOutput {
	out := SummaryOutput{
		Complexity:      Stats{Min: s.ComplexityMin, Max: s.ComplexityMax, Mean: s.ComplexityMean, Median: s.ComplexityMedian},
		Informativeness: Stats{Min: s.InformativenessMin, Max: s.InformativenessMax, Mean: s.InformativenessMean, Median: s.InformativenessMedian},
	}
	if !math.IsNaN(s.Correlation) {
		c := s.Correlation
		out.Correlation = &c
	}
	return out
}

// namesOf returns display names, falling back to bit strings.
func namesOf(l ir.Language) []string {
	out := make([]string, len(l))
	for i, w := range l {
		name, err := catalog.Name(w)
		if err != nil {
			name = w.String()
		}
		out[i] = name
	}
	return out
}
