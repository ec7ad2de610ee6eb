package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/engine"
	"github.com/roach88/connective/internal/ir"
	"github.com/roach88/connective/internal/report"
)

// ParetoOptions holds flags for the pareto command.
type ParetoOptions struct {
	*RootOptions
	Write string // frontier CSV output path
}

// ParetoResult is the JSON payload of the pareto command.
type ParetoResult struct {
	Source    string         `json:"source"`
	Languages int            `json:"languages"`
	Frontier  []RecordOutput `json:"frontier"`
	Written   string         `json:"written,omitempty"`
}

// NewParetoCommand creates the pareto command.
func NewParetoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ParetoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "pareto <full.csv>",
		Short: "Recompute the Pareto frontier of a saved table",
		Long: `Read a full table written by "connective run" and recompute its Pareto
frontier: the languages no other language beats on complexity (lower is
better) and informativeness (higher is better) at once.

Informativeness is read back from its decimal rendering, so comparisons
are exact on the written values.

Example:
  connective pareto full.csv
  connective pareto full.csv --write pareto.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPareto(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Write, "write", "w", "", "write the frontier as CSV to this path")

	return cmd
}

func runPareto(opts *ParetoOptions, path string, cmd *cobra.Command) error {
	if _, err := opts.load(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	f, err := os.Open(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, "failed to open table", err)
	}
	records, err := report.ReadTable(f)
	f.Close()
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "failed to read table", err)
	}
	formatter.VerboseLog("Read %d language(s) from %s", len(records), path)

	table := &ir.Table{Records: records, Frontier: engine.Frontier(records)}

	if opts.Write != "" {
		out, err := os.Create(opts.Write)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to create frontier file", err)
		}
		if err := report.WriteFrontier(out, table); err != nil {
			out.Close()
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write frontier", err)
		}
		if err := out.Close(); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeWriteFailed, "failed to write frontier", err)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(ParetoResult{
			Source:    path,
			Languages: len(records),
			Frontier:  recordOutputs(table.FrontierRecords()),
			Written:   opts.Write,
		})
	}

	report.PrintFrontier(formatter.Writer, table.FrontierRecords())
	if opts.Write != "" {
		fmt.Fprintf(formatter.Writer, "wrote %s\n", opts.Write)
	}
	return nil
}
