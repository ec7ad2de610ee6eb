package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/compiler"
)

// ValidationIssue is one error found while validating experiments.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid       bool              `json:"valid"`
	Files       int               `json:"files"`
	Experiments []string          `json:"experiments,omitempty"`
	Errors      []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [experiments-dir]",
		Short: "Validate experiment definitions",
		Long: `Load the presets and every .cue file in experiments-dir, compile every
catalog, weight table, utility and experiment, and report all errors with
their CUE source positions. Nothing is scored.

Exit codes:
  0 - All definitions valid
  1 - One or more definitions invalid
  2 - Command error (directory not found, etc.)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, args []string, cmd *cobra.Command) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	dir := cfg.ExperimentsDir
	if len(args) == 1 {
		dir = args[0]
	}

	result, loadErrors := LoadExperiments(dir)

	// Directory not found, unreadable, not a directory
	if result == nil && !definitionErrors(loadErrors) {
		code := ErrCodeGeneric
		msg := "failed to load experiments"
		if len(loadErrors) > 0 {
			code = loadErrorCode(loadErrors[0])
			msg = loadErrors[0].Error()
		}
		_ = formatter.Error(code, msg, nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, msg))
	}

	if len(loadErrors) > 0 {
		files := 0
		if result != nil {
			files = result.FileCount
		}
		return outputValidationErrors(formatter, files, loadErrors)
	}

	if dir != "" {
		formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, dir)
	}
	return outputValidateSuccess(formatter, result)
}

// definitionErrors reports whether errs describe defects in the CUE
// definitions rather than in the directory itself.
func definitionErrors(errs []error) bool {
	if len(errs) == 0 {
		return false
	}
	code := loadErrorCode(errs[0])
	return code == ErrCodeLoadFailed || strings.HasPrefix(code, "E2")
}

func toIssue(err error) ValidationIssue {
	var loadErr *LoadError
	if !errors.As(err, &loadErr) {
		return ValidationIssue{Code: ErrCodeGeneric, Message: err.Error()}
	}
	issue := ValidationIssue{Code: loadErr.Code, Message: loadErr.Message}
	if loadErr.Pos.IsValid() {
		issue.File = loadErr.Pos.Filename()
		issue.Line = loadErr.Pos.Line()
		issue.Column = loadErr.Pos.Column()
	}
	return issue
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result *compiler.LoadResult) error {
	names := result.Registry.ExperimentNames()
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{
			Valid:       true,
			Files:       result.FileCount,
			Experiments: names,
		})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d experiment(s) valid\n", len(names))
	for _, name := range names {
		formatter.VerboseLog("  %s", name)
	}
	return nil
}

// outputValidationErrors outputs every validation error.
func outputValidationErrors(formatter *OutputFormatter, files int, errs []error) error {
	issues := make([]ValidationIssue, len(errs))
	for i, err := range errs {
		issues[i] = toIssue(err)
	}

	if formatter.Format == "json" {
		if err := formatter.encode(CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Files:  files,
				Errors: issues,
			},
			Error: &CLIError{
				Code:    issues[0].Code,
				Message: issues[0].Message,
			},
		}); err != nil {
			return err
		}
		// Validation failures = exit code 1 (test/validation failure)
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, issue := range issues {
		if issue.Line > 0 {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n", issue.File, issue.Line, issue.Column)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", issue.Code, issue.Message)
	}

	// Validation failures = exit code 1 (test/validation failure)
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(issues)))
}
