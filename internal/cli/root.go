package cli

import (
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/ir"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose     bool
	Format      string // "json" | "text"
	ConfigPath  string
	Experiments string

	// Config is loaded before any subcommand runs.
	Config *Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the connective CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "connective",
		Short: "Complexity and informativeness of Boolean connective inventories",
		Long: `connective enumerates every inventory of a catalog of two-place Boolean
connectives, strengthens each word by innocent exclusion, scores the
inventory for complexity and informativeness, and reports the Pareto
frontier of the two.

Experiments (catalog, weight table, utility, normalization) are defined in
CUE; operational settings come from connective.yaml, CONNECTIVE_* variables
and flags.`,
		Version:       ir.EngineVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, err := opts.load(cmd)
			return err
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", DefaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: ./connective.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Experiments, "experiments-dir", "", "directory of .cue experiment files (presets only if empty)")

	// Add subcommands
	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewStrengthenCommand(opts))
	cmd.AddCommand(NewParetoCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// load reads the configuration once per invocation, layering the command's
// explicitly set flags on top.
func (o *RootOptions) load(cmd *cobra.Command) (*Config, error) {
	if o.Config != nil {
		return o.Config, nil
	}
	cfg, err := LoadConfig(o.ConfigPath, cmd.Flags())
	if err != nil {
		return nil, WrapExitError(ExitCommandError, ErrCodeConfig+": configuration", err)
	}
	o.Config = cfg
	o.Verbose = cfg.Verbose
	o.Format = cfg.Format
	return cfg, nil
}

// formatter builds the output formatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// logger builds the slog logger: text handler, debug level when verbose.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if o.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
