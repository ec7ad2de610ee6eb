package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/engine"
	"github.com/roach88/connective/internal/ir"
	"github.com/roach88/connective/internal/report"
)

// StrengthenOptions holds flags for the strengthen command.
type StrengthenOptions struct {
	*RootOptions
	experiment string
	language   []string
}

// WordOutput explains the strengthening of one word.
type WordOutput struct {
	Word         string     `json:"word"`
	Alternatives []string   `json:"alternatives"`
	Candidates   int        `json:"candidates"`
	Admissible   int        `json:"admissible"`
	Retained     [][]string `json:"retained"`
	Excludable   []string   `json:"excludable"`
	Strengthened string     `json:"strengthened"`
	Bits         string     `json:"bits"`
}

// StrengthenResult is the payload of the strengthen command.
type StrengthenResult struct {
	Experiment      string       `json:"experiment"`
	Language        []string     `json:"language"`
	Words           []WordOutput `json:"words"`
	Strengthened    []string     `json:"strengthened"`
	Complexity      int          `json:"complexity"`
	Informativeness string       `json:"informativeness"`
	Value           float64      `json:"value"`
}

// NewStrengthenCommand creates the strengthen command.
func NewStrengthenCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StrengthenOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "strengthen --in <language> [word...]",
		Short: "Explain the strengthening of words in a language",
		Long: `Explain how each word of a language is strengthened by innocent exclusion:
its alternatives, the maximal sets of alternatives that can be negated
consistently with it, the innocently excludable set and the strengthened
meaning. Then score the language under the experiment.

Words are display names (AND, OR, <-, NAND, ...) or bit strings over
(p∧q, p∧¬q, ¬p∧q, ¬p∧¬q) such as 1110. Without word arguments every word
of the language is explained.

Example:
  connective strengthen --in AND,OR
  connective strengthen --in P,Q,OR,AND OR
  connective strengthen --in 1110,1000 --experiment four_corner --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrengthen(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.experiment, "experiment", "e", DefaultExperiment, "experiment to score the language under")
	cmd.Flags().StringSliceVar(&opts.language, "in", nil, "language: comma-separated names or bit strings (required)")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

func runStrengthen(opts *StrengthenOptions, args []string, cmd *cobra.Command) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	lang, err := catalog.ParseLanguage(opts.language)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid language", err)
	}

	words := lang
	if len(args) > 0 {
		words, err = parseWordsIn(args, lang)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeInvalidInput, "invalid word", err)
		}
	}

	exp, err := loadExperiment(cfg.ExperimentsDir, cfg.Experiment)
	if err != nil {
		return formatter.Fail(ExitCommandError, loadErrorCode(err), "failed to load experiment", err)
	}

	eng := engine.New(exp, engine.WithLogger(opts.logger(cmd.ErrOrStderr())))
	rec, err := eng.Score(lang)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeRunFailed, "failed to score language", err)
	}

	result := StrengthenResult{
		Experiment:      exp.Name,
		Language:        rec.Names,
		Strengthened:    namesOf(engine.StrengthenLanguage(lang)),
		Complexity:      rec.Complexity,
		Informativeness: string(ir.IRRat(rec.Informativeness)),
		Value:           rec.InformativenessFloat(),
	}
	for _, w := range words {
		result.Words = append(result.Words, wordOutput(engine.Explain(w, lang)))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	printStrengthen(formatter, result)
	return nil
}

// parseWordsIn resolves args and checks each is a word of lang.
func parseWordsIn(args []string, lang ir.Language) (ir.Language, error) {
	out := make(ir.Language, 0, len(args))
	for _, a := range args {
		w, err := catalog.Lookup(a)
		if err != nil {
			return nil, err
		}
		if !lang.Contains(w) {
			return nil, fmt.Errorf("%s is not in the language", a)
		}
		out = append(out, w)
	}
	return out, nil
}

func wordOutput(ex engine.Explanation) WordOutput {
	retained := make([][]string, len(ex.Retained))
	for i, set := range ex.Retained {
		retained[i] = namesOf(set)
	}
	return WordOutput{
		Word:         namesOf(ir.Language{ex.Prejacent})[0],
		Alternatives: namesOf(ex.Alternatives),
		Candidates:   ex.Candidates,
		Admissible:   ex.Admissible,
		Retained:     retained,
		Excludable:   namesOf(ex.Excludable),
		Strengthened: namesOf(ir.Language{ex.Strengthened})[0],
		Bits:         ex.Strengthened.String(),
	}
}

func printStrengthen(f *OutputFormatter, r StrengthenResult) {
	w := f.Writer
	fmt.Fprintf(w, "Language: %s (experiment %s)\n", strings.Join(r.Language, " "), r.Experiment)
	for _, word := range r.Words {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s\n", word.Word)
		fmt.Fprintf(w, "  alternatives: %s\n", listOrNone(word.Alternatives))
		if f.Verbose {
			fmt.Fprintf(w, "  candidates:   %d (%d admissible)\n", word.Candidates, word.Admissible)
			for _, set := range word.Retained {
				fmt.Fprintf(w, "  maximal:      {%s}\n", strings.Join(set, ", "))
			}
		}
		fmt.Fprintf(w, "  excludable:   %s\n", listOrNone(word.Excludable))
		fmt.Fprintf(w, "  strengthened: %s (%s)\n", word.Strengthened, word.Bits)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Strengthened language: %s\n", strings.Join(r.Strengthened, " "))
	fmt.Fprintf(w, "Complexity:      %d\n", r.Complexity)
	fmt.Fprintf(w, "Informativeness: %s (%s)\n", r.Informativeness, report.FormatDecimal(r.Value))
}

func listOrNone(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	return strings.Join(names, " ")
}
