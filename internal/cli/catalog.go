package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/roach88/connective/internal/catalog"
	"github.com/roach88/connective/internal/compiler"
	"github.com/roach88/connective/internal/ir"
)

// ConnectiveOutput describes one connective.
type ConnectiveOutput struct {
	Name   string         `json:"name"`
	Bits   string         `json:"bits"`
	Vector [ir.Worlds]int `json:"vector"`
}

// ExperimentOutput describes one experiment definition.
type ExperimentOutput struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Catalog       string `json:"catalog"`
	Words         int    `json:"words"`
	Weights       string `json:"weights"`
	Utility       string `json:"utility"`
	Normalization string `json:"normalization"`
}

// CatalogListing is the payload of the catalog command.
type CatalogListing struct {
	Connectives []ConnectiveOutput  `json:"connectives"`
	Catalogs    map[string][]string `json:"catalogs"`
	Weights     []string            `json:"weights"`
	Utilities   []string            `json:"utilities"`
	Experiments []ExperimentOutput  `json:"experiments"`
}

// NewCatalogCommand creates the catalog command.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List connectives and experiment definitions",
		Long: `List the sixteen two-place connectives with their names and truth vectors
over (p∧q, p∧¬q, ¬p∧q, ¬p∧¬q), followed by the available catalogs, weight
tables, utilities and experiments.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalog(rootOpts, cmd)
		},
	}
	return cmd
}

func runCatalog(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := opts.load(cmd)
	if err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	result, errs := LoadExperiments(cfg.ExperimentsDir)
	if len(errs) > 0 {
		return formatter.Fail(ExitCommandError, loadErrorCode(errs[0]), "failed to load experiments", errs[0])
	}
	listing := buildListing(result.Registry)

	if formatter.Format == "json" {
		return formatter.Success(listing)
	}

	w := formatter.Writer
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"name", "bits", "p∧q", "p∧¬q", "¬p∧q", "¬p∧¬q"})
	for _, c := range listing.Connectives {
		t.AppendRow(table.Row{c.Name, c.Bits, c.Vector[0], c.Vector[1], c.Vector[2], c.Vector[3]})
	}
	t.Render()

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Catalogs:")
	for _, name := range result.Registry.CatalogNames() {
		fmt.Fprintf(w, "  %-28s %s\n", name, strings.Join(listing.Catalogs[name], " "))
	}
	fmt.Fprintf(w, "Weight tables: %s\n", strings.Join(listing.Weights, " "))
	fmt.Fprintf(w, "Utilities:     %s\n", strings.Join(listing.Utilities, " "))

	fmt.Fprintln(w)
	et := table.NewWriter()
	et.SetOutputMirror(w)
	et.SetStyle(table.StyleLight)
	et.AppendHeader(table.Row{"experiment", "catalog", "weights", "utility", "normalization", "description"})
	for _, e := range listing.Experiments {
		et.AppendRow(table.Row{e.Name, fmt.Sprintf("%s (%d)", e.Catalog, e.Words), e.Weights, e.Utility, e.Normalization, e.Description})
	}
	et.Render()
	return nil
}

func buildListing(reg *compiler.Registry) CatalogListing {
	listing := CatalogListing{
		Catalogs:  make(map[string][]string),
		Weights:   reg.WeightNames(),
		Utilities: reg.UtilityNames(),
	}
	for _, w := range catalog.All() {
		listing.Connectives = append(listing.Connectives, ConnectiveOutput{
			Name:   namesOf(ir.Language{w})[0],
			Bits:   w.String(),
			Vector: w.Vector(),
		})
	}
	for _, name := range reg.CatalogNames() {
		listing.Catalogs[name] = namesOf(reg.Catalogs[name].Words)
	}
	for _, name := range reg.ExperimentNames() {
		e := reg.Experiments[name]
		listing.Experiments = append(listing.Experiments, ExperimentOutput{
			Name:          name,
			Description:   e.Description,
			Catalog:       e.Catalog.Name,
			Words:         len(e.Catalog.Words),
			Weights:       e.Weights.Name,
			Utility:       e.Utility.Name,
			Normalization: string(e.Normalization),
		})
	}
	return listing
}
