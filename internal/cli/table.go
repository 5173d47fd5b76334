package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/materials"
	"github.com/drennan/optmix/internal/recipe"
)

// TableOptions holds flags for the table command.
type TableOptions struct {
	*RootOptions
	mixFlags
}

// TableResult is the JSON payload of the table command.
type TableResult struct {
	Recipe  string       `json:"recipe"`
	Rule    string       `json:"rule"`
	Density float64      `json:"density"`
	Rows    []recipe.Row `json:"rows"`
}

// NewTableCommand creates the table command.
func NewTableCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TableOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the constituent table of a mixture",
		Long: `Print each constituent of the mixture with its volume fraction
(derived from the solid densities) and its mass fraction, plus the bulk
density of the composite material.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTable(opts, cmd)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

func runTable(opts *TableOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	rec, err := opts.resolve()
	if err != nil {
		return failCommand(formatter, err)
	}
	cat, err := materials.Default()
	if err != nil {
		return failCommand(formatter, err)
	}
	built, err := recipe.Build(rec, cat)
	if err != nil {
		return failCommand(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(TableResult{
			Recipe:  rec.Name,
			Rule:    built.Mixture.Rule(),
			Density: built.Density,
			Rows:    built.Rows,
		})
	}

	writeConstituentTable(formatter.Writer, built.Rows)
	fmt.Fprintf(formatter.Writer, "\nAverage material density = %.4f g/cc\n", built.Density)
	return nil
}

// writeConstituentTable prints the mixture components in the layout the
// opacity literature uses: material, volume fraction, mass fraction.
func writeConstituentTable(w io.Writer, rows []recipe.Row) {
	width := 16
	for _, r := range rows {
		if len(r.Material) > width {
			width = len(r.Material)
		}
	}

	fmt.Fprintf(w, "%-*s| volume fractions | mass fractions |\n", width+2, "| material")
	fmt.Fprintf(w, "|%s|%s|%s|\n",
		strings.Repeat("-", width+1),
		strings.Repeat("-", 18),
		strings.Repeat("-", 16))
	for _, r := range rows {
		fmt.Fprintf(w, "| %-*s%-19s%-17s|\n",
			width, r.Material,
			fmt.Sprintf("| %.4g", r.VolumeFraction),
			fmt.Sprintf("| %.4g", r.MassFraction))
	}
}
