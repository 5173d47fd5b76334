package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/materials"
	"github.com/drennan/optmix/internal/optics"
	"github.com/drennan/optmix/internal/recipe"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	mixFlags
	Output string
	Points int
}

// ExportResult is the JSON payload of the export command.
type ExportResult struct {
	Recipe  string    `json:"recipe"`
	Rule    string    `json:"rule"`
	Density float64   `json:"density"`
	L       []float64 `json:"l"` // wavelength [cm]
	N       []float64 `json:"n"`
	K       []float64 `json:"k"`
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the mixed optical constants as an lnk table",
		Long: `Sample the mixture and write the mixed optical constants.

Text output is an lnk table (wavelength in micron, n, k) suitable as
input for opacity codes; JSON output carries the wavelength grid in cm.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&opts.Points, "points", 200, "number of wavelength samples")

	return cmd
}

func runExport(opts *ExportOptions, cmd *cobra.Command) error {
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
	mixed, err := built.Mixture.RecordN(opts.Points)
	if err != nil {
		return failCommand(formatter, err)
	}

	out := io.Writer(formatter.Writer)
	if opts.Output != "" {
		file, err := os.Create(opts.Output)
		if err != nil {
			return failCommand(formatter, fmt.Errorf("creating output: %w", err))
		}
		defer file.Close()
		out = file
	}

	if formatter.Format == "json" {
		payload := ExportResult{
			Recipe:  rec.Name,
			Rule:    built.Mixture.Rule(),
			Density: built.Density,
			L:       mixed.L,
			N:       mixed.N,
			K:       mixed.K,
		}
		jsonFormatter := &OutputFormatter{Format: "json", Writer: out}
		return jsonFormatter.Success(payload)
	}

	writeLNK(out, rec.Name, built.Mixture.Rule(), built.Density, mixed)
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "Wrote %d samples to %s\n", mixed.Len(), opts.Output)
	}
	return nil
}

// writeLNK writes the record in the lnk convention: three columns, with the
// wavelength converted back from cm to micron.
func writeLNK(w io.Writer, name, rule string, density float64, rec *optics.Record) {
	fmt.Fprintf(w, "# %s mix (%s), bulk density %.4f g/cc\n", name, rule, density)
	fmt.Fprintf(w, "# columns: lambda [micron]  n  k\n")
	for i := range rec.L {
		fmt.Fprintf(w, "%.6e  %.6e  %.6e\n", rec.L[i]*1e4, rec.N[i], rec.K[i])
	}
}
