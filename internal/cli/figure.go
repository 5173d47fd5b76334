package cli

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/figure"
	"github.com/drennan/optmix/internal/materials"
	"github.com/drennan/optmix/internal/recipe"
	"github.com/drennan/optmix/internal/store"
)

// DefaultFigurePath is where the mixed optical-constants figure is written
// when no --output flag is given. The directory is not created implicitly.
const DefaultFigurePath = "figures/fig2_mix.pdf"

// FigureOptions holds flags for the figure command.
type FigureOptions struct {
	*RootOptions
	mixFlags
	Output string
	LogDB  string
}

// FigureResult is the JSON payload of a successful figure run.
type FigureResult struct {
	Recipe  string  `json:"recipe"`
	Rule    string  `json:"rule"`
	Density float64 `json:"density"`
	Points  int     `json:"points"`
	Output  string  `json:"output"`
	RunID   string  `json:"run_id,omitempty"`
}

// NewFigureCommand creates the figure command.
func NewFigureCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &FigureOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "figure",
		Short: "Render the mixed n/k curves and save them as a vector figure",
		Long: `Render the mixed optical constants as a dual-axis chart.

The mixture is sampled over the wavelength overlap of its constituents,
the bulk density is printed, and the chart (n on a linear axis, k on a
secondary logarithmic axis, wavelength logarithmic) is saved as vector
graphics. The output directory must already exist.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFigure(opts, cmd)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultFigurePath, "output file (.pdf or .svg)")
	cmd.Flags().StringVar(&opts.LogDB, "log", "", "SQLite provenance log to record this run in")

	return cmd
}

func runFigure(opts *FigureOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
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

	// An unknown rule fails here, before any output file exists.
	built, err := recipe.Build(rec, cat)
	if err != nil {
		return failCommand(formatter, err)
	}
	formatter.VerboseLog("mixing %d materials with the %s rule", len(built.Rows), built.Mixture.Rule())

	mixed, err := built.Mixture.Record()
	if err != nil {
		return failCommand(formatter, err)
	}
	formatter.VerboseLog("sampled %d wavelengths in [%g, %g] cm", mixed.Len(), mixed.Lmin(), mixed.Lmax())

	if formatter.Format == "text" {
		fmt.Fprintf(formatter.Writer, "Average material density = %.4f g/cc\n", built.Density)
	}

	fig, err := figure.Render(mixed)
	if err != nil {
		return failCommand(formatter, err)
	}
	if err := fig.Save(opts.Output); err != nil {
		return failCommand(formatter, err)
	}

	result := FigureResult{
		Recipe:  rec.Name,
		Rule:    built.Mixture.Rule(),
		Density: built.Density,
		Points:  mixed.Len(),
		Output:  opts.Output,
	}

	if opts.LogDB != "" {
		runID, err := logRun(cmd.Context(), opts.LogDB, rec, built, mixed.Len(), opts.Output)
		if err != nil {
			_ = formatter.Error(errCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitFailure, "recording run", err)
		}
		result.RunID = runID
		formatter.VerboseLog("recorded run %s in %s", runID, opts.LogDB)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintf(formatter.Writer, "Wrote %s\n", opts.Output)
	return nil
}

// logRun records a successful render in the provenance log, keyed by the
// SHA-256 of the written file.
func logRun(ctx context.Context, dbPath string, rec recipe.Recipe, built *recipe.BuildResult, points int, output string) (string, error) {
	raw, err := os.ReadFile(output)
	if err != nil {
		return "", fmt.Errorf("hashing output: %w", err)
	}
	sum := sha256.Sum256(raw)

	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	run, err := st.RecordRun(ctx, store.Run{
		Recipe:       rec.Name,
		Rule:         built.Mixture.Rule(),
		IceMass:      rec.IceMass,
		Density:      built.Density,
		Points:       points,
		OutputPath:   output,
		OutputSHA256: hex.EncodeToString(sum[:]),
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}
