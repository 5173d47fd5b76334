package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	LogDB string
	Limit int
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "runs",
		Short:         "List recorded figure runs from a provenance log",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRuns(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.LogDB, "log", "", "SQLite provenance log (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list (0 = all)")
	_ = cmd.MarkFlagRequired("log")

	return cmd
}

func runRuns(opts *RunsOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(opts.LogDB); err != nil {
		_ = formatter.Error(errCodeGeneric, fmt.Sprintf("provenance log not found: %s", opts.LogDB), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("provenance log not found: %s", opts.LogDB))
	}

	st, err := store.Open(opts.LogDB)
	if err != nil {
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "opening provenance log", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		_ = formatter.Error(errCodeGeneric, err.Error(), nil)
		return WrapExitError(ExitFailure, "listing runs", err)
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(formatter.Writer, "%s  %s  %-10s %-15s rho=%.4f g/cc  %s\n",
			r.ID[:8],
			r.CreatedAt.UTC().Format(time.RFC3339),
			r.Recipe,
			r.Rule,
			r.Density,
			r.OutputPath)
	}
	return nil
}
