package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/materials"
)

// MaterialInfo is the JSON payload entry of the materials command.
type MaterialInfo struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Density float64 `json:"density"`
	Lmin    float64 `json:"lmin"`
	Lmax    float64 `json:"lmax"`
	Points  int     `json:"points"`
}

// NewMaterialsCommand creates the materials command.
func NewMaterialsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "materials",
		Short: "List the embedded optical-constant datasets",
		Long: `List every embedded material dataset with its bulk density and the
wavelength range its optical constants cover.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMaterials(rootOpts, cmd)
		},
	}

	return cmd
}

func runMaterials(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cat, err := materials.Default()
	if err != nil {
		return failCommand(formatter, err)
	}

	all := cat.All()
	if formatter.Format == "json" {
		infos := make([]MaterialInfo, len(all))
		for i, m := range all {
			infos[i] = MaterialInfo{
				Key:     m.Key,
				Name:    m.Name,
				Density: m.Density,
				Lmin:    m.Record.Lmin(),
				Lmax:    m.Record.Lmax(),
				Points:  m.Record.Len(),
			}
		}
		return formatter.Success(infos)
	}

	for _, m := range all {
		fmt.Fprintf(formatter.Writer, "%-16s %-38s %5.2f g/cc  [%.3g, %.3g] cm  %d pts\n",
			m.Key, m.Name, m.Density, m.Record.Lmin(), m.Record.Lmax(), m.Record.Len())
	}
	return nil
}
