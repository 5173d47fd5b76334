package cli

import (
	"github.com/spf13/cobra"

	"github.com/drennan/optmix/internal/optics"
	"github.com/drennan/optmix/internal/recipe"
)

// mixFlags are the flags shared by every command that needs a mixture:
// either the built-in DSHARP recipe with its two knobs, or a recipe file.
type mixFlags struct {
	Rule       string
	IceMass    float64
	RecipePath string
}

func (mf *mixFlags) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&mf.Rule, "rule", optics.RuleBruggeman, "effective-medium rule (Bruggeman|Maxwell-Garnett)")
	cmd.Flags().Float64Var(&mf.IceMass, "fm-ice", recipe.DSHARPIceMass, "water-ice mass fraction of the built-in recipe")
	cmd.Flags().StringVar(&mf.RecipePath, "recipe", "", "YAML recipe file (overrides the built-in DSHARP recipe)")
}

// resolve returns the recipe the flags describe. A recipe file carries its
// own rule and fractions; otherwise the built-in DSHARP composition is
// parameterized by --rule and --fm-ice.
func (mf *mixFlags) resolve() (recipe.Recipe, error) {
	if mf.RecipePath != "" {
		return recipe.Load(mf.RecipePath)
	}
	if err := recipe.ValidateIceMass(mf.IceMass); err != nil {
		return recipe.Recipe{}, err
	}
	return recipe.DSHARP(mf.IceMass, mf.Rule), nil
}
