package recipe

import (
	"fmt"
	"math"

	"github.com/drennan/optmix/internal/materials"
	"github.com/drennan/optmix/internal/optics"
)

// Row is one line of the constituent table: a material with its derived
// volume fraction and its recipe mass fraction.
type Row struct {
	Material       string  `json:"material"`
	VolumeFraction float64 `json:"volume_fraction"`
	MassFraction   float64 `json:"mass_fraction"`
}

// BuildResult is the outcome of resolving a recipe against the material
// catalog.
type BuildResult struct {
	// Mixture is the effective-medium mixture, ready for sampling.
	Mixture *optics.Mixture

	// Density is the bulk density of the mixed material in g/cm^3,
	// rho_s = 1 / sum_i(f_m,i / rho_i).
	Density float64

	// Rows lists the constituents in recipe order with both fraction kinds.
	Rows []Row
}

// Build resolves the recipe's material keys against the catalog, converts
// mass fractions to volume fractions via the solid densities, and
// constructs the mixture.
//
// Unknown material keys fail with a DATA_UNAVAILABLE error; an unknown rule
// fails with UNSUPPORTED_RULE before any materials are resolved.
func Build(r Recipe, cat *materials.Catalog) (*BuildResult, error) {
	if _, err := optics.CanonicalRule(r.Rule); err != nil {
		return nil, err
	}
	if errs := r.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid recipe: %s", errs[0].Error())
	}

	mats := make([]*materials.Material, len(r.Components))
	for i, c := range r.Components {
		m, err := cat.Get(c.Material)
		if err != nil {
			return nil, err
		}
		mats[i] = m
	}

	// Bulk density of the composite, then mass -> volume conversion.
	inv := 0.0
	for i, c := range r.Components {
		inv += c.MassFraction / mats[i].Density
	}
	density := 1.0 / inv

	fv := make([]float64, len(r.Components))
	total := 0.0
	for i, c := range r.Components {
		fv[i] = density / mats[i].Density * c.MassFraction
		total += fv[i]
	}
	for i := range fv {
		fv[i] /= total
	}

	constituents := make([]optics.Constituent, len(r.Components))
	rows := make([]Row, len(r.Components))
	for i, c := range r.Components {
		constituents[i] = optics.Constituent{
			Name:           mats[i].Name,
			Record:         mats[i].Record,
			VolumeFraction: fv[i],
		}
		rows[i] = Row{
			Material:       mats[i].Name,
			VolumeFraction: fv[i],
			MassFraction:   c.MassFraction,
		}
	}

	mix, err := optics.NewMixture(r.Rule, constituents)
	if err != nil {
		return nil, err
	}

	return &BuildResult{Mixture: mix, Density: density, Rows: rows}, nil
}

// ValidateIceMass checks the water-ice mass fraction knob of the built-in
// DSHARP recipe. The fraction must leave room for the other components.
func ValidateIceMass(fm float64) error {
	if math.IsNaN(fm) || fm <= 0 || fm >= 1 {
		return ValidationError{
			Field:   "fm_ice",
			Code:    ErrBadIceMass,
			Message: fmt.Sprintf("ice mass fraction %g outside (0, 1)", fm),
		}
	}
	return nil
}
