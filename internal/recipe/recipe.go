package recipe

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/drennan/optmix/internal/materials"
	"github.com/drennan/optmix/internal/optics"
)

// fractionTol is the allowed deviation of the mass-fraction sum from one.
const fractionTol = 1e-6

// Component is one constituent of a recipe, identified by material key.
type Component struct {
	Material     string  `yaml:"material"`
	MassFraction float64 `yaml:"mass_fraction"`
}

// Recipe describes a dust mixture: its components by mass and the mixing
// rule. For the Maxwell-Garnett rule the first component is the host matrix.
type Recipe struct {
	Name       string      `yaml:"name"`
	Rule       string      `yaml:"rule"`
	IceMass    float64     `yaml:"-"` // set for the built-in DSHARP recipe only
	Components []Component `yaml:"components"`
}

// DSHARP mass fractions of the non-ice components, normalized to one.
var dsharpRestMass = [3]float64{0.41127, 0.09292, 0.49581}

// DSHARPIceMass is the default water-ice mass fraction, from Rosetta
// measurements.
const DSHARPIceMass = 0.2

// DSHARP returns the built-in DSHARP composition with the given water-ice
// mass fraction: water ice, astronomical silicates, troilite and refractory
// organics, mixed with the given rule.
func DSHARP(fmIce float64, rule string) Recipe {
	rest := 1 - fmIce
	return Recipe{
		Name:    "dsharp",
		Rule:    rule,
		IceMass: fmIce,
		Components: []Component{
			{Material: materials.KeyWaterIce, MassFraction: fmIce},
			{Material: materials.KeyAstrosilicates, MassFraction: rest * dsharpRestMass[0]},
			{Material: materials.KeyTroilite, MassFraction: rest * dsharpRestMass[1]},
			{Material: materials.KeyOrganics, MassFraction: rest * dsharpRestMass[2]},
		},
	}
}

// Load reads a recipe from a YAML file and validates it structurally.
func Load(path string) (Recipe, error) {
	var r Recipe
	raw, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("reading recipe: %w", err)
	}
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return r, fmt.Errorf("parsing recipe %s: %w", path, err)
	}
	if errs := r.Validate(); len(errs) > 0 {
		return r, fmt.Errorf("invalid recipe %s: %s", path, errs[0].Error())
	}
	return r, nil
}

// ValidationError describes one structural problem in a recipe.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Validation error codes.
const (
	ErrEmptyComponents = "EMPTY_COMPONENTS"
	ErrBadFraction     = "BAD_FRACTION"
	ErrFractionSum     = "FRACTION_SUM"
	ErrUnknownRule     = "UNKNOWN_RULE"
	ErrBadIceMass      = "BAD_ICE_MASS"
)

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks the recipe structure without touching the material
// catalog: rule name, component presence, and mass-fraction sanity.
// Material keys are resolved later, at build time.
func (r Recipe) Validate() []ValidationError {
	var errs []ValidationError

	if _, err := optics.CanonicalRule(r.Rule); err != nil {
		errs = append(errs, ValidationError{
			Field:   "rule",
			Code:    ErrUnknownRule,
			Message: fmt.Sprintf("unknown mixing rule %q", r.Rule),
		})
	}

	if len(r.Components) == 0 {
		errs = append(errs, ValidationError{
			Field:   "components",
			Code:    ErrEmptyComponents,
			Message: "recipe has no components",
		})
		return errs
	}

	sum := 0.0
	for i, c := range r.Components {
		field := fmt.Sprintf("components[%d]", i)
		if c.Material == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".material",
				Code:    ErrBadFraction,
				Message: "material key is empty",
			})
		}
		if c.MassFraction <= 0 || math.IsNaN(c.MassFraction) || math.IsInf(c.MassFraction, 0) {
			errs = append(errs, ValidationError{
				Field:   field + ".mass_fraction",
				Code:    ErrBadFraction,
				Message: fmt.Sprintf("mass fraction %g is not a positive finite number", c.MassFraction),
			})
			continue
		}
		sum += c.MassFraction
	}

	if math.Abs(sum-1) > fractionTol {
		errs = append(errs, ValidationError{
			Field:   "components",
			Code:    ErrFractionSum,
			Message: fmt.Sprintf("mass fractions sum to %g, want 1", sum),
		})
	}

	return errs
}
