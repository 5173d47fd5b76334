// Package recipe defines mixture recipes: which materials to mix, their
// mass fractions and the effective-medium rule to apply.
//
// Recipes are either the built-in DSHARP composition or user-supplied YAML
// documents. A recipe is validated structurally, then built against the
// material catalog into an optics.Mixture plus the derived bulk density.
package recipe
