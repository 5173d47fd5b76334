// Package optics implements wavelength-dependent optical constants and
// effective-medium mixing of multiple materials.
//
// The central type is Record, a table of (wavelength, n, k) samples at
// normal incidence. Records for several constituent materials are combined
// by a Mixture using an effective-medium approximation (Bruggeman or
// Maxwell-Garnett), which yields a new Record for the composite material.
package optics
