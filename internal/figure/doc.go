// Package figure renders the mixed optical constants as a print-ready
// dual-axis chart: n against wavelength on a semi-log panel and k on a
// secondary logarithmic axis, sharing the wavelength axis.
//
// Rendering is deterministic: the same record always produces the same
// drawing. The canvas is passed explicitly; there is no ambient
// current-figure state.
package figure
