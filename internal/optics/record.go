package optics

import (
	"fmt"
	"math"
	"sort"
)

// Record holds normal-incidence optical constants sampled over wavelength.
//
// The three slices are parallel: L[i] is a wavelength in cm, N[i] the real
// refractive index and K[i] the absorptive index at that wavelength.
// Wavelengths must be strictly ascending for interpolation.
type Record struct {
	L []float64 // wavelength [cm]
	N []float64 // real refractive index
	K []float64 // imaginary (absorptive) index
}

// Len returns the number of samples.
func (r *Record) Len() int {
	return len(r.L)
}

// Lmin returns the shortest covered wavelength.
func (r *Record) Lmin() float64 {
	return r.L[0]
}

// Lmax returns the longest covered wavelength.
func (r *Record) Lmax() float64 {
	return r.L[len(r.L)-1]
}

// Validate checks the record invariants:
//
//   - L, N and K have equal, nonzero length
//   - wavelengths are strictly positive, finite and ascending
//   - n values are finite
//   - k values are strictly positive and finite
//
// Returns a BAD_RECORD error describing the first violation found.
func (r *Record) Validate() error {
	if len(r.L) == 0 {
		return NewBadRecordError("record has no samples")
	}
	if len(r.L) != len(r.N) || len(r.L) != len(r.K) {
		return NewBadRecordError(fmt.Sprintf(
			"mismatched lengths: len(l)=%d len(n)=%d len(k)=%d",
			len(r.L), len(r.N), len(r.K)))
	}
	for i, l := range r.L {
		if math.IsNaN(l) || math.IsInf(l, 0) || l <= 0 {
			return NewBadRecordError(fmt.Sprintf("wavelength[%d] = %g is not a positive finite number", i, l))
		}
		if i > 0 && l <= r.L[i-1] {
			return NewBadRecordError(fmt.Sprintf("wavelengths not ascending at index %d (%g after %g)", i, l, r.L[i-1]))
		}
		if math.IsNaN(r.N[i]) || math.IsInf(r.N[i], 0) {
			return NewBadRecordError(fmt.Sprintf("n[%d] = %g is not finite", i, r.N[i]))
		}
		if math.IsNaN(r.K[i]) || math.IsInf(r.K[i], 0) || r.K[i] <= 0 {
			return NewBadRecordError(fmt.Sprintf("k[%d] = %g is not a positive finite number", i, r.K[i]))
		}
	}
	return nil
}

// hasNonPositiveN reports whether any tabulated n is zero or negative.
// Some published datasets (metallic and UV regimes) contain such values;
// they rule out log interpolation of n.
func (r *Record) hasNonPositiveN() bool {
	for _, n := range r.N {
		if n <= 0 {
			return true
		}
	}
	return false
}

// NK returns the optical constants interpolated at wavelength lam (cm).
//
// Interpolation is linear in log-log space. When the table contains
// non-positive n values and the locally interpolated n is negative, n falls
// back to linear interpolation while k stays logarithmic.
func (r *Record) NK(lam float64) (n, k float64, err error) {
	if lam < r.Lmin() || lam > r.Lmax() {
		return 0, 0, &Error{
			Code:    ErrCodeOutOfRange,
			Message: fmt.Sprintf("wavelength %g cm outside data range [%g, %g]", lam, r.Lmin(), r.Lmax()),
		}
	}

	logInterp := true
	if r.hasNonPositiveN() {
		if linterp(lam, r.L, r.N) < 0 {
			logInterp = false
		}
	}

	ll := math.Log10(lam)
	if logInterp {
		n = math.Pow(10, loglinterp(ll, r.L, r.N))
	} else {
		n = linterp(lam, r.L, r.N)
	}
	k = math.Pow(10, loglinterp(ll, r.L, r.K))
	return n, k, nil
}

// linterp linearly interpolates ys over xs at x. xs must be ascending and
// bracket x.
func linterp(x float64, xs, ys []float64) float64 {
	i := sort.SearchFloat64s(xs, x)
	if i < len(xs) && xs[i] == x {
		return ys[i]
	}
	// xs[i-1] < x < xs[i]
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return (1-t)*ys[i-1] + t*ys[i]
}

// loglinterp interpolates log10(ys) over log10(xs) at the already-logged
// abscissa lx and returns the logged ordinate.
func loglinterp(lx float64, xs, ys []float64) float64 {
	i := sort.Search(len(xs), func(j int) bool { return math.Log10(xs[j]) >= lx })
	if i < len(xs) && math.Log10(xs[i]) == lx {
		return math.Log10(ys[i])
	}
	x0, x1 := math.Log10(xs[i-1]), math.Log10(xs[i])
	y0, y1 := math.Log10(ys[i-1]), math.Log10(ys[i])
	t := (lx - x0) / (x1 - x0)
	return (1-t)*y0 + t*y1
}
