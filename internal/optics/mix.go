package optics

import (
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Mixing rules supported by Mixture. Rule names are matched
// case-insensitively.
const (
	RuleBruggeman      = "Bruggeman"
	RuleMaxwellGarnett = "Maxwell-Garnett"
)

// Bruggeman solver parameters. The solve starts from the same initial guess
// the reference effective-medium literature uses, eps = 0.5 + 0.5i.
const (
	newtonStart   = complex(0.5, 0.5)
	newtonTol     = 1e-12
	newtonMaxIter = 100
)

// Constituent is one component of an effective-medium mixture.
type Constituent struct {
	// Name identifies the material (for diagnostics and tables).
	Name string

	// Record holds the material's optical constants.
	Record *Record

	// VolumeFraction is the component's share of the mixed volume.
	// All fractions of a mixture sum to one.
	VolumeFraction float64
}

// Mixture combines the optical constants of several constituents using an
// effective-medium approximation.
//
// For the Maxwell-Garnett rule the first constituent is the host matrix and
// the remaining ones are inclusions.
type Mixture struct {
	rule         string
	constituents []Constituent
}

// NewMixture creates a mixture with the given rule and constituents.
//
// Fails with an UNSUPPORTED_RULE error for unknown rules and a BAD_RECORD
// error when a constituent record is invalid or fractions do not sum to one.
func NewMixture(rule string, constituents []Constituent) (*Mixture, error) {
	canonical, err := CanonicalRule(rule)
	if err != nil {
		return nil, err
	}
	if len(constituents) == 0 {
		return nil, NewBadRecordError("mixture needs at least one constituent")
	}

	total := 0.0
	for _, c := range constituents {
		if c.Record == nil {
			return nil, NewDataUnavailableError(c.Name, nil)
		}
		if err := c.Record.Validate(); err != nil {
			return nil, err
		}
		if c.VolumeFraction <= 0 {
			return nil, NewBadRecordError(fmt.Sprintf("constituent %q has non-positive volume fraction %g", c.Name, c.VolumeFraction))
		}
		total += c.VolumeFraction
	}
	if total < 1-1e-6 || total > 1+1e-6 {
		return nil, NewBadRecordError(fmt.Sprintf("volume fractions sum to %g, want 1", total))
	}

	return &Mixture{rule: canonical, constituents: constituents}, nil
}

// CanonicalRule maps a case-insensitive rule name to its canonical spelling.
// Unknown names fail with an UNSUPPORTED_RULE error.
func CanonicalRule(rule string) (string, error) {
	switch strings.ToLower(rule) {
	case strings.ToLower(RuleBruggeman):
		return RuleBruggeman, nil
	case strings.ToLower(RuleMaxwellGarnett):
		return RuleMaxwellGarnett, nil
	default:
		return "", NewUnsupportedRuleError(rule)
	}
}

// Rule returns the canonical name of the mixing rule.
func (m *Mixture) Rule() string {
	return m.rule
}

// Constituents returns the mixture components.
func (m *Mixture) Constituents() []Constituent {
	return m.constituents
}

// NK returns the mixed optical constants at wavelength lam (cm).
//
// Each constituent's dielectric function eps = (n + ik)^2 is evaluated at
// lam, the rule-specific effective eps is computed, and the result is
// converted back to (n, k).
func (m *Mixture) NK(lam float64) (n, k float64, err error) {
	eps := make([]complex128, len(m.constituents))
	fv := make([]float64, len(m.constituents))
	for i, c := range m.constituents {
		cn, ck, err := c.Record.NK(lam)
		if err != nil {
			return 0, 0, err
		}
		e := complex(cn, ck)
		eps[i] = e * e
		fv[i] = c.VolumeFraction
	}

	var mean complex128
	switch m.rule {
	case RuleBruggeman:
		mean, err = bruggeman(eps, fv)
		if err != nil {
			return 0, 0, err
		}
	case RuleMaxwellGarnett:
		mean = maxwellGarnett(eps, fv)
	}

	root := cmplx.Sqrt(mean)
	return real(root), imag(root), nil
}

// Record samples the mixed optical constants on a 200-point logarithmic
// wavelength grid spanning the overlap of all constituent tables.
func (m *Mixture) Record() (*Record, error) {
	return m.RecordN(200)
}

// RecordN is Record with an explicit grid size.
func (m *Mixture) RecordN(points int) (*Record, error) {
	if points < 2 {
		return nil, NewBadRecordError(fmt.Sprintf("grid needs at least 2 points, got %d", points))
	}

	lmin := m.constituents[0].Record.Lmin()
	lmax := m.constituents[0].Record.Lmax()
	for _, c := range m.constituents[1:] {
		lmin = math.Max(lmin, c.Record.Lmin())
		lmax = math.Min(lmax, c.Record.Lmax())
	}
	if lmin >= lmax {
		return nil, NewBadRecordError(fmt.Sprintf("constituent wavelength ranges do not overlap (lmin=%g lmax=%g)", lmin, lmax))
	}

	rec := &Record{
		L: floats.LogSpan(make([]float64, points), lmin, lmax),
		N: make([]float64, points),
		K: make([]float64, points),
	}
	// LogSpan goes through exp(log(x)) and can land the endpoints one ulp
	// outside [lmin, lmax], which NK rejects as out of range.
	rec.L[0] = lmin
	rec.L[points-1] = lmax
	for i, lam := range rec.L {
		n, k, err := m.NK(lam)
		if err != nil {
			return nil, err
		}
		rec.N[i] = n
		rec.K[i] = k
	}
	return rec, nil
}

// bruggeman solves the symmetric Bruggeman relation
//
//	sum_i f_i * (eps_i - eps) / (eps_i + 2*eps) = 0
//
// for the effective eps with a complex Newton iteration.
func bruggeman(eps []complex128, fv []float64) (complex128, error) {
	x := newtonStart
	for iter := 0; iter < newtonMaxIter; iter++ {
		var f, df complex128
		for i, e := range eps {
			w := complex(fv[i], 0)
			d := e + 2*x
			f += w * (e - x) / d
			// d/dx [(e-x)/(e+2x)] = -3e / (e+2x)^2
			df += w * (-3 * e) / (d * d)
		}
		step := f / df
		x -= step
		if cmplx.Abs(step) <= newtonTol*cmplx.Abs(x) {
			return x, nil
		}
	}
	return 0, &Error{
		Code:    ErrCodeNoConvergence,
		Message: fmt.Sprintf("Bruggeman iteration did not converge in %d steps", newtonMaxIter),
	}
}

// maxwellGarnett applies the Maxwell-Garnett relation in the Bohren &
// Huffman form. eps[0] is the host matrix, the rest are inclusions.
func maxwellGarnett(eps []complex128, fv []float64) complex128 {
	em := eps[0]
	var f float64
	var num, den complex128
	for i := 1; i < len(eps); i++ {
		w := complex(fv[i], 0)
		beta := 3 * em / (eps[i] + 2*em)
		num += w * beta * eps[i]
		den += w * beta
		f += fv[i]
	}
	rest := complex(1-f, 0)
	return (rest*em + num) / (rest + den)
}
