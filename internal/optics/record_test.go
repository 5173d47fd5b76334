package optics

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord() *Record {
	return &Record{
		L: []float64{1e-4, 1e-3, 1e-2},
		N: []float64{1.5, 1.6, 1.7},
		K: []float64{0.01, 0.02, 0.03},
	}
}

func TestRecordValidateOK(t *testing.T) {
	require.NoError(t, validRecord().Validate())
}

func TestRecordValidateMismatchedLengths(t *testing.T) {
	rec := validRecord()
	rec.K = rec.K[:2]

	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
	assert.Contains(t, err.Error(), "mismatched lengths")
}

func TestRecordValidateEmpty(t *testing.T) {
	err := (&Record{}).Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
}

func TestRecordValidateNonPositiveWavelength(t *testing.T) {
	rec := validRecord()
	rec.L[0] = 0

	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
}

func TestRecordValidateNonFinite(t *testing.T) {
	rec := validRecord()
	rec.N[1] = math.NaN()

	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
}

func TestRecordValidateNonPositiveK(t *testing.T) {
	rec := validRecord()
	rec.K[2] = 0

	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
}

func TestRecordValidateNotAscending(t *testing.T) {
	rec := validRecord()
	rec.L[2] = rec.L[1]

	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, IsBadRecord(err))
	assert.Contains(t, err.Error(), "ascending")
}

func TestRecordNKAtSamples(t *testing.T) {
	rec := validRecord()

	n, k, err := rec.NK(1e-4)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, n, 1e-12)
	assert.InDelta(t, 0.01, k, 1e-12)

	n, k, err = rec.NK(1e-2)
	require.NoError(t, err)
	assert.InDelta(t, 1.7, n, 1e-12)
	assert.InDelta(t, 0.03, k, 1e-12)
}

func TestRecordNKLogInterpolation(t *testing.T) {
	rec := &Record{
		L: []float64{1e-4, 1e-2},
		N: []float64{1, 10},
		K: []float64{1e-3, 1e-1},
	}

	// Halfway in log space between the two samples.
	n, k, err := rec.NK(1e-3)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(10), n, 1e-9)
	assert.InDelta(t, 1e-2, k, 1e-9)
}

func TestRecordNKOutOfRange(t *testing.T) {
	rec := validRecord()

	_, _, err := rec.NK(1)
	require.Error(t, err)
	var oe *Error
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, ErrCodeOutOfRange, oe.Code)
}

func TestRecordNKNegativeNFallsBackToLinear(t *testing.T) {
	// Tables with negative n (metallic/UV regimes) cannot be interpolated in
	// log space; n falls back to linear while k stays logarithmic.
	rec := &Record{
		L: []float64{1, 2},
		N: []float64{-1, -3},
		K: []float64{1e-2, 1e-2},
	}

	n, k, err := rec.NK(1.5)
	require.NoError(t, err)
	assert.InDelta(t, -2, n, 1e-12)
	assert.InDelta(t, 1e-2, k, 1e-9)
}
