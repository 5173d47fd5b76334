package figure

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drennan/optmix/internal/optics"
)

func sampleRecord() *optics.Record {
	return &optics.Record{
		L: []float64{1e-4, 1e-3, 1e-2},
		N: []float64{1.5, 1.6, 1.7},
		K: []float64{0.01, 0.02, 0.03},
	}
}

func TestRenderFixedXBounds(t *testing.T) {
	// The display window is pinned regardless of the data extent.
	fig, err := Render(sampleRecord())
	require.NoError(t, err)

	min, max := fig.XBounds()
	assert.Equal(t, 1e-5, min)
	assert.Equal(t, 1e1, max)

	wide := &optics.Record{
		L: []float64{1e-7, 1e-3, 1e3},
		N: []float64{1.5, 1.6, 1.7},
		K: []float64{0.01, 0.02, 0.03},
	}
	fig, err = Render(wide)
	require.NoError(t, err)
	min, max = fig.XBounds()
	assert.Equal(t, 1e-5, min)
	assert.Equal(t, 1e1, max)
}

func TestRenderRejectsMismatchedLengths(t *testing.T) {
	rec := sampleRecord()
	rec.N = rec.N[:2]

	_, err := Render(rec)
	require.Error(t, err)
	assert.True(t, optics.IsBadRecord(err))
}

func TestRenderRejectsNonPositiveK(t *testing.T) {
	rec := sampleRecord()
	rec.K[0] = 0

	_, err := Render(rec)
	require.Error(t, err)
	assert.True(t, optics.IsBadRecord(err))
}

func TestSavePDF(t *testing.T) {
	fig, err := Render(sampleRecord())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fig2_mix.pdf")
	require.NoError(t, fig.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestSaveSVG(t *testing.T) {
	fig, err := Render(sampleRecord())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fig2_mix.svg")
	require.NoError(t, fig.Save(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<svg")
}

func TestSaveMissingDirectory(t *testing.T) {
	// The output directory is never created implicitly.
	fig, err := Render(sampleRecord())
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "figures")
	err = fig.Save(filepath.Join(dir, "fig2_mix.pdf"))
	require.Error(t, err)
	assert.True(t, IsPathNotFound(err))

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSaveUnsupportedExtension(t *testing.T) {
	fig, err := Render(sampleRecord())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "fig2_mix.png")
	err = fig.Save(path)
	require.Error(t, err)

	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ErrCodeUnsupportedFormat, fe.Code)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriteToDeterministic(t *testing.T) {
	// Identical input must render to identical bytes.
	first, err := Render(sampleRecord())
	require.NoError(t, err)
	second, err := Render(sampleRecord())
	require.NoError(t, err)

	var a, b bytes.Buffer
	require.NoError(t, first.WriteTo(&a, "svg"))
	require.NoError(t, second.WriteTo(&b, "svg"))

	assert.Greater(t, a.Len(), 0)
	assert.Equal(t, a.Bytes(), b.Bytes())
}
