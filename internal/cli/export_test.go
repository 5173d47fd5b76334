package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLNK(t *testing.T) {
	out, _, err := execute(t, "export")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 202)

	assert.Equal(t, "# dsharp mix (Bruggeman), bulk density 1.6753 g/cc", lines[0])
	assert.Equal(t, "# columns: lambda [micron]  n  k", lines[1])

	// Endpoints of the sampling grid, in micron.
	assert.True(t, strings.HasPrefix(lines[2], "1.000000e-01"))
	assert.True(t, strings.HasPrefix(lines[201], "1.000000e+05"))

	for _, line := range lines[2:] {
		assert.Len(t, strings.Fields(line), 3)
	}
}

func TestExportPoints(t *testing.T) {
	out, _, err := execute(t, "export", "--points", "50")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 52)
}

func TestExportJSON(t *testing.T) {
	out, _, err := execute(t, "export", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   ExportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "dsharp", resp.Data.Recipe)
	assert.InDelta(t, 1.6753, resp.Data.Density, 1e-4)

	require.Len(t, resp.Data.L, 200)
	require.Len(t, resp.Data.N, 200)
	require.Len(t, resp.Data.K, 200)

	assert.InDelta(t, 1e-5, resp.Data.L[0], 1e-12)
	assert.InDelta(t, 1e1, resp.Data.L[199], 1e-8)
	assert.True(t, sort.Float64sAreSorted(resp.Data.L))

	for i := range resp.Data.N {
		assert.Greater(t, resp.Data.N[i], 0.0)
		assert.Greater(t, resp.Data.K[i], 0.0)
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mix.lnk")

	out, _, err := execute(t, "export", "--output", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 200 samples to "+path)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# dsharp mix"))
}
