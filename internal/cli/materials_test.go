package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drennan/optmix/internal/testutil"
)

func TestMaterialsList(t *testing.T) {
	out, _, err := execute(t, "materials")
	require.NoError(t, err)

	g := testutil.Golden(t)
	g.Assert(t, "materials_list", []byte(out))
}

func TestMaterialsJSON(t *testing.T) {
	out, _, err := execute(t, "materials", "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []MaterialInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	require.Len(t, resp.Data, 4)

	// Sorted by key.
	assert.Equal(t, "astrosilicates", resp.Data[0].Key)
	assert.Equal(t, "water-ice", resp.Data[3].Key)

	for _, m := range resp.Data {
		assert.Greater(t, m.Density, 0.0)
		assert.Less(t, m.Lmin, m.Lmax)
		assert.Greater(t, m.Points, 0)
	}
}
