package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRegionsMissingFileUsesBuiltins(t *testing.T) {
	tbl, err := LoadRegions(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	r, ok := tbl.Get("oakes")
	require.True(t, ok)
	assert.InDelta(t, 36.9894, r.Lat, 0.001)
}

func TestLoadRegionsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
regions:
  - name: test-park
    lat: 35.0
    lng: 139.0
  - name: oakes
    lat: 1.0
    lng: 2.0
`), 0o644))

	tbl, err := LoadRegions(path)
	require.NoError(t, err)

	r, ok := tbl.Get("test-park")
	require.True(t, ok)
	assert.Equal(t, 35.0, r.Lat)
	assert.Equal(t, 139.0, r.Lng)

	// File entries override builtins of the same name.
	oakes, _ := tbl.Get("oakes")
	assert.Equal(t, 1.0, oakes.Lat)

	_, ok = tbl.Get("unknown")
	assert.False(t, ok)
}

func TestLoadRegionsRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("regions: [not: {valid"), 0o644))
	_, err := LoadRegions(path)
	assert.Error(t, err)
}

func TestLoadRegionsRejectsEmptyName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
regions:
  - name: ""
    lat: 1.0
    lng: 2.0
`), 0o644))
	_, err := LoadRegions(path)
	assert.Error(t, err)
}
