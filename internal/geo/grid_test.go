package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellForPoint(t *testing.T) {
	g := NewGrid(0.0001, 111_320)

	tests := []struct {
		name string
		p    orb.Point // {lng, lat}
		want Cell
	}{
		{"origin", orb.Point{0, 0}, Cell{0, 0}},
		{"inside first cell", orb.Point{0.00005, 0.00005}, Cell{0, 0}},
		{"next cell east", orb.Point{0.00015, 0.00005}, Cell{0, 1}},
		{"next cell north", orb.Point{0.00005, 0.00015}, Cell{1, 0}},
		{"negative floors down", orb.Point{-0.00005, -0.00005}, Cell{-1, -1}},
		{"exact boundary", orb.Point{0.0001, 0.0001}, Cell{1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.CellForPoint(tt.p))
		})
	}
}

func TestCellForPointIsStable(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	p := orb.Point{-122.06277128548504, 36.98949379578401}

	first := g.CellForPoint(p)
	for i := 0; i < 100; i++ {
		require.Equal(t, first, g.CellForPoint(p))
	}
}

func TestBoundsForCell(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	c := Cell{I: 3, J: -2}

	b := g.BoundsForCell(c)
	assert.InDelta(t, 0.0003, b.Min.Lat(), 1e-12)
	assert.InDelta(t, 0.0004, b.Max.Lat(), 1e-12)
	assert.InDelta(t, -0.0002, b.Min.Lon(), 1e-12)
	assert.InDelta(t, -0.0001, b.Max.Lon(), 1e-12)

	// Memoized result must be indistinguishable from recomputation.
	again := g.BoundsForCell(c)
	assert.Equal(t, b, again)

	fresh := NewGrid(0.0001, 111_320).BoundsForCell(c)
	assert.Equal(t, b, fresh)
}

func TestCenterOfCell(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	center := g.CenterOfCell(Cell{0, 0})
	assert.InDelta(t, 0.00005, center.Lat(), 1e-12)
	assert.InDelta(t, 0.00005, center.Lon(), 1e-12)
}

func TestCellsNear(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	p := orb.Point{0.00005, 0.00005} // cell (0,0)

	cells := g.CellsNear(p, 2)
	require.Len(t, cells, 25) // (2*2+1)^2

	seen := make(map[Cell]bool, len(cells))
	for _, c := range cells {
		require.False(t, seen[c], "duplicate cell %v", c)
		seen[c] = true
		assert.LessOrEqual(t, abs(c.I), 2)
		assert.LessOrEqual(t, abs(c.J), 2)
	}
	// Chebyshev square: corners included.
	assert.True(t, seen[Cell{2, 2}])
	assert.True(t, seen[Cell{-2, -2}])
}

func TestCellsNearZeroRadius(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	cells := g.CellsNear(orb.Point{0, 0}, 0)
	require.Len(t, cells, 1)
	assert.Equal(t, Cell{0, 0}, cells[0])
}

func TestCellKeyRoundTrip(t *testing.T) {
	for _, c := range []Cell{{0, 0}, {-5, 12}, {369894, -1220627}} {
		parsed, err := ParseCellKey(c.Key())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}
}

func TestParseCellKeyMalformed(t *testing.T) {
	for _, key := range []string{"", "12", "a,b", "1,2,3x"} {
		_, err := ParseCellKey(key)
		assert.Error(t, err, "key %q", key)
	}
}

func TestVisibilityRadiusMeters(t *testing.T) {
	g := NewGrid(0.0001, 111_320)
	assert.InDelta(t, 8*0.0001*111_320, g.VisibilityRadiusMeters(8), 1e-9)
}

func TestDistanceMeters(t *testing.T) {
	a := orb.Point{0, 0}
	b := orb.Point{0, 0.001} // ~111m north
	d := DistanceMeters(a, b)
	assert.InDelta(t, 111.0, d, 1.0)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
