package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// Cell identifies one unit of the game grid by its integer row/column.
// I is derived from latitude, J from longitude.
type Cell struct {
	I int
	J int
}

// Key returns the canonical "i,j" form used for cache directory and
// persistence addressing.
func (c Cell) Key() string {
	return fmt.Sprintf("%d,%d", c.I, c.J)
}

// ParseCellKey parses an "i,j" key back into a Cell.
func ParseCellKey(key string) (Cell, error) {
	parts := strings.SplitN(key, ",", 2)
	if len(parts) != 2 {
		return Cell{}, fmt.Errorf("malformed cell key %q", key)
	}
	i, err := strconv.Atoi(parts[0])
	if err != nil {
		return Cell{}, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	j, err := strconv.Atoi(parts[1])
	if err != nil {
		return Cell{}, fmt.Errorf("malformed cell key %q: %w", key, err)
	}
	return Cell{I: i, J: j}, nil
}

// Grid converts between continuous geographic positions and discrete cells.
// Cell width is fixed at construction. Bounds are memoized per cell; the
// memo is a pure performance cache and never changes a returned value.
type Grid struct {
	tileWidth       float64
	metersPerDegree float64

	mu     sync.Mutex
	bounds map[Cell]orb.Bound
}

func NewGrid(tileWidth, metersPerDegree float64) *Grid {
	return &Grid{
		tileWidth:       tileWidth,
		metersPerDegree: metersPerDegree,
		bounds:          make(map[Cell]orb.Bound),
	}
}

// TileWidth returns the cell width in degrees.
func (g *Grid) TileWidth() float64 { return g.tileWidth }

// CellForPoint maps a geographic point to the cell containing it.
// Pure floor division; the same point always maps to the same cell.
func (g *Grid) CellForPoint(p orb.Point) Cell {
	return Cell{
		I: int(math.Floor(p.Lat() / g.tileWidth)),
		J: int(math.Floor(p.Lon() / g.tileWidth)),
	}
}

// BoundsForCell returns the rectangular region covered by a cell:
// [i*w, (i+1)*w) in latitude by [j*w, (j+1)*w) in longitude.
func (g *Grid) BoundsForCell(c Cell) orb.Bound {
	g.mu.Lock()
	defer g.mu.Unlock()
	if b, ok := g.bounds[c]; ok {
		return b
	}
	b := orb.Bound{
		Min: orb.Point{float64(c.J) * g.tileWidth, float64(c.I) * g.tileWidth},
		Max: orb.Point{float64(c.J+1) * g.tileWidth, float64(c.I+1) * g.tileWidth},
	}
	g.bounds[c] = b
	return b
}

// CenterOfCell returns the canonical anchor point for a cell, used for all
// display and distance math.
func (g *Grid) CenterOfCell(c Cell) orb.Point {
	return g.BoundsForCell(c).Center()
}

// CellsNear returns every cell within radius of the cell containing p,
// measured per axis (a Chebyshev square, not a circle). The result has
// exactly (2*radius+1)^2 cells in row-major order.
func (g *Grid) CellsNear(p orb.Point, radius int) []Cell {
	origin := g.CellForPoint(p)
	cells := make([]Cell, 0, (2*radius+1)*(2*radius+1))
	for di := -radius; di <= radius; di++ {
		for dj := -radius; dj <= radius; dj++ {
			cells = append(cells, Cell{I: origin.I + di, J: origin.J + dj})
		}
	}
	return cells
}

// VisibilityRadiusMeters converts a cell radius to meters using the linear
// meters-per-degree approximation. Only valid near the play-area latitude;
// callers wanting true distance use DistanceMeters.
func (g *Grid) VisibilityRadiusMeters(radius int) float64 {
	return float64(radius) * g.tileWidth * g.metersPerDegree
}

// DistanceMeters is the haversine distance between two points.
func DistanceMeters(a, b orb.Point) float64 {
	return orbgeo.Distance(a, b)
}
