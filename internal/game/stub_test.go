package game

import (
	"github.com/paulmach/orb"

	"github.com/geocoin/server/internal/geo"
)

// stubOracle returns scripted values per key; unknown keys roll high, so
// only the listed cells can spawn.
type stubOracle map[string]float64

func (o stubOracle) Luck(key string) float64 {
	if v, ok := o[key]; ok {
		return v
	}
	return 0.99
}

// recordingRenderer captures renderer calls for assertions.
type recordingRenderer struct {
	shown     []string
	hidden    []string
	refreshed []string
	trailLen  int
}

func (r *recordingRenderer) ShowCache(p PopupModel)    { r.shown = append(r.shown, p.CellKey) }
func (r *recordingRenderer) RefreshCache(p PopupModel) { r.refreshed = append(r.refreshed, p.CellKey) }
func (r *recordingRenderer) HideCache(key string)      { r.hidden = append(r.hidden, key) }
func (r *recordingRenderer) DrawTrail(pts []orb.Point) { r.trailLen = len(pts) }

func testGrid() *geo.Grid {
	return geo.NewGrid(0.0001, 111_320)
}
