package game

import (
	"fmt"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/geocoin/server/internal/geo"
	"github.com/geocoin/server/internal/luck"
)

// Visibility reconciles the set of materialized caches against the player
// position. A cell's cache lives in one of three states over a session:
// unknown (never near, or rolled no spawn), materialized (near, hydrated,
// shown), dematerialized (was shown, player walked away; authoritative
// state stays in the directory).
//
// Reconciliation fully recomputes the desired set on every position change.
// The set is bounded by (2r+1)^2 cells, so no incremental diffing beyond
// map membership is needed. Accessed only under the owning session's lock.
type Visibility struct {
	grid     *geo.Grid
	oracle   luck.Oracle
	dir      *Directory
	renderer Renderer
	log      *zap.Logger

	radius    int
	spawnProb float64
	maxTokens int

	active map[string]*Cache // cell key → materialized cache
}

type VisibilityConfig struct {
	Radius           int
	SpawnProbability float64
	MaxCacheTokens   int
}

func NewVisibility(grid *geo.Grid, oracle luck.Oracle, dir *Directory, r Renderer, cfg VisibilityConfig, log *zap.Logger) *Visibility {
	if r == nil {
		r = NopRenderer{}
	}
	return &Visibility{
		grid:      grid,
		oracle:    oracle,
		dir:       dir,
		renderer:  r,
		log:       log,
		radius:    cfg.Radius,
		spawnProb: cfg.SpawnProbability,
		maxTokens: cfg.MaxCacheTokens,
		active:    make(map[string]*Cache),
	}
}

// Reconcile recomputes the visible cache set for the given player position:
// dematerialize caches that left the neighborhood, materialize cells that
// entered it. Mutations are always flushed to the directory before a cache
// can be discarded, so dematerialization loses nothing.
func (v *Visibility) Reconcile(player orb.Point, inv *Inventory) {
	desired := make(map[string]geo.Cell)
	for _, cell := range v.grid.CellsNear(player, v.radius) {
		desired[cell.Key()] = cell
	}

	for key := range v.active {
		if _, still := desired[key]; !still {
			delete(v.active, key)
			v.renderer.HideCache(key)
		}
	}

	for key, cell := range desired {
		if _, shown := v.active[key]; shown {
			continue
		}
		if c := v.materialize(cell); c != nil {
			v.active[key] = c
			v.renderer.ShowCache(BuildPopup(c, inv))
		}
	}
}

// materialize hydrates a cache for a cell entering the neighborhood.
// A directory entry always wins: a cache that existed keeps existing at the
// same place with its last known contents. Otherwise the spawn decision is
// rolled once; a negative roll leaves the cell unknown with no entry, and
// a positive roll generates content exactly once, gated by directory
// presence from then on.
func (v *Visibility) materialize(cell geo.Cell) *Cache {
	key := cell.Key()
	center := v.grid.CenterOfCell(cell)

	if m, ok := v.dir.Get(key); ok {
		c := NewCache(cell, center, nil)
		c.Restore(m)
		return c
	}

	if v.oracle.Luck(key) >= v.spawnProb {
		return nil
	}

	count := int(v.oracle.Luck(key+",coins") * float64(v.maxTokens))
	tokens := make([]Token, count)
	for k := range tokens {
		tokens[k] = MintToken(cell, k)
	}
	c := NewCache(cell, center, tokens)
	v.dir.Put(key, c.Serialize())
	v.log.Debug("cache generated",
		zap.String("cell", key),
		zap.Int("tokens", count))
	return c
}

// CacheAt returns the materialized cache for a cell key, if visible.
func (v *Visibility) CacheAt(cellKey string) (*Cache, bool) {
	c, ok := v.active[cellKey]
	return c, ok
}

// Flush writes a mutated cache's state back to the directory and refreshes
// its popup. Called synchronously after every collect/deposit.
func (v *Visibility) Flush(c *Cache, inv *Inventory) {
	v.dir.Put(c.Cell().Key(), c.Serialize())
	v.renderer.RefreshCache(BuildPopup(c, inv))
}

// Active returns the currently materialized caches, unordered.
func (v *Visibility) Active() []*Cache {
	out := make([]*Cache, 0, len(v.active))
	for _, c := range v.active {
		out = append(out, c)
	}
	return out
}

// DistanceTo returns the haversine distance from a point to a visible
// cache's anchor, for display. The visibility threshold itself is the
// Chebyshev neighborhood, not this metric distance.
func (v *Visibility) DistanceTo(player orb.Point, cellKey string) (float64, error) {
	c, ok := v.active[cellKey]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrCacheNotVisible, cellKey)
	}
	return geo.DistanceMeters(player, c.Location()), nil
}

// Clear drops every materialized cache. Full game reset only.
func (v *Visibility) Clear() {
	for key := range v.active {
		v.renderer.HideCache(key)
		delete(v.active, key)
	}
}
