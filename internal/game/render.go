package game

import "github.com/paulmach/orb"

// PopupModel is the presentation model for one cache's popup: everything a
// map layer needs to draw it, with no game logic attached. Built by a pure
// function; mutation handlers re-render instead of editing rendered output.
type PopupModel struct {
	CellKey      string   `json:"cell_key"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
	TokenIDs     []string `json:"token_ids"`
	InventoryIDs []string `json:"inventory_ids"`
}

// BuildPopup renders a cache and the current inventory into a popup model.
func BuildPopup(c *Cache, inv *Inventory) PopupModel {
	loc := c.Location()
	tokens := make([]string, 0, c.Len())
	for _, t := range c.Tokens() {
		tokens = append(tokens, t.ID)
	}
	return PopupModel{
		CellKey:      c.Cell().Key(),
		Lat:          loc.Lat(),
		Lng:          loc.Lon(),
		TokenIDs:     tokens,
		InventoryIDs: inv.IDs(),
	}
}

// Renderer is the map-layer collaborator. The game tells it when a cache
// enters or leaves the visible set, when a visible cache's popup content
// changes, and when the movement trail grows. Implementations must not call
// back into the session from these methods.
type Renderer interface {
	ShowCache(popup PopupModel)
	RefreshCache(popup PopupModel)
	HideCache(cellKey string)
	DrawTrail(points []orb.Point)
}

// NopRenderer discards all rendering. Used headless and in tests.
type NopRenderer struct{}

func (NopRenderer) ShowCache(PopupModel)    {}
func (NopRenderer) RefreshCache(PopupModel) {}
func (NopRenderer) HideCache(string)        {}
func (NopRenderer) DrawTrail([]orb.Point)   {}
