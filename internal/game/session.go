package game

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/geocoin/server/internal/geo"
	"github.com/geocoin/server/internal/geoloc"
	"github.com/geocoin/server/internal/luck"
	"github.com/geocoin/server/internal/persist"
)

// Direction is one of the four cardinal movement directions.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case North, South, East, West:
		return Direction(s), nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Hooks receives notifications after game events commit. Implementations
// must not call back into the session.
type Hooks interface {
	OnMove(lat, lng float64)
	OnCollect(tokenID, cellKey string)
	OnDeposit(tokenID, cellKey string)
	OnReset()
}

// NopHooks ignores all events.
type NopHooks struct{}

func (NopHooks) OnMove(float64, float64)  {}
func (NopHooks) OnCollect(string, string) {}
func (NopHooks) OnDeposit(string, string) {}
func (NopHooks) OnReset()                 {}

// SessionConfig carries everything a session needs beyond its collaborators.
type SessionConfig struct {
	Slot       string    // save-store namespace
	Start      orb.Point // default position when no save exists
	Visibility VisibilityConfig
}

// Session owns all mutable game state for one player: position, trail,
// inventory, cache directory, and the visible cache set. Every command
// runs under one mutex, so no two mutations interleave and every
// persistence write completes before the triggering command returns.
type Session struct {
	mu  sync.Mutex
	log *zap.Logger

	slot  string
	start orb.Point

	grid     *geo.Grid
	dir      *Directory
	inv      *Inventory
	vis      *Visibility
	store    persist.Store
	renderer Renderer
	hooks    Hooks

	pos   orb.Point
	trail []orb.Point

	locSource geoloc.Source
	tracking  geoloc.Subscription
}

func NewSession(cfg SessionConfig, grid *geo.Grid, oracle luck.Oracle, store persist.Store, renderer Renderer, hooks Hooks, locSource geoloc.Source, log *zap.Logger) *Session {
	if renderer == nil {
		renderer = NopRenderer{}
	}
	if hooks == nil {
		hooks = NopHooks{}
	}
	dir := NewDirectory()
	return &Session{
		log:       log,
		slot:      cfg.Slot,
		start:     cfg.Start,
		grid:      grid,
		dir:       dir,
		inv:       NewInventory(),
		vis:       NewVisibility(grid, oracle, dir, renderer, cfg.Visibility, log),
		store:     store,
		renderer:  renderer,
		hooks:     hooks,
		pos:       cfg.Start,
		trail:     []orb.Point{cfg.Start},
		locSource: locSource,
	}
}

// Load hydrates the session from the save store and materializes the
// starting neighborhood. Any of the four save keys may be absent; missing
// data leaves the corresponding state at its default.
func (s *Session) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := persist.LoadSession(ctx, s.store, s.slot, s.log)
	if err != nil {
		return fmt.Errorf("load session %s: %w", s.slot, err)
	}
	if st.Inventory != nil {
		s.inv.Load(st.Inventory)
	}
	if st.Directory != nil {
		s.dir.Load(st.Directory)
	}
	if st.Position != nil {
		s.pos = orb.Point{st.Position.Lng, st.Position.Lat}
	}
	if len(st.Trail) > 0 {
		s.trail = make([]orb.Point, len(st.Trail))
		for i, p := range st.Trail {
			s.trail[i] = orb.Point{p.Lng, p.Lat}
		}
	} else {
		s.trail = []orb.Point{s.pos}
	}

	s.vis.Reconcile(s.pos, s.inv)
	s.renderer.DrawTrail(s.trailCopy())
	return nil
}

// Move steps the player one tile width in a cardinal direction, then
// reconciles visibility and saves.
func (s *Session) Move(ctx context.Context, d Direction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	step := s.grid.TileWidth()
	p := s.pos
	switch d {
	case North:
		p[1] += step
	case South:
		p[1] -= step
	case East:
		p[0] += step
	case West:
		p[0] -= step
	default:
		return fmt.Errorf("unknown direction %q", d)
	}
	if err := s.applyPosition(ctx, p); err != nil {
		return err
	}
	s.hooks.OnMove(p.Lat(), p.Lon())
	return nil
}

// SetPosition handles an external location update (geolocation fix).
func (s *Session) SetPosition(ctx context.Context, lat, lng float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := orb.Point{lng, lat}
	if err := s.applyPosition(ctx, p); err != nil {
		return err
	}
	s.hooks.OnMove(lat, lng)
	return nil
}

// applyPosition commits a position change: trail append, visibility
// reconciliation, trail redraw, save. Callers hold the lock.
func (s *Session) applyPosition(ctx context.Context, p orb.Point) error {
	s.pos = p
	s.trail = append(s.trail, p)
	s.vis.Reconcile(p, s.inv)
	s.renderer.DrawTrail(s.trailCopy())
	return s.save(ctx)
}

// Collect moves one token from a visible cache into the inventory.
// Ownership transfers atomically: on any failure the token stays where it
// was, so no token is ever duplicated or dropped.
func (s *Session) Collect(ctx context.Context, cellKey, tokenID string) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.vis.CacheAt(cellKey)
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrCacheNotVisible, cellKey)
	}
	t, err := c.Collect(tokenID)
	if err != nil {
		return Token{}, err
	}
	if err := s.inv.Collect(t); err != nil {
		// Put it back; the cache held it a moment ago so this cannot fail.
		_ = c.Deposit(t)
		return Token{}, err
	}
	s.vis.Flush(c, s.inv)
	if err := s.save(ctx); err != nil {
		return t, err
	}
	s.hooks.OnCollect(t.ID, cellKey)
	return t, nil
}

// Deposit moves the oldest-held token from the inventory into a visible
// cache (FIFO by collection order).
func (s *Session) Deposit(ctx context.Context, cellKey string) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.vis.CacheAt(cellKey)
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrCacheNotVisible, cellKey)
	}
	t, err := s.inv.DepositOldest()
	if err != nil {
		return Token{}, err
	}
	if err := c.Deposit(t); err != nil {
		s.inv.pushFront(t)
		return Token{}, err
	}
	s.vis.Flush(c, s.inv)
	if err := s.save(ctx); err != nil {
		return t, err
	}
	s.hooks.OnDeposit(t.ID, cellKey)
	return t, nil
}

// Reset wipes all state: directory, inventory, trail, position back to the
// start, save slot cleared. The one operation allowed to remove directory
// entries.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.vis.Clear()
	s.dir.Clear()
	s.inv.Clear()
	s.pos = s.start
	s.trail = []orb.Point{s.start}

	if err := s.store.Clear(ctx, s.slot); err != nil {
		return fmt.Errorf("clear save slot: %w", err)
	}
	s.vis.Reconcile(s.pos, s.inv)
	s.renderer.DrawTrail(s.trailCopy())
	if err := s.save(ctx); err != nil {
		return err
	}
	s.hooks.OnReset()
	return nil
}

// SetTracking toggles continuous location updates. With no source
// configured the toggle is a no-op and reports ErrTrackingUnavailable;
// the rest of the game stays usable. At most one subscription is active.
func (s *Session) SetTracking(enabled bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !enabled {
		if s.tracking != nil {
			s.tracking.Stop()
			s.tracking = nil
		}
		return false, nil
	}
	if s.tracking != nil {
		return true, nil
	}
	if s.locSource == nil {
		return false, ErrTrackingUnavailable
	}
	sub, err := s.locSource.Subscribe(func(u geoloc.Update) {
		if err := s.SetPosition(context.Background(), u.Lat, u.Lng); err != nil {
			s.log.Warn("location update failed", zap.Error(err))
		}
	})
	if err != nil {
		return false, fmt.Errorf("subscribe location source: %w", err)
	}
	s.tracking = sub
	return true, nil
}

// Tracking reports whether a location subscription is active.
func (s *Session) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracking != nil
}

// Close stops any active tracking subscription.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tracking != nil {
		s.tracking.Stop()
		s.tracking = nil
	}
}

// View is a read-only snapshot of the session for presentation.
type View struct {
	Slot      string           `json:"slot"`
	Lat       float64          `json:"lat"`
	Lng       float64          `json:"lng"`
	Inventory []string         `json:"inventory"`
	Trail     []persist.LatLng `json:"trail"`
	Caches    []PopupModel     `json:"caches"`
	Tracking  bool             `json:"tracking"`
}

// View renders the current state. Caches are ordered by cell key for
// stable output.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	caches := make([]PopupModel, 0)
	for _, c := range s.vis.Active() {
		caches = append(caches, BuildPopup(c, s.inv))
	}
	sort.Slice(caches, func(i, j int) bool { return caches[i].CellKey < caches[j].CellKey })

	trail := make([]persist.LatLng, len(s.trail))
	for i, p := range s.trail {
		trail[i] = persist.LatLng{Lat: p.Lat(), Lng: p.Lon()}
	}

	return View{
		Slot:      s.slot,
		Lat:       s.pos.Lat(),
		Lng:       s.pos.Lon(),
		Inventory: s.inv.IDs(),
		Trail:     trail,
		Caches:    caches,
		Tracking:  s.tracking != nil,
	}
}

// TrailLengthMeters sums the haversine distance along the movement trail.
func (s *Session) TrailLengthMeters() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total float64
	for i := 1; i < len(s.trail); i++ {
		total += geo.DistanceMeters(s.trail[i-1], s.trail[i])
	}
	return total
}

// save flushes the full logical state to the store. Callers hold the lock.
func (s *Session) save(ctx context.Context) error {
	trail := make([]persist.LatLng, len(s.trail))
	for i, p := range s.trail {
		trail[i] = persist.LatLng{Lat: p.Lat(), Lng: p.Lon()}
	}
	st := persist.SessionState{
		Inventory: s.inv.IDs(),
		Position:  &persist.LatLng{Lat: s.pos.Lat(), Lng: s.pos.Lon()},
		Directory: s.dir.Snapshot(),
		Trail:     trail,
	}
	if err := persist.SaveSession(ctx, s.store, s.slot, st); err != nil {
		return fmt.Errorf("save session %s: %w", s.slot, err)
	}
	return nil
}

func (s *Session) trailCopy() []orb.Point {
	out := make([]orb.Point, len(s.trail))
	copy(out, s.trail)
	return out
}
