package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/geocoin/server/internal/config"
	"github.com/geocoin/server/internal/game"
	"github.com/geocoin/server/internal/geo"
	"github.com/geocoin/server/internal/geoloc"
	"github.com/geocoin/server/internal/luck"
	"github.com/geocoin/server/internal/persist"
)

// Manager owns all live sessions. Each session gets its own save slot and
// its own simulated location source anchored at the configured start; the
// session serializes its mutations internally.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session

	grid   *geo.Grid
	oracle luck.Oracle
	store  persist.Store
	hooks  game.Hooks
	log    *zap.Logger

	gameCfg  config.GameConfig
	trackCfg config.TrackingConfig
	start    orb.Point
}

func NewManager(grid *geo.Grid, oracle luck.Oracle, store persist.Store, hooks game.Hooks, start orb.Point, gameCfg config.GameConfig, trackCfg config.TrackingConfig, log *zap.Logger) *Manager {
	return &Manager{
		sessions: make(map[string]*game.Session),
		grid:     grid,
		oracle:   oracle,
		store:    store,
		hooks:    hooks,
		log:      log,
		gameCfg:  gameCfg,
		trackCfg: trackCfg,
		start:    start,
	}
}

// Open creates or resumes a session. An empty id mints a fresh slot; a
// known id returns the live session; an unknown id resumes whatever the
// store holds for that slot.
func (m *Manager) Open(ctx context.Context, id string) (string, *game.Session, error) {
	if id == "" {
		id = uuid.NewString()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return id, s, nil
	}

	source := geoloc.NewWalkSource(
		geoloc.Update{Lat: m.start.Lat(), Lng: m.start.Lon()},
		m.trackCfg.StepTiles*m.gameCfg.TileWidth,
		m.trackCfg.Interval,
	)
	s := game.NewSession(game.SessionConfig{
		Slot:  id,
		Start: m.start,
		Visibility: game.VisibilityConfig{
			Radius:           m.gameCfg.NeighborhoodSize,
			SpawnProbability: m.gameCfg.SpawnProbability,
			MaxCacheTokens:   m.gameCfg.MaxCacheTokens,
		},
	}, m.grid, m.oracle, m.store, nil, m.hooks, source, m.log.With(zap.String("session", id)))

	if err := s.Load(ctx); err != nil {
		return "", nil, fmt.Errorf("open session %s: %w", id, err)
	}
	m.sessions[id] = s
	m.log.Info("session opened", zap.String("session", id))
	return id, s, nil
}

// Get returns a live session by id.
func (m *Manager) Get(id string) (*game.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// CloseAll stops tracking on every live session. Shutdown path.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.sessions {
		s.Close()
		delete(m.sessions, id)
	}
}
