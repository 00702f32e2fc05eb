package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/geocoin/server/internal/game"
)

// SessionHandler exposes the game commands over HTTP.
type SessionHandler struct {
	mgr *Manager
	log *zap.Logger
}

func NewSessionHandler(mgr *Manager, log *zap.Logger) *SessionHandler {
	return &SessionHandler{mgr: mgr, log: log}
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(h *SessionHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/sessions", h.OpenSession)
		api.GET("/sessions/:id", h.GetSession)
		api.GET("/sessions/:id/caches", h.ListCaches)
		api.POST("/sessions/:id/move", h.Move)
		api.POST("/sessions/:id/position", h.SetPosition)
		api.POST("/sessions/:id/collect", h.Collect)
		api.POST("/sessions/:id/deposit", h.Deposit)
		api.POST("/sessions/:id/reset", h.Reset)
		api.POST("/sessions/:id/tracking", h.SetTracking)
	}
	return r
}

type openSessionRequest struct {
	ID string `json:"id"` // optional; resumes an existing save slot
}

// OpenSession handles POST /api/sessions, creating or resuming a session.
func (h *SessionHandler) OpenSession(c *gin.Context) {
	var req openSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
			return
		}
	}
	id, s, err := h.mgr.Open(c.Request.Context(), req.ID)
	if err != nil {
		h.log.Error("open session failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	view := s.View()
	view.Slot = id
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/sessions/:id with the current state snapshot.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// ListCaches handles GET /api/sessions/:id/caches with the visible popup models.
func (h *SessionHandler) ListCaches(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"caches": s.View().Caches})
}

type moveRequest struct {
	Direction string `json:"direction"`
}

// Move handles POST /api/sessions/:id/move, stepping one tile in a
// cardinal direction.
func (h *SessionHandler) Move(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	dir, err := game.ParseDirection(req.Direction)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_direction", "message": err.Error()})
		return
	}
	if err := s.Move(c.Request.Context(), dir); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

type positionRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// SetPosition handles POST /api/sessions/:id/position, an external
// location update.
func (h *SessionHandler) SetPosition(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if err := s.SetPosition(c.Request.Context(), req.Lat, req.Lng); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

type collectRequest struct {
	Cell  string `json:"cell"`
	Token string `json:"token"`
}

// Collect handles POST /api/sessions/:id/collect, taking a token from a
// nearby cache.
func (h *SessionHandler) Collect(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	t, err := s.Collect(c.Request.Context(), req.Cell, req.Token)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collected": t.ID, "state": s.View()})
}

type depositRequest struct {
	Cell string `json:"cell"`
}

// Deposit handles POST /api/sessions/:id/deposit, placing the oldest held
// token.
func (h *SessionHandler) Deposit(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	var req depositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	t, err := s.Deposit(c.Request.Context(), req.Cell)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deposited": t.ID, "state": s.View()})
}

// Reset handles POST /api/sessions/:id/reset, wiping all session state.
func (h *SessionHandler) Reset(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	if err := s.Reset(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.View())
}

type trackingRequest struct {
	Enabled bool `json:"enabled"`
}

// SetTracking handles POST /api/sessions/:id/tracking.
// An unavailable source is reported, not an error: the toggle degrades to
// a no-op and the rest of the game stays usable.
func (h *SessionHandler) SetTracking(c *gin.Context) {
	s, ok := h.mgr.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown_session"})
		return
	}
	var req trackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	active, err := s.SetTracking(req.Enabled)
	if errors.Is(err, game.ErrTrackingUnavailable) {
		c.JSON(http.StatusOK, gin.H{"tracking": false, "reason": "unavailable"})
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": active})
}

// fail maps game errors onto HTTP statuses. Everything in the game error
// taxonomy means "this specific action did not happen", never a 500.
func (h *SessionHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, game.ErrTokenNotFound), errors.Is(err, game.ErrCacheNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": err.Error()})
	case errors.Is(err, game.ErrEmptyInventory), errors.Is(err, game.ErrDuplicateToken):
		c.JSON(http.StatusConflict, gin.H{"error": "conflict", "message": err.Error()})
	default:
		h.log.Error("command failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
	}
}
