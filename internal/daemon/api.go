package daemon

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sidebar/internal/client"
	"sidebar/internal/logging"
	"sidebar/internal/store"
	"sidebar/internal/types"
)

type API struct {
	Version  string
	Sessions store.SessionStore
	Logger   logging.Logger
	Now      func() time.Time
}

func (a *API) RegisterRoutes(router gin.IRouter) {
	router.GET("/health", a.Health)
	v1 := router.Group("/v1")
	v1.GET("/sessions", a.ListSessions)
	v1.POST("/sessions", a.CreateSession)
	v1.GET("/sessions/:id/config", a.GetSessionConfig)
	v1.PUT("/sessions/:id/config", a.UpdateSessionConfig)
}

func (a *API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, client.HealthResponse{OK: true, Version: a.Version})
}

func (a *API) ListSessions(c *gin.Context) {
	sessions, err := a.Sessions.List(c.Request.Context())
	if err != nil {
		a.writeError(c, err)
		return
	}
	// Provider config is served per session; list entries omit it.
	out := make([]*types.Session, 0, len(sessions))
	for _, session := range sessions {
		listed := session.Clone()
		listed.Config = types.SessionConfig{}
		out = append(out, listed)
	}
	c.JSON(http.StatusOK, client.SessionsResponse{Sessions: out})
}

func (a *API) CreateSession(c *gin.Context) {
	var req client.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, client.ErrorResponse{Error: "invalid request body"})
		return
	}
	now := a.now()
	session := &types.Session{
		ID: uuid.NewString(),
		Meta: types.SessionMeta{
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Avatar:      strings.TrimSpace(req.Avatar),
		},
		Model:     strings.TrimSpace(req.Model),
		Config:    req.Config,
		Group:     strings.TrimSpace(req.Group),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if session.Model == "" {
		session.Model = strings.TrimSpace(req.Config.Model)
	}
	saved, err := a.Sessions.Upsert(c.Request.Context(), session)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (a *API) GetSessionConfig(c *gin.Context) {
	session, err := a.Sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, session.Config)
}

func (a *API) UpdateSessionConfig(c *gin.Context) {
	var cfg types.SessionConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, client.ErrorResponse{Error: "invalid request body"})
		return
	}
	ctx := c.Request.Context()
	session, err := a.Sessions.Get(ctx, c.Param("id"))
	if err != nil {
		a.writeError(c, err)
		return
	}
	next := session.Clone()
	next.Config = cfg
	if model := strings.TrimSpace(cfg.Model); model != "" {
		next.Model = model
	}
	next.UpdatedAt = a.now()
	saved, err := a.Sessions.Upsert(ctx, next)
	if err != nil {
		a.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved.Config)
}

func (a *API) writeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, client.ErrorResponse{Error: "session not found"})
		return
	}
	if a.Logger != nil {
		a.Logger.Error("request_failed", logging.F("path", c.FullPath()), logging.Err(err))
	}
	c.JSON(http.StatusInternalServerError, client.ErrorResponse{Error: err.Error()})
}

func (a *API) now() time.Time {
	if a.Now != nil {
		return a.Now().UTC()
	}
	return time.Now().UTC()
}
