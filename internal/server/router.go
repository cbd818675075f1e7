// Package server exposes the agent's state over HTTP for status tooling.
// Endpoints:
//
//	GET {basePath}/status    current agent snapshot
//	GET {basePath}/registry  bound pids and the active slot
//	GET {basePath}/sessions  recent focus sessions (query: limit=N)
//	GET {basePath}/healthz   liveness probe
//	GET {basePath}/metrics   Prometheus exposition
package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/auricle/auricle/internal/agent"
	"github.com/auricle/auricle/internal/metrics"
	"github.com/auricle/auricle/internal/store"
)

// StatusProvider is the slice of the agent the router needs.
type StatusProvider interface {
	Status() agent.Status
}

type Router struct {
	agent    StatusProvider
	sessions store.Store // may be nil
	basePath string
}

// NewRouter constructs a Router with a configurable basePath.
// Example basePath: "/auricle" results in /auricle/status, /auricle/healthz.
func NewRouter(a StatusProvider, sessions store.Store, basePath string) *Router {
	return &Router{agent: a, sessions: sessions, basePath: sanitizeBase(basePath)}
}

// Handler returns an http.Handler powered by gin that can be mounted in any server/mux.
func (r *Router) Handler() http.Handler {
	g := gin.New()
	g.Use(gin.Recovery())
	group := g.Group(r.basePath)
	group.GET("/status", r.handleStatus)
	group.GET("/registry", r.handleRegistry)
	group.GET("/sessions", r.handleSessions)
	group.GET("/healthz", r.handleHealthz)
	group.GET("/metrics", gin.WrapH(metrics.Handler()))
	return g
}

// NewServer starts a standalone HTTP server on addr using this router.
// Callers shut it down via the returned http.Server.
func NewServer(addr, basePath string, a StatusProvider, sessions store.Store) (*http.Server, error) {
	r := NewRouter(a, sessions, basePath)
	server := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() { _ = server.ListenAndServe() }()
	return server, nil
}

type errorResp struct {
	Error string `json:"error"`
}

func (r *Router) handleStatus(c *gin.Context) {
	writeJSON(c, http.StatusOK, r.agent.Status())
}

func (r *Router) handleRegistry(c *gin.Context) {
	st := r.agent.Status()
	writeJSON(c, http.StatusOK, gin.H{
		"bound":      st.Bound,
		"bound_pids": st.BoundPIDs,
		"active_pid": st.ActivePID,
	})
}

func (r *Router) handleSessions(c *gin.Context) {
	if r.sessions == nil {
		writeJSON(c, http.StatusNotFound, errorResp{Error: "session store not configured"})
		return
	}
	limit := 0
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeJSON(c, http.StatusBadRequest, errorResp{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()
	sessions, err := r.sessions.RecentSessions(ctx, limit)
	if err != nil {
		writeJSON(c, http.StatusInternalServerError, errorResp{Error: err.Error()})
		return
	}
	writeJSON(c, http.StatusOK, sessions)
}

func (r *Router) handleHealthz(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"ok": true})
}
