// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"wildwatch/internal/core/version"
	"wildwatch/internal/modkit/httpkit"
	ptime "wildwatch/internal/platform/time"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Configured is satisfied by optional outbound providers
type Configured interface {
	IsConfigured() bool
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Clock       ptime.Clock

	// PG must answer Ping for the service to be ready
	PG any
	// Providers are reported but never fail readiness
	Providers map[string]Configured
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	if d.Clock == nil {
		d.Clock = ptime.System{}
	}
	h := &handlers{deps: d}

	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
}

// HealthResponse is the health payload
type HealthResponse struct {
	OK      bool   `json:"ok"      example:"true"`
	Service string `json:"service" example:"wildwatch-api"`
	Started string `json:"started" example:"2025-03-14T05:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
	Now     string `json:"now"     example:"2025-03-14T05:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-03-14T05:05:00Z"`
}

// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	now := h.deps.Clock.Now()
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(now.Sub(h.deps.StartedAt) / time.Second),
		Now:     now.UTC().Format(time.RFC3339),
	}, nil
}

// @Summary Readiness probe with dependency checks
// @Description 503 when Postgres does not answer; unconfigured providers show as skipped
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	pg := ReadyCheck{Name: "pg", Status: "fail", Error: "not configured"}
	if p, ok := h.deps.PG.(Pinger); ok {
		pg.Error = ""
		pg.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			pg.Status, pg.Error = "fail", err.Error()
		}
	}

	checks := []ReadyCheck{pg}
	for _, name := range []string{"twilio", "push"} {
		c, ok := h.deps.Providers[name]
		if !ok {
			continue
		}
		st := "skipped"
		if c.IsConfigured() {
			st = "ok"
		}
		checks = append(checks, ReadyCheck{Name: name, Status: st})
	}

	out := ReadyResponse{Status: "ok", Checks: checks, Now: h.deps.Clock.Now().UTC().Format(time.RFC3339)}
	if pg.Status != "ok" {
		out.Status = "fail"
		return httpkit.Response{Status: http.StatusServiceUnavailable, Message: "not ready", Body: out}, nil
	}
	return out, nil
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(h.deps.ServiceName), nil
}
