// Package http serves operator login
package http

import (
	"net/http"
	"time"

	"wildwatch/internal/modkit/httpkit"
	pnet "wildwatch/internal/platform/net"
	"wildwatch/internal/platform/net/middleware"
	"wildwatch/internal/services/api/auth/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Auth     domain.Authenticator
	Verifier middleware.TokenVerifier
	// LoginLimit caps login attempts per client IP per minute; 0 disables it
	LoginLimit int
}

type handlers struct {
	deps Deps
}

// Register mounts the auth routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	r.With(httpkit.RateLimit("auth.login", d.LoginLimit, time.Minute)).Post("/login", httpkit.JSON(h.login))
	httpkit.Protected(r, d.Verifier, func(pr httpkit.Router) {
		httpkit.Get(pr, "/session", h.session)
	})
}

// SessionInfo describes the caller's session
type SessionInfo struct {
	Username string `json:"username" example:"admin"`
}

// @Summary Operator login
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body domain.Credentials true "credentials"
// @Success 200 {object} domain.Session
// @Failure 401 {object} httpkit.Envelope "Invalid username or password"
// @Router /api/auth/login [post]
func (h *handlers) login(r *http.Request, c domain.Credentials) (any, error) {
	sess, err := h.deps.Auth.Verify(r.Context(), c)
	if err != nil {
		return nil, err
	}
	return httpkit.Message("Login successful", sess), nil
}

// @Summary Current session
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} SessionInfo
// @Failure 401 {object} httpkit.Envelope
// @Router /api/auth/session [get]
func (h *handlers) session(r *http.Request) (any, error) {
	return SessionInfo{Username: pnet.Subject(r.Context())}, nil
}
