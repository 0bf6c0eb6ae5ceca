// Package http serves the subscriber directory for the dashboard
package http

import (
	"net/http"

	"wildwatch/internal/core/frequency"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/platform/net/http/bind"
	"wildwatch/internal/services/subscribers/domain"
)

type handlers struct {
	dir domain.DirectoryPort
}

// Register mounts the directory routes
func Register(r httpkit.Router, dir domain.DirectoryPort) {
	h := &handlers{dir: dir}

	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/notified", h.notified)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/notifications", h.settings)
	httpkit.PatchJSON(r, "/{id}/notifications", h.updateSettings)
}

// SettingsRequest patches notification preferences; omitted fields stay as they are
type SettingsRequest struct {
	Notifications  *domain.Notifications `json:"notifications"`
	AlertFrequency *frequency.Minutes    `json:"alertFrequency" swaggertype:"integer" example:"30"`
}

// @Summary List all users
// @Tags Users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users [get]
func (h *handlers) list(r *http.Request) (any, error) {
	return h.dir.List(r.Context(), domain.ListFilter{})
}

// @Summary Users with at least one channel on
// @Tags Users
// @Produce json
// @Success 200 {array} domain.User
// @Router /users/notified [get]
func (h *handlers) notified(r *http.Request) (any, error) {
	return h.dir.List(r.Context(), domain.ListFilter{AnyChannel: true})
}

// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.User
// @Router /users/{id} [get]
func (h *handlers) get(r *http.Request) (any, error) {
	return h.dir.Get(r.Context(), bind.Param(r, "id"))
}

// @Summary Notification settings of a user
// @Tags Users
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.Settings
// @Router /users/{id}/notifications [get]
func (h *handlers) settings(r *http.Request) (any, error) {
	return h.dir.Settings(r.Context(), bind.Param(r, "id"))
}

// @Summary Update notification settings
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "user id"
// @Param payload body SettingsRequest true "changes"
// @Success 200 {object} domain.User
// @Router /users/{id}/notifications [patch]
func (h *handlers) updateSettings(r *http.Request, in SettingsRequest) (any, error) {
	upd := domain.SettingsUpdate{Notifications: in.Notifications}
	if in.AlertFrequency != nil {
		m := int(*in.AlertFrequency)
		upd.AlertFrequency = &m
	}
	return h.dir.UpdateSettings(r.Context(), bind.Param(r, "id"), upd)
}
