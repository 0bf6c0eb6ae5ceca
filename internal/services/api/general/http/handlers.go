// Package http serves public subscription endpoints
package http

import (
	"net/http"

	"wildwatch/internal/core/frequency"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/platform/net/http/bind"
	"wildwatch/internal/services/subscribers/domain"
)

// Deps are the handler dependencies
type Deps struct {
	Registration domain.RegistrationPort
	Directory    domain.DirectoryPort
}

type handlers struct {
	deps Deps
}

// Register mounts the subscription routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON(r, "/user", h.create)
	httpkit.Get(r, "/user/{id}", h.get)
	httpkit.PostJSON(r, "/unsubscribe", h.unsubscribe)
}

// CreateUserRequest is the subscribe form
type CreateUserRequest struct {
	Username         string `json:"username"         validate:"required" example:"ranger"`
	Name             string `json:"name"             validate:"required" example:"Ada"`
	Surname          string `json:"surname"          validate:"required" example:"Lovelace"`
	Email            string `json:"email"            validate:"required" example:"ada@example.org"`
	PhoneNumber      string `json:"phoneNumber"      validate:"required" example:"+27821234567"`
	SMSAlerts        bool   `json:"smsAlerts"`
	PopNotifications bool   `json:"popNotifications"`
	WhatsAppAlerts   bool   `json:"whatsappAlerts"`
	AlertFrequency   string `json:"alertFrequency"   validate:"required" example:"5min" enums:"2min,5min,10min,30min,1hr"`
}

// UnsubscribeRequest identifies the subscriber by username or phone number
type UnsubscribeRequest struct {
	Username    string `json:"username"    example:"ranger"`
	PhoneNumber string `json:"phoneNumber" example:"+27821234567"`
	DeleteData  bool   `json:"deleteData"`
}

// @Summary Subscribe
// @Tags General
// @Accept json
// @Produce json
// @Param payload body CreateUserRequest true "subscriber"
// @Success 201 {object} domain.User
// @Failure 409 {object} httpkit.Envelope "username or email taken"
// @Router /general/user [post]
func (h *handlers) create(r *http.Request, in CreateUserRequest) (any, error) {
	minutes, err := frequency.FromLabel(in.AlertFrequency)
	if err != nil {
		return nil, err
	}
	u, err := h.deps.Registration.Create(r.Context(), domain.NewUser{
		Username:    in.Username,
		Name:        in.Name,
		Surname:     in.Surname,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Notifications: domain.Notifications{
			PopNotifications: in.PopNotifications,
			SMSAlerts:        in.SMSAlerts,
			WhatsAppAlerts:   in.WhatsAppAlerts,
		},
		AlertFrequency: minutes,
	})
	if err != nil {
		return nil, err
	}
	return httpkit.Created(u, "User subscribed successfully"), nil
}

// @Summary Get a subscriber
// @Tags General
// @Produce json
// @Param id path string true "user id"
// @Success 200 {object} domain.User
// @Router /general/user/{id} [get]
func (h *handlers) get(r *http.Request) (any, error) {
	return h.deps.Directory.Get(r.Context(), bind.Param(r, "id"))
}

// @Summary Unsubscribe
// @Description Matches by username or phone number; deleteData removes the record entirely
// @Tags General
// @Accept json
// @Produce json
// @Param payload body UnsubscribeRequest true "identity"
// @Success 200 {object} domain.UnsubscribeResult
// @Failure 404 {object} httpkit.Envelope "Authentication failed"
// @Router /general/unsubscribe [post]
func (h *handlers) unsubscribe(r *http.Request, in UnsubscribeRequest) (any, error) {
	res, err := h.deps.Registration.Unsubscribe(r.Context(), domain.Unsubscribe{
		Username:    in.Username,
		PhoneNumber: in.PhoneNumber,
		DeleteData:  in.DeleteData,
	})
	if err != nil {
		return nil, err
	}
	msg := "User unsubscribed successfully"
	if res.DeleteData {
		msg = "User unsubscribed and data deleted successfully"
	}
	return httpkit.Message(msg, res), nil
}
