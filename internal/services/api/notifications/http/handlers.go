// Package http exposes manual Twilio sends and notification diagnostics
package http

import (
	"context"
	"net/http"

	"wildwatch/internal/adapters/messaging/twilio"
	"wildwatch/internal/modkit/httpkit"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/services/subscribers/domain"
)

// Messenger is the Twilio surface the handlers use
type Messenger interface {
	SendSMS(ctx context.Context, to, body string) (twilio.Message, error)
	SendWhatsApp(ctx context.Context, to, body string) (twilio.Message, error)
	Status() twilio.Status
}

// Deps are the handler dependencies
type Deps struct {
	Messenger Messenger
	Directory domain.DirectoryPort
}

type handlers struct {
	deps Deps
}

// Register mounts the notification routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	httpkit.PostJSON(r, "/sms", h.sms)
	httpkit.PostJSON(r, "/whatsapp", h.whatsapp)
	httpkit.Get(r, "/users", h.users)
	httpkit.Get(r, "/twilio-config", h.twilioConfig)
}

// SendRequest is a one-off message
type SendRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,phone" example:"+27821234567"`
	Message     string `json:"message"     validate:"required"       example:"Test alert"`
}

// SendResponse carries the provider message id
type SendResponse struct {
	MessageID string `json:"messageId" example:"SM0123456789abcdef0123456789abcdef"`
}

// @Summary Send an SMS
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body SendRequest true "message"
// @Success 200 {object} SendResponse
// @Failure 400 {object} httpkit.Envelope "Twilio is not properly configured"
// @Router /api/notifications/sms [post]
func (h *handlers) sms(r *http.Request, in SendRequest) (any, error) {
	msg, err := h.deps.Messenger.SendSMS(r.Context(), in.PhoneNumber, in.Message)
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("SMS sending failed")
		return nil, err
	}
	return SendResponse{MessageID: msg.SID}, nil
}

// @Summary Send a WhatsApp message
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body SendRequest true "message"
// @Success 200 {object} SendResponse
// @Failure 400 {object} httpkit.Envelope "Twilio WhatsApp is not properly configured"
// @Router /api/notifications/whatsapp [post]
func (h *handlers) whatsapp(r *http.Request, in SendRequest) (any, error) {
	msg, err := h.deps.Messenger.SendWhatsApp(r.Context(), in.PhoneNumber, in.Message)
	if err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("WhatsApp sending failed")
		return nil, err
	}
	return SendResponse{MessageID: msg.SID}, nil
}

// @Summary Subscribed users with at least one channel on
// @Tags Notifications
// @Produce json
// @Success 200 {array} domain.User
// @Router /api/notifications/users [get]
func (h *handlers) users(r *http.Request) (any, error) {
	return h.deps.Directory.List(r.Context(), domain.ListFilter{AnyChannel: true, SubscribedOnly: true})
}

// @Summary Twilio configuration state
// @Description Never includes the account SID or auth token; the sender number is masked
// @Tags Notifications
// @Produce json
// @Success 200 {object} twilio.Status
// @Router /api/notifications/twilio-config [get]
func (h *handlers) twilioConfig(*http.Request) (any, error) {
	return h.deps.Messenger.Status(), nil
}
