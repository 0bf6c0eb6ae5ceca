// Package http receives detections from the inference process
package http

import (
	"net/http"

	"wildwatch/internal/modkit/httpkit"
	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	"wildwatch/internal/platform/net/http/bind"
	"wildwatch/internal/services/detections/domain"
)

const (
	msgInvalid  = "Invalid detection data"
	msgAccepted = "Detection received, notifications will be sent"
)

type handlers struct {
	in domain.IngestPort
}

// Register mounts the webhook routes
func Register(r httpkit.Router, in domain.IngestPort) {
	h := &handlers{in: in}
	httpkit.Post(r, "/detection", h.detection)
}

// @Summary Receive a detection
// @Description Stores the detection and queues subscriber alerts. Storage failures are logged, not returned
// @Tags Webhook
// @Accept json
// @Produce json
// @Param payload body Payload true "detection"
// @Success 200 {object} httpkit.Envelope
// @Router /api/webhook/detection [post]
func (h *handlers) detection(r *http.Request) (any, error) {
	p, err := bind.ParseJSON[Payload](r, bind.JSONOptions{MaxBytes: 64 << 10, SkipValidation: true})
	if err != nil || !p.complete() {
		return nil, perr.Validationf(msgInvalid)
	}

	ctx := r.Context()
	log := logger.C(ctx)
	log.Info().Str("animal", p.Animal).Float64("confidence", float64(*p.Confidence)).Msg("received detection webhook")

	rec, err := h.in.Ingest(ctx, domain.NewRecord{
		DetectionID:   p.ID,
		FormattedTime: p.FormattedTime,
		ClassName:     p.Animal,
		Confidence:    float64(*p.Confidence),
	})
	if err != nil {
		log.Error().Err(err).Str("detection_id", p.ID).Msg("store detection failed")
	} else {
		log.Debug().Str("detection_id", rec.DetectionID).Msg("detection stored")
	}
	return httpkit.Message(msgAccepted, nil), nil
}
