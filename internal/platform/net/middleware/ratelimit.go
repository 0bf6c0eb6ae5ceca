package middleware

import (
	"net/http"
	"time"

	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/metrics"
	pnet "wildwatch/internal/platform/net"

	"github.com/go-chi/httprate"
	json "github.com/goccy/go-json"
)

// RateLimit limits requests per client IP; 0 requests disables it.
// Rejections use the JSON envelope and are counted under label
func RateLimit(label string, requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RateLimited.WithLabelValues(label).Inc()
			status, body := pnet.Error(perr.Newf(perr.ErrorCodeTooManyRequests, "too many requests"), pnet.RequestID(r.Context()))
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(body)
		}),
	)
}
