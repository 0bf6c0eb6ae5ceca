package httpkit

import (
	"net/http"
	"time"

	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/platform/net/middleware"
)

// CommonStack returns the baseline stack every route gets, CORS first so preflights short-circuit
func CommonStack(cors middleware.CORSOptions, timeout time.Duration) []func(http.Handler) http.Handler {
	stack := []func(http.Handler) http.Handler{middleware.CORS(cors)}
	stack = append(stack, middleware.Defaults(timeout)...)
	return append(stack, middleware.NoCache())
}

// Auth wires the bearer middleware to the platform JSON writer
func Auth(v middleware.TokenVerifier) func(http.Handler) http.Handler {
	return middleware.RequireBearer(v, phttp.JSON)
}

// RateLimit limits requests per client IP on a route group; 0 disables it
func RateLimit(label string, requests int, window time.Duration) func(http.Handler) http.Handler {
	return middleware.RateLimit(label, requests, window)
}
