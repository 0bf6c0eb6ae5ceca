package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wildwatch/internal/platform/net/middleware"
)

func TestRateLimit(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	lim := middleware.RateLimit("test.webhook", 2, time.Minute)(h)

	codes := make([]int, 0, 3)
	for range 3 {
		req := httptest.NewRequest(http.MethodPost, "/api/webhook/detection", nil)
		req.RemoteAddr = "10.0.0.9:5555"
		rr := httptest.NewRecorder()
		lim.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	if codes[0] != 200 || codes[1] != 200 || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	off := middleware.RateLimit("off", 0, time.Minute)(h)
	for range 5 {
		rr := httptest.NewRecorder()
		off.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("disabled limiter rejected: %d", rr.Code)
		}
	}
}
