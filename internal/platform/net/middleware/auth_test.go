package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/net"
	"wildwatch/internal/platform/net/middleware"
	phttp "wildwatch/internal/platform/net/http"
)

type verifier map[string]string

func (v verifier) VerifyToken(tok string) (string, error) {
	if sub, ok := v[tok]; ok {
		return sub, nil
	}
	return "", perr.Unauthorizedf("invalid bearer token")
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":   "abc",
		"bearer  xyz ": "xyz",
		"Basic abc":    "",
		"":             "",
	}
	for h, want := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", h)
		if got := middleware.BearerToken(req); got != want {
			t.Fatalf("BearerToken(%q) = %q, want %q", h, got, want)
		}
	}
}

func TestRequireBearer(t *testing.T) {
	var subject string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subject = net.Subject(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	mw := middleware.RequireBearer(verifier{"good": "ranger"}, phttp.JSON)

	do := func(auth string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		rr := httptest.NewRecorder()
		mw(h).ServeHTTP(rr, req)
		return rr.Code
	}

	if code := do(""); code != http.StatusUnauthorized {
		t.Fatalf("missing token code = %d", code)
	}
	if code := do("Bearer good"); code != http.StatusOK || subject != "ranger" {
		t.Fatalf("good token code=%d subject=%q", code, subject)
	}
	if code := do("Bearer nope"); code != http.StatusUnauthorized {
		t.Fatalf("bad token code = %d", code)
	}

	open := middleware.RequireBearer(nil, phttp.JSON)
	rr := httptest.NewRecorder()
	open(h).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("nil verifier should pass, got %d", rr.Code)
	}
}
