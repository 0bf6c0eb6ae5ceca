package http_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wildwatch/internal/platform/config"
	phttp "wildwatch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestServerRouterAdapters(t *testing.T) {
	optCalled := false
	srv := phttp.NewServer(config.New(), func(*chi.Mux) { optCalled = true })
	if !optCalled {
		t.Fatalf("option hook not called")
	}
	if srv.Addr() != ":9000" {
		t.Fatalf("default addr = %q", srv.Addr())
	}

	r := srv.Router()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-MW", "yes")
			next.ServeHTTP(w, req)
		})
	})
	r.Route("/users", func(ur phttp.Router) {
		ur.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = io.WriteString(w, chi.URLParam(req, "id"))
		})
		ur.Patch("/{id}", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusAccepted) })
	})
	r.Group(func(g phttp.Router) {
		g.With(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Inline", "1")
				next.ServeHTTP(w, req)
			})
		}).Post("/api/webhook/detection", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	})
	r.Put("/m", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Delete("/m", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	r.Handle("/raw", http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusTeapot) }))

	do := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}
	if rec := do(http.MethodGet, "/users/u-42"); rec.Body.String() != "u-42" || rec.Header().Get("X-MW") != "yes" {
		t.Fatalf("route param/mw failed: %q", rec.Body.String())
	}
	if rec := do(http.MethodPatch, "/users/u-42"); rec.Code != http.StatusAccepted {
		t.Fatalf("patch = %d", rec.Code)
	}
	if rec := do(http.MethodPost, "/api/webhook/detection"); rec.Header().Get("X-Inline") != "1" {
		t.Fatalf("With middleware not applied")
	}
	if rec := do(http.MethodPut, "/m"); rec.Code != http.StatusNoContent {
		t.Fatalf("put = %d", rec.Code)
	}
	if rec := do(http.MethodDelete, "/m"); rec.Code != http.StatusNoContent {
		t.Fatalf("delete = %d", rec.Code)
	}
	if rec := do(http.MethodGet, "/raw"); rec.Code != http.StatusTeapot {
		t.Fatalf("handle = %d", rec.Code)
	}
	if r.Mux() == nil {
		t.Fatalf("Mux() nil")
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	t.Setenv("CORE_API_ADDR", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop")
	}
}
