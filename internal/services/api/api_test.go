package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wildwatch/internal/modkit/module"
	"wildwatch/internal/modkit/repokit/nopdb"
	"wildwatch/internal/platform/config"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/platform/store"
	notifymod "wildwatch/internal/services/notify/module"

	"github.com/go-chi/chi/v5"
)

func TestMountServesEveryModule(t *testing.T) {
	t.Cleanup(module.Reset)
	t.Setenv("NOTIFY_ENABLED", "false")

	mux := chi.NewRouter()
	notify := Mount(phttp.AdaptChi(mux), Options{
		Config:        config.New(),
		Store:         &store.Store{PG: nopdb.New()},
		EnableSwagger: true,
	})
	if notify == nil {
		t.Fatalf("Mount should return the notify pipeline")
	}

	cases := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodGet, "/meta/health", "", http.StatusOK},
		{http.MethodGet, "/meta/ready", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodGet, "/api/docs/doc.json", "", http.StatusOK},
		{http.MethodGet, "/api/auth/session", "", http.StatusUnauthorized},
		{http.MethodPost, "/api/auth/login", `{"username":"a","password":"b"}`, http.StatusServiceUnavailable},
		{http.MethodPost, "/api/webhook/detection", `{"id":"d1"}`, http.StatusBadRequest},
		{http.MethodGet, "/api/notifications/twilio-config", "", http.StatusOK},
		{http.MethodPost, "/api/upload", "", http.StatusBadRequest},
		{http.MethodGet, "/nope", "", http.StatusNotFound},
	}
	for _, c := range cases {
		req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
		if c.body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != c.want {
			t.Fatalf("%s %s = %d, want %d: %s", c.method, c.path, rec.Code, c.want, rec.Body.String())
		}
	}

	if p, ok := module.PortsAs[notifymod.Ports]("notify"); !ok || p.Publisher != nil {
		t.Fatalf("notify ports = %+v, %v", p, ok)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if err := notify.Run(ctx); err != nil {
		t.Fatalf("disabled notify Run = %v", err)
	}
}
