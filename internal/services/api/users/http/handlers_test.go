package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wildwatch/internal/modkit/repokit/nopdb"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/services/subscribers/domain"
	"wildwatch/internal/services/subscribers/repo/repotest"
	"wildwatch/internal/services/subscribers/service"

	"github.com/go-chi/chi/v5"
)

func setup(t *testing.T) (http.Handler, domain.User, domain.User) {
	t.Helper()
	mem := repotest.NewMemory()
	quiet := mem.Seed(domain.User{Username: "quiet", Email: "q@example.org", PhoneNumber: "+27820000001", AlertFrequency: 5, IsSubscribed: true})
	loud := mem.Seed(domain.User{
		Username: "loud", Email: "l@example.org", PhoneNumber: "+27820000002", AlertFrequency: 5, IsSubscribed: true,
		Notifications: domain.Notifications{SMSAlerts: true},
	})
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), service.New(nopdb.New(), mem.Binder()))
	return mux, quiet, loud
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestListAndNotified(t *testing.T) {
	h, _, loud := setup(t)
	if code, out := do(t, h, http.MethodGet, "/", ""); code != http.StatusOK || len(out["data"].([]any)) != 2 {
		t.Fatalf("list: code=%d out=%v", code, out)
	}
	code, out := do(t, h, http.MethodGet, "/notified", "")
	users, _ := out["data"].([]any)
	if code != http.StatusOK || len(users) != 1 || users[0].(map[string]any)["id"] != loud.ID {
		t.Fatalf("notified: code=%d out=%v", code, out)
	}
}

func TestGetAndSettings(t *testing.T) {
	h, quiet, _ := setup(t)
	if code, out := do(t, h, http.MethodGet, "/"+quiet.ID, ""); code != http.StatusOK || out["data"].(map[string]any)["username"] != "quiet" {
		t.Fatalf("get: code=%d out=%v", code, out)
	}
	code, out := do(t, h, http.MethodGet, "/"+quiet.ID+"/notifications", "")
	if code != http.StatusOK || out["data"].(map[string]any)["alertFrequency"].(float64) != 5 {
		t.Fatalf("settings: code=%d out=%v", code, out)
	}
	if code, _ := do(t, h, http.MethodGet, "/00000000-0000-0000-0000-000000000000/notifications", ""); code != http.StatusNotFound {
		t.Fatalf("missing user code=%d", code)
	}
}

func TestPatchSettings(t *testing.T) {
	h, quiet, _ := setup(t)
	code, out := do(t, h, http.MethodPatch, "/"+quiet.ID+"/notifications",
		`{"notifications":{"popNotifications":true,"smsAlerts":false,"whatsappAlerts":true},"alertFrequency":"1hr"}`)
	if code != http.StatusOK {
		t.Fatalf("patch: code=%d out=%v", code, out)
	}
	u := out["data"].(map[string]any)
	n := u["notifications"].(map[string]any)
	if u["alertFrequency"].(float64) != 60 || n["whatsappAlerts"] != true || n["popNotifications"] != true {
		t.Fatalf("user = %v", u)
	}

	code, out = do(t, h, http.MethodPatch, "/"+quiet.ID+"/notifications", `{"alertFrequency":30}`)
	if code != http.StatusOK || out["data"].(map[string]any)["notifications"].(map[string]any)["whatsappAlerts"] != true {
		t.Fatalf("partial patch: code=%d out=%v", code, out)
	}

	if code, _ := do(t, h, http.MethodPatch, "/"+quiet.ID+"/notifications", `{"alertFrequency":7}`); code != http.StatusBadRequest {
		t.Fatalf("bad frequency code=%d", code)
	}
}
