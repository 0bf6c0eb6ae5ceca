package swaggerkit

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "wildwatch/internal/platform/net/http"
	kit "wildwatch/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

func TestServeDocJSONAddsDefaults(t *testing.T) {
	kit.Swap(t, &docReader, func() string {
		return `{"swagger":"2.0","info":{"title":"Wildwatch API"},"paths":{"/users":{"get":{"responses":{"200":{"description":"ok"}}}}}}`
	})
	Register(func(spec map[string]any) { spec["x-mutated"] = true })
	t.Setenv("CORE_API_DOCS_TITLE_SUFFIX", "(dev)")

	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if spec["openapi"] != "3.0.3" || spec["swagger"] != nil || spec["x-mutated"] != true {
		t.Fatalf("spec header = %v", spec)
	}
	if title := spec["info"].(map[string]any)["title"]; title != "Wildwatch API (dev)" {
		t.Fatalf("title = %v", title)
	}
	resps := spec["paths"].(map[string]any)["/users"].(map[string]any)["get"].(map[string]any)["responses"].(map[string]any)
	if resps["500"] == nil || resps["400"] == nil || resps["200"] == nil {
		t.Fatalf("responses = %v", resps)
	}
}

func TestServeDocJSONParseError(t *testing.T) {
	kit.Swap(t, &docReader, func() string { return "{" })
	rec := httptest.NewRecorder()
	serveDocJSON()(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestMountDisabledAndEnabled(t *testing.T) {
	mux := chi.NewRouter()
	Mount(phttp.AdaptChi(mux), false)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs status = %d", rec.Code)
	}

	mux = chi.NewRouter()
	Mount(phttp.AdaptChi(mux), true)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/api/webhook/detection") {
		t.Fatalf("doc.json status=%d body=%s", rec.Code, rec.Body.String())
	}
}
