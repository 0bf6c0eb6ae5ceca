package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	perr "wildwatch/internal/platform/errors"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/services/detections/domain"

	"github.com/go-chi/chi/v5"
)

type fakeQuery struct {
	err  error
	last domain.ListQuery
}

func (f *fakeQuery) Totals(context.Context) (domain.Totals, error) {
	return domain.Totals{TotalDetections: domain.CountStat{Count: 3}}, f.err
}
func (f *fakeQuery) Overview(context.Context) (domain.Overview, error) { return domain.Overview{}, f.err }
func (f *fakeQuery) Breakdown(context.Context) ([]domain.BreakdownRow, error) {
	return []domain.BreakdownRow{}, f.err
}
func (f *fakeQuery) Data(context.Context) ([]domain.DataRow, error) { return []domain.DataRow{}, f.err }
func (f *fakeQuery) List(_ context.Context, q domain.ListQuery) (domain.ListPage, error) {
	f.last = q
	return domain.ListPage{Page: 1, PageSize: 20, Total: 0}, f.err
}

func serve(t *testing.T, q domain.QueryPort, target string) (int, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), q)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, body
}

func TestStatsBox(t *testing.T) {
	code, body := serve(t, &fakeQuery{}, "/stats-box")
	if code != http.StatusOK || body["success"] != true {
		t.Fatalf("code=%d body=%v", code, body)
	}
	data := body["data"].(map[string]any)
	if data["totalDetections"].(map[string]any)["count"].(float64) != 3 {
		t.Fatalf("data = %v", data)
	}
}

func TestStoreFailureKeepsStatus(t *testing.T) {
	q := &fakeQuery{err: perr.DBf("connection reset")}
	for path, msg := range map[string]string{
		"/stats-box": "Failed to fetch statistics",
		"/overview":  "Failed to fetch overview data",
		"/breakdown": "Failed to fetch breakdown data",
		"/data":      "Failed to fetch detection data",
		"/list":      "Failed to fetch detection list",
	} {
		code, body := serve(t, q, path)
		if code != http.StatusInternalServerError || body["message"] != msg || body["success"] != false {
			t.Fatalf("%s: code=%d body=%v", path, code, body)
		}
	}
}

func TestListParsesQuery(t *testing.T) {
	q := &fakeQuery{}
	v := url.Values{}
	v.Set("page", "3")
	v.Set("pageSize", "50")
	v.Set("search", "leo")
	v.Set("sort", `{"field":"className","sort":"asc"}`)
	code, body := serve(t, q, "/list?"+v.Encode())
	if code != http.StatusOK {
		t.Fatalf("code=%d body=%v", code, body)
	}
	if q.last.Page != 3 || q.last.PageSize != 50 || q.last.Search != "leo" {
		t.Fatalf("query = %+v", q.last)
	}
	if q.last.Sort.Column != "class_name" || !q.last.Sort.Asc {
		t.Fatalf("sort = %+v", q.last.Sort)
	}
	if body["message"] != "Retrieved 0 detections (page 1 of 0)" {
		t.Fatalf("message = %v", body["message"])
	}
}

func TestListRejectsBadParams(t *testing.T) {
	for _, target := range []string{
		"/list?page=0",
		"/list?pageSize=abc",
		"/list?sort=" + url.QueryEscape(`{"field":"password"}`),
		"/list?sort=" + url.QueryEscape(`{"field":"createdAt","sort":"sideways"}`),
		"/list?sort=" + url.QueryEscape(`not json`),
	} {
		code, body := serve(t, &fakeQuery{}, target)
		if code != http.StatusBadRequest {
			t.Fatalf("%s: code=%d body=%v", target, code, body)
		}
	}
}
