package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "wildwatch/internal/platform/errors"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/services/detections/domain"

	"github.com/go-chi/chi/v5"
)

type fakeIngest struct {
	got []domain.NewRecord
	err error
}

func (f *fakeIngest) Ingest(_ context.Context, in domain.NewRecord) (domain.Record, error) {
	f.got = append(f.got, in)
	return domain.Record{DetectionID: in.DetectionID}, f.err
}

func post(t *testing.T, in domain.IngestPort, body string) (int, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), in)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/detection", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	mux.ServeHTTP(rec, req)
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestAcceptsNumberAndString(t *testing.T) {
	in := &fakeIngest{}
	for _, body := range []string{
		`{"id":"d1","animal":"Leopard","confidence":0.87,"formatted_time":"2025-03-14 05:12:09"}`,
		`{"id":"d2","animal":"Leopard","confidence":"0.5","formatted_time":"t","camera":"north"}`,
		`{"animal":"Owl","confidence":0,"formatted_time":"t"}`,
	} {
		code, out := post(t, in, body)
		if code != http.StatusOK || out["message"] != msgAccepted {
			t.Fatalf("%s: code=%d out=%v", body, code, out)
		}
	}
	if len(in.got) != 3 || in.got[1].Confidence != 0.5 || in.got[0].ClassName != "Leopard" || in.got[2].Confidence != 0 {
		t.Fatalf("ingested = %+v", in.got)
	}
}

func TestRejectsIncomplete(t *testing.T) {
	in := &fakeIngest{}
	for _, body := range []string{
		`{"confidence":0.8,"formatted_time":"t"}`,
		`{"animal":"Lion","formatted_time":"t"}`,
		`{"animal":"Lion","confidence":null,"formatted_time":"t"}`,
		`{"animal":"Lion","confidence":"high","formatted_time":"t"}`,
		`{"animal":"Lion","confidence":0.8}`,
		`not json`,
	} {
		code, out := post(t, in, body)
		if code != http.StatusBadRequest || out["message"] != msgInvalid || out["success"] != false {
			t.Fatalf("%s: code=%d out=%v", body, code, out)
		}
	}
	if len(in.got) != 0 {
		t.Fatalf("nothing should be ingested, got %d", len(in.got))
	}
}

func TestStorageFailureIsSwallowed(t *testing.T) {
	in := &fakeIngest{err: perr.WithField(perr.Newf(perr.ErrorCodeDuplicateKey, "detection exists"), "detection_id")}
	code, out := post(t, in, `{"id":"d1","animal":"Lion","confidence":0.9,"formatted_time":"t"}`)
	if code != http.StatusOK || out["success"] != true {
		t.Fatalf("code=%d out=%v", code, out)
	}
}
