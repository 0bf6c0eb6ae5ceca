package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wildwatch/internal/adapters/messaging/twilio"
	"wildwatch/internal/modkit/repokit/nopdb"
	phttp "wildwatch/internal/platform/net/http"
	"wildwatch/internal/services/subscribers/domain"
	"wildwatch/internal/services/subscribers/repo/repotest"
	"wildwatch/internal/services/subscribers/service"

	"github.com/go-chi/chi/v5"
	"github.com/jarcoal/httpmock"
)

const twilioMessages = "https://api.twilio.test/2010-04-01/Accounts/AC123/Messages.json"

func setup(t *testing.T, opts twilio.Options) (http.Handler, *httpmock.MockTransport) {
	t.Helper()
	opts.BaseURL = "https://api.twilio.test"
	client := twilio.NewClient(opts)
	mock := httpmock.NewMockTransport()
	client.SetTransport(mock)

	mem := repotest.NewMemory()
	mem.Seed(domain.User{Username: "on", IsSubscribed: true, Notifications: domain.Notifications{SMSAlerts: true}})
	mem.Seed(domain.User{Username: "gone", IsSubscribed: false, Notifications: domain.Notifications{SMSAlerts: true}})
	mem.Seed(domain.User{Username: "off", IsSubscribed: true})

	mux := chi.NewRouter()
	Register(phttp.AdaptChi(mux), Deps{Messenger: client, Directory: service.New(nopdb.New(), mem.Binder())})
	return mux, mock
}

func configured() twilio.Options {
	return twilio.Options{AccountSID: "AC123", AuthToken: "tok", PhoneNumber: "+15005550006", WhatsAppNumber: "+14155238886"}
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, map[string]any) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %s: %v", rec.Body.String(), err)
	}
	return rec.Code, out
}

func TestSendSMS(t *testing.T) {
	h, mock := setup(t, configured())
	mock.RegisterResponder(http.MethodPost, twilioMessages,
		httpmock.NewStringResponder(http.StatusCreated, `{"sid":"SM42","status":"queued"}`))

	code, out := do(t, h, http.MethodPost, "/sms", `{"phoneNumber":"+27821234567","message":"hello"}`)
	if code != http.StatusOK || out["data"].(map[string]any)["messageId"] != "SM42" {
		t.Fatalf("code=%d out=%v", code, out)
	}
	if mock.GetTotalCallCount() != 1 {
		t.Fatalf("calls = %d", mock.GetTotalCallCount())
	}
}

func TestSendWhenUnconfigured(t *testing.T) {
	h, mock := setup(t, twilio.Options{})
	code, out := do(t, h, http.MethodPost, "/sms", `{"phoneNumber":"+27821234567","message":"hello"}`)
	if code != http.StatusBadRequest || out["message"] != "Twilio is not properly configured" {
		t.Fatalf("sms: code=%d out=%v", code, out)
	}
	code, out = do(t, h, http.MethodPost, "/whatsapp", `{"phoneNumber":"+27821234567","message":"hello"}`)
	if code != http.StatusBadRequest || out["message"] != "Twilio WhatsApp is not properly configured" {
		t.Fatalf("whatsapp: code=%d out=%v", code, out)
	}
	if mock.GetTotalCallCount() != 0 {
		t.Fatalf("no request should reach Twilio")
	}
}

func TestSendValidates(t *testing.T) {
	h, _ := setup(t, configured())
	code, out := do(t, h, http.MethodPost, "/sms", `{"phoneNumber":"call me","message":"hello"}`)
	if code != http.StatusBadRequest || out["field"] != "phoneNumber" {
		t.Fatalf("code=%d out=%v", code, out)
	}
}

func TestUsersAndConfig(t *testing.T) {
	h, _ := setup(t, configured())
	code, out := do(t, h, http.MethodGet, "/users", "")
	users, _ := out["data"].([]any)
	if code != http.StatusOK || len(users) != 1 || users[0].(map[string]any)["username"] != "on" {
		t.Fatalf("users: code=%d out=%v", code, out)
	}

	code, out = do(t, h, http.MethodGet, "/twilio-config", "")
	cfg := out["data"].(map[string]any)
	if code != http.StatusOK || cfg["isConfigured"] != true || cfg["phoneNumber"] != "+15...0006" || cfg["whatsappConfigured"] != true {
		t.Fatalf("config: code=%d out=%v", code, out)
	}
	if strings.Contains(fmtJSON(out), "AC123") || strings.Contains(fmtJSON(out), "tok") {
		t.Fatalf("secrets leaked: %v", out)
	}
}

func fmtJSON(v any) string {
	b, _ := json.Marshal(v)
	return string(b)
}
