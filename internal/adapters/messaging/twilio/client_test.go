package twilio

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	perr "wildwatch/internal/platform/errors"

	"github.com/jarcoal/httpmock"
)

const (
	testBase = "https://twilio.test"
	testURL  = testBase + "/2010-04-01/Accounts/AC123/Messages.json"
)

func newTestClient(t *testing.T, o Options) (*Client, *httpmock.MockTransport) {
	t.Helper()
	o.BaseURL = testBase
	if o.RPS == 0 {
		o.RPS = 1000
	}
	c := NewClient(o)
	mt := httpmock.NewMockTransport()
	c.http.Transport = mt
	return c, mt
}

func configured() Options {
	return Options{AccountSID: "AC123", AuthToken: "tok", PhoneNumber: "+15550001111", WhatsAppNumber: "+15550002222"}
}

func TestSendSMSPostsForm(t *testing.T) {
	c, mt := newTestClient(t, configured())
	mt.RegisterResponder(http.MethodPost, testURL, func(r *http.Request) (*http.Response, error) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "tok" {
			t.Errorf("basic auth = %q/%q/%v", user, pass, ok)
		}
		_ = r.ParseForm()
		if r.PostForm.Get("From") != "+15550001111" || r.PostForm.Get("To") != "+15557654321" || r.PostForm.Get("Body") != "fox" {
			t.Errorf("form = %v", r.PostForm)
		}
		return httpmock.NewStringResponse(http.StatusCreated, `{"sid":"SM1","status":"queued"}`), nil
	})

	msg, err := c.SendSMS(context.Background(), "+15557654321", "fox")
	if err != nil || msg.SID != "SM1" || msg.Status != "queued" {
		t.Fatalf("SendSMS = %+v, %v", msg, err)
	}
}

func TestSendWhatsAppPrefixesNumbers(t *testing.T) {
	c, mt := newTestClient(t, configured())
	var form url.Values
	mt.RegisterResponder(http.MethodPost, testURL, func(r *http.Request) (*http.Response, error) {
		_ = r.ParseForm()
		form = r.PostForm
		return httpmock.NewStringResponse(http.StatusCreated, `{"sid":"SM2"}`), nil
	})

	if _, err := c.SendWhatsApp(context.Background(), "whatsapp:+15557654321", "owl"); err != nil {
		t.Fatalf("SendWhatsApp: %v", err)
	}
	if form.Get("From") != "whatsapp:+15550002222" || form.Get("To") != "whatsapp:+15557654321" {
		t.Fatalf("form = %v", form)
	}
}

func TestNotConfigured(t *testing.T) {
	c, mt := newTestClient(t, Options{AccountSID: "AC123", AuthToken: "tok"})
	_, err := c.SendSMS(context.Background(), "+1555", "x")
	if !perr.IsCode(err, perr.ErrorCodeUpstream) || perr.WireFrom(err).Message != "Twilio is not properly configured" {
		t.Fatalf("SendSMS err = %v", err)
	}
	_, err = c.SendWhatsApp(context.Background(), "+1555", "x")
	if perr.WireFrom(err).Message != "Twilio WhatsApp is not properly configured" {
		t.Fatalf("SendWhatsApp err = %v", err)
	}
	if mt.GetTotalCallCount() != 0 {
		t.Fatalf("unconfigured client must not call the provider")
	}
}

func TestRejectionIsPermanent(t *testing.T) {
	c, mt := newTestClient(t, configured())
	mt.RegisterResponder(http.MethodPost, testURL,
		httpmock.NewStringResponder(http.StatusBadRequest, `{"code":21606,"message":"not a valid sender"}`))

	_, err := c.SendSMS(context.Background(), "+15557654321", "x")
	if !IsPermanent(err) || !perr.IsCode(err, perr.ErrorCodeUpstream) {
		t.Fatalf("err = %v", err)
	}
}

func TestServerErrorIsTransient(t *testing.T) {
	c, mt := newTestClient(t, configured())
	mt.RegisterResponder(http.MethodPost, testURL, httpmock.NewStringResponder(http.StatusServiceUnavailable, "down"))

	_, err := c.SendSMS(context.Background(), "+15557654321", "x")
	if IsPermanent(err) || !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
}

func TestBreakerOpensAfterTransientFailures(t *testing.T) {
	o := configured()
	o.TripAfter = 2
	o.OpenTimeout = time.Minute
	c, mt := newTestClient(t, o)
	mt.RegisterResponder(http.MethodPost, testURL, httpmock.NewStringResponder(http.StatusBadGateway, ""))

	for range 2 {
		_, _ = c.SendSMS(context.Background(), "+15557654321", "x")
	}
	_, err := c.SendSMS(context.Background(), "+15557654321", "x")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("err = %v", err)
	}
	if mt.GetTotalCallCount() != 2 {
		t.Fatalf("open breaker should short-circuit, calls = %d", mt.GetTotalCallCount())
	}
}

func TestStatusMasksNumber(t *testing.T) {
	c := NewClient(configured())
	st := c.Status()
	if !st.IsConfigured || !st.WhatsAppConfigured || st.PhoneNumber == nil || *st.PhoneNumber != "+15...1111" {
		t.Fatalf("Status = %+v", st)
	}
	if st := NewClient(Options{}).Status(); st.IsConfigured || st.PhoneNumber != nil {
		t.Fatalf("empty Status = %+v", st)
	}
}

func TestSendValidatesInput(t *testing.T) {
	c, _ := newTestClient(t, configured())
	_, err := c.SendSMS(context.Background(), " ", "x")
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("err = %v", err)
	}
}
