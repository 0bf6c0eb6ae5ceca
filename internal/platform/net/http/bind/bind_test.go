package bind

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "wildwatch/internal/platform/errors"
)

type signup struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,basic_email"`
	Phone    string `json:"phoneNumber" validate:"required,phone"`
}

func post(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(body))
}

func TestParseJSONHappyPathToleratesUnknownFields(t *testing.T) {
	got, err := ParseJSON[signup](post(`{"username":"ranger","email":"r@park.org","phoneNumber":"+27821234567","extra":1}`))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Username != "ranger" || got.Phone != "+27821234567" {
		t.Fatalf("decoded %+v", got)
	}
}

func TestParseJSONDisallowUnknown(t *testing.T) {
	_, err := ParseJSON[signup](post(`{"username":"a","extra":1}`), JSONOptions{DisallowUnknown: true})
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("want JSON error, got %v", err)
	}
}

func TestParseJSONEmptyAndTrailing(t *testing.T) {
	if _, err := ParseJSON[signup](post("   ")); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("empty body: %v", err)
	}
	if _, err := ParseJSON[signup](post(""), JSONOptions{AllowEmptyBody: true}); err != nil {
		t.Fatalf("allowed empty body: %v", err)
	}
	if _, err := ParseJSON[signup](post(`{} {}`), JSONOptions{SkipValidation: true}); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("trailing data: %v", err)
	}
	if _, err := ParseJSON[signup](post(`{"username":`)); !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("broken json: %v", err)
	}
}

func TestParseJSONMaxBytes(t *testing.T) {
	_, err := ParseJSON[signup](post(`{"username":"abcdefghijklmnop"}`), JSONOptions{MaxBytes: 8})
	if !perr.IsCode(err, perr.ErrorCodeJSON) {
		t.Fatalf("oversized body: %v", err)
	}
}

func TestValidationAttachesField(t *testing.T) {
	cases := []struct {
		body  string
		field string
	}{
		{`{"email":"r@park.org","phoneNumber":"+27821234567"}`, "username"},
		{`{"username":"a","email":"nope","phoneNumber":"+27821234567"}`, "email"},
		{`{"username":"a","email":"r@park.org","phoneNumber":"12-34"}`, "phoneNumber"},
		{`{"username":"a","email":"r@park.org","phoneNumber":"+1234567890123456"}`, "phoneNumber"},
	}
	for _, tc := range cases {
		_, err := ParseJSON[signup](post(tc.body))
		e, ok := perr.As(err)
		if !ok || e.Code() != perr.ErrorCodeValidation {
			t.Fatalf("%s: want validation error, got %v", tc.body, err)
		}
		if e.Field() != tc.field {
			t.Fatalf("%s: field = %q, want %q", tc.body, e.Field(), tc.field)
		}
		if !strings.Contains(e.Message(), tc.field) {
			t.Fatalf("%s: message %q should name the field", tc.body, e.Message())
		}
	}
}

func TestPatterns(t *testing.T) {
	for _, ok := range []string{"a@b.c", "first.last@park.co.za"} {
		if !basicEmailRe.MatchString(ok) {
			t.Fatalf("%q should match", ok)
		}
	}
	for _, bad := range []string{"a@b", "plain", "@."} {
		if basicEmailRe.MatchString(bad) {
			t.Fatalf("%q should not match", bad)
		}
	}
	for _, ok := range []string{"1234567", "+123456789012345"} {
		if !phoneRe.MatchString(ok) {
			t.Fatalf("%q should match", ok)
		}
	}
	for _, bad := range []string{"123456", "+1234567890123456", "12 345 678"} {
		if phoneRe.MatchString(bad) {
			t.Fatalf("%q should not match", bad)
		}
	}
}
