package twilio

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	perr "wildwatch/internal/platform/errors"

	json "github.com/goccy/go-json"
)

// error codes that will never succeed on retry
const (
	codeInvalidTo     = 21211
	codeUnsubscribed  = 21610
	codeUnreachableTo = 21606
	codeNotWhatsApp   = 63003
)

// StatusError wraps non-2xx responses from Twilio
type StatusError struct {
	Status  int
	Code    int
	Message string
}

// Error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("twilio status %d code %d: %s", e.Status, e.Code, e.Message)
}

// HTTPStatus interface
func (e *StatusError) HTTPStatus() int { return e.Status }

// statusError decodes the Twilio error body and classifies it: 4xx is upstream rejection, the rest unavailable
func statusError(resp *http.Response) error {
	se := &StatusError{Status: resp.StatusCode}
	var body struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err := json.Unmarshal(raw, &body); err == nil {
		se.Code, se.Message = body.Code, body.Message
	} else {
		se.Message = string(raw)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return perr.Wrap(se, perr.ErrorCodeTooManyRequests, "twilio rate limited")
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return perr.Wrapf(se, perr.ErrorCodeUpstream, "twilio rejected message: %s", se.Message)
	default:
		return perr.Wrap(se, perr.ErrorCodeUnavailable, "twilio transient server error")
	}
}

// IsPermanent reports whether err is a rejection that retrying cannot fix
func IsPermanent(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Code {
	case codeInvalidTo, codeUnsubscribed, codeUnreachableTo, codeNotWhatsApp:
		return true
	}
	return se.Status >= 400 && se.Status < 500 && se.Status != http.StatusTooManyRequests
}

func drainAndClose(rc io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, io.LimitReader(rc, 512))
	return rc.Close()
}
