package bind

import (
	"net/http"
	"strconv"
	"strings"

	perr "wildwatch/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
)

// Param returns a trimmed path parameter from the route pattern
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// QueryInt reads a positive integer query parameter; def when absent.
// Zero, negative or malformed values are a Validation error naming the parameter
func QueryInt(r *http.Request, name string, def int) (int, error) {
	s := strings.TrimSpace(r.URL.Query().Get(name))
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, perr.WithField(perr.Validationf("%s must be a positive integer", name), name)
	}
	return n, nil
}

// QueryString returns the trimmed query value
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryJSON decodes a JSON-encoded query parameter into T and validates it.
// ok is false when the parameter is absent
func QueryJSON[T any](r *http.Request, name string) (v T, ok bool, err error) {
	s := QueryString(r, name)
	if s == "" {
		return v, false, nil
	}
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return v, true, perr.WithField(perr.Validationf("%s must be valid JSON", name), name)
	}
	if err := Struct(v); err != nil {
		return v, true, err
	}
	return v, true, nil
}
