package middleware

import (
	"net/http"
	"strings"

	perr "wildwatch/internal/platform/errors"
	pnet "wildwatch/internal/platform/net"
)

// TokenVerifier turns a bearer token into the operator subject it was issued to
type TokenVerifier interface {
	VerifyToken(token string) (subject string, err error)
}

// BearerToken extracts the token from an Authorization header
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(h) < 7 || !strings.EqualFold(h[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(h[7:])
}

// RequireBearer rejects requests without a valid bearer token and stores the subject on context.
// A nil verifier lets everything through
func RequireBearer(v TokenVerifier, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				next.ServeHTTP(w, r)
				return
			}
			tok := BearerToken(r)
			if tok == "" {
				status, body := pnet.Error(perr.Unauthorizedf("missing bearer token"), pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			sub, err := v.VerifyToken(tok)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r.WithContext(pnet.WithSubject(r.Context(), sub)))
		})
	}
}
