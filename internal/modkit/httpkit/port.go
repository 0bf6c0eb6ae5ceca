package httpkit

import (
	perrs "wildwatch/internal/platform/errors"
)

// VerifyFunc turns a bearer token into a subject
type VerifyFunc func(token string) (subject string, err error)

// Port implements middleware.TokenVerifier by delegating to a VerifyFunc
type Port struct {
	verify VerifyFunc
}

// NewPortFunc builds a Port from a simple verifier function
func NewPortFunc(fn VerifyFunc) *Port {
	return &Port{verify: fn}
}

// VerifyToken normalises every failure to an unauthorized error
func (p *Port) VerifyToken(token string) (string, error) {
	if p == nil || p.verify == nil || token == "" {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	sub, err := p.verify(token)
	if err != nil || sub == "" {
		return "", perrs.Unauthorizedf("invalid bearer token")
	}
	return sub, nil
}
