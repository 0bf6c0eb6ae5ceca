// Package service checks operator credentials with bcrypt and issues HS256 session tokens
package service

import (
	"context"
	"crypto/subtle"
	"time"

	perr "wildwatch/internal/platform/errors"
	"wildwatch/internal/platform/logger"
	ptime "wildwatch/internal/platform/time"
	"wildwatch/internal/services/api/auth/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuer          = "wildwatch"
	minSecretLength = 32
	defaultTTL      = 12 * time.Hour
)

// Config holds the single operator account and signing settings
type Config struct {
	Username     string
	PasswordHash string
	Secret       []byte
	TTL          time.Duration
}

// Service implements domain.Authenticator and middleware.TokenVerifier
type Service struct {
	cfg   Config
	clock ptime.Clock
}

var _ domain.Authenticator = (*Service)(nil)

type claims struct {
	jwt.RegisteredClaims
}

// New validates cfg; the secret must be at least 32 bytes and the hash a bcrypt hash
func New(cfg Config, clock ptime.Clock) (*Service, error) {
	switch {
	case cfg.Username == "" || cfg.PasswordHash == "":
		return nil, perr.Validationf("operator username and password hash are required")
	case len(cfg.Secret) < minSecretLength:
		return nil, perr.Validationf("jwt secret must be at least %d bytes", minSecretLength)
	}
	if _, err := bcrypt.Cost([]byte(cfg.PasswordHash)); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeValidation, "password hash is not a bcrypt hash")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}
	if clock == nil {
		clock = ptime.System{}
	}
	return &Service{cfg: cfg, clock: clock}, nil
}

// Verify compares c against the operator account and issues a session
func (s *Service) Verify(ctx context.Context, c domain.Credentials) (domain.Session, error) {
	// the hash is always compared so unknown usernames cost the same
	userOK := subtle.ConstantTimeCompare([]byte(c.Username), []byte(s.cfg.Username)) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(c.Password))
	if !userOK || passErr != nil {
		logger.C(ctx).Warn().Str("username", c.Username).Msg("login rejected")
		return domain.Session{}, perr.Unauthorizedf("Invalid username or password")
	}

	now := s.clock.Now()
	exp := now.Add(s.cfg.TTL)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   s.cfg.Username,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}})
	signed, err := tok.SignedString(s.cfg.Secret)
	if err != nil {
		return domain.Session{}, perr.Wrap(err, perr.ErrorCodeUnknown, "sign session token")
	}
	return domain.Session{Token: signed, Username: s.cfg.Username, ExpiresAt: exp}, nil
}

// VerifyToken returns the subject of a valid, unexpired token signed by this service
func (s *Service) VerifyToken(token string) (string, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return s.cfg.Secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil || c.Subject == "" {
		return "", perr.Unauthorizedf("invalid or expired session")
	}
	return c.Subject, nil
}

// Disabled rejects every login; used when no operator account is configured
type Disabled struct{}

// Verify implements domain.Authenticator
func (Disabled) Verify(context.Context, domain.Credentials) (domain.Session, error) {
	return domain.Session{}, perr.Unavailablef("login is not configured")
}

// VerifyToken implements middleware.TokenVerifier
func (Disabled) VerifyToken(string) (string, error) {
	return "", perr.Unauthorizedf("login is not configured")
}
