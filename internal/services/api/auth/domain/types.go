// Package domain defines dashboard operator authentication
package domain

import (
	"context"
	"time"
)

// Credentials are what the login form posts
type Credentials struct {
	Username string `json:"username" validate:"required" example:"admin"`
	Password string `json:"password" validate:"required" example:"correct horse battery staple"`
}

// Session is an issued bearer token
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username"  example:"admin"`
	ExpiresAt time.Time `json:"expiresAt" example:"2025-03-14T17:12:09Z"`
}

// Authenticator checks credentials and issues sessions
type Authenticator interface {
	Verify(ctx context.Context, c Credentials) (Session, error)
}
