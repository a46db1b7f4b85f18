// Package service defines the interfaces of external collaborators the
// core consumes but never reimplements.
package service

import (
	"context"

	"pocketlib/internal/errors"
)

// Session is the result of validating a bearer credential.
type Session struct {
	UserID string
	AppID  string
}

// SessionService validates opaque bearer credentials against the external
// session backend.
type SessionService interface {
	Validate(ctx context.Context, accessToken string) (*Session, error)
}

// Typed credential failures, distinguished so the middleware can map each
// to its own error code family.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTokenMalformed  = errors.New("access token malformed")
)
