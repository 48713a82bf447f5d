package ritmo

import (
	"context"
	"time"
)

type Session struct {
	Id        string
	UserId    UserId
	Token     string
	ExpiresAt time.Time
}

type SessionStore interface {
	RegisterNew(ctx context.Context, userId UserId) (Session, error)

	// ByToken resolves a bearer token to its session.
	// Returns ErrSessionNotFound for unknown or expired tokens.
	ByToken(token string) (Session, error)

	InvalidateByToken(token string) error
}
