package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type SessionStore struct {
	RegisterNewFn func(ctx context.Context, userId ritmo.UserId) (ritmo.Session, error)

	ByTokenFn func(token string) (ritmo.Session, error)

	InvalidateByTokenFn func(token string) error
}

func (s SessionStore) RegisterNew(ctx context.Context, userId ritmo.UserId) (ritmo.Session, error) {
	return s.RegisterNewFn(ctx, userId)
}

func (s SessionStore) ByToken(token string) (ritmo.Session, error) {
	return s.ByTokenFn(token)
}

func (s SessionStore) InvalidateByToken(token string) error {
	return s.InvalidateByTokenFn(token)
}
