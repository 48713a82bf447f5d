package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type UserStore struct {
	ByIdFn func(ctx context.Context, userId ritmo.UserId) (ritmo.User, error)

	ByEmailFn func(ctx context.Context, email string) (ritmo.User, error)

	SummariesFn func(ctx context.Context) ([]ritmo.UserSummary, error)
}

func (s UserStore) ById(ctx context.Context, userId ritmo.UserId) (ritmo.User, error) {
	return s.ByIdFn(ctx, userId)
}

func (s UserStore) ByEmail(ctx context.Context, email string) (ritmo.User, error) {
	return s.ByEmailFn(ctx, email)
}

func (s UserStore) Summaries(ctx context.Context) ([]ritmo.UserSummary, error) {
	return s.SummariesFn(ctx)
}
