package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type MetricsStore struct {
	ApplyActivityCreatedFn func(ctx context.Context, userId ritmo.UserId, calories float64) (ritmo.UserMetrics, ritmo.CompanyMetrics, error)

	RecomputeUserFn func(ctx context.Context, userId ritmo.UserId) (ritmo.UserMetrics, error)

	CompanyFn func(ctx context.Context) (ritmo.CompanyMetrics, error)
}

func (s MetricsStore) ApplyActivityCreated(ctx context.Context, userId ritmo.UserId, calories float64) (ritmo.UserMetrics, ritmo.CompanyMetrics, error) {
	return s.ApplyActivityCreatedFn(ctx, userId, calories)
}

func (s MetricsStore) RecomputeUser(ctx context.Context, userId ritmo.UserId) (ritmo.UserMetrics, error) {
	return s.RecomputeUserFn(ctx, userId)
}

func (s MetricsStore) Company(ctx context.Context) (ritmo.CompanyMetrics, error) {
	return s.CompanyFn(ctx)
}
