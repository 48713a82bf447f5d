package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type ActivityStore struct {
	CreateFn func(ctx context.Context, activity ritmo.NewActivity) (ritmo.Activity, error)

	ListPageFn func(ctx context.Context, query ritmo.FeedQuery) (ritmo.ActivityPage, error)

	IncrementLikesFn func(ctx context.Context, activityId ritmo.ActivityId, delta int) (int, error)

	IncrementCommentsFn func(ctx context.Context, activityId ritmo.ActivityId) (int, error)
}

func (s ActivityStore) Create(ctx context.Context, activity ritmo.NewActivity) (ritmo.Activity, error) {
	return s.CreateFn(ctx, activity)
}

func (s ActivityStore) ListPage(ctx context.Context, query ritmo.FeedQuery) (ritmo.ActivityPage, error) {
	return s.ListPageFn(ctx, query)
}

func (s ActivityStore) IncrementLikes(ctx context.Context, activityId ritmo.ActivityId, delta int) (int, error) {
	return s.IncrementLikesFn(ctx, activityId, delta)
}

func (s ActivityStore) IncrementComments(ctx context.Context, activityId ritmo.ActivityId) (int, error) {
	return s.IncrementCommentsFn(ctx, activityId)
}
