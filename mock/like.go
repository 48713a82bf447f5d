package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type LikeStore struct {
	ToggleFn func(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (ritmo.ToggleResult, error)

	HasLikedFn func(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (bool, error)
}

func (s LikeStore) Toggle(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (ritmo.ToggleResult, error) {
	return s.ToggleFn(ctx, userId, activityId)
}

func (s LikeStore) HasLiked(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (bool, error) {
	return s.HasLikedFn(ctx, userId, activityId)
}
