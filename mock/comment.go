package mock

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type CommentStore struct {
	AppendFn func(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error)

	ByActivityIdFn func(ctx context.Context, activityId ritmo.ActivityId) ([]ritmo.Comment, error)
}

func (s CommentStore) Append(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error) {
	return s.AppendFn(ctx, userId, activityId, text)
}

func (s CommentStore) ByActivityId(ctx context.Context, activityId ritmo.ActivityId) ([]ritmo.Comment, error) {
	return s.ByActivityIdFn(ctx, activityId)
}
