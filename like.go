package ritmo

import (
	"context"
	"time"
)

// LikeEdge marks that a user liked an activity. Edge existence is the
// source of truth for liked state; Activity.LikesCount is a cached
// projection maintained in the same atomic unit as the edge.
type LikeEdge struct {
	Id         int64
	CreatedAt  time.Time
	UserId     UserId
	ActivityId ActivityId
}

type ToggleResult struct {
	Liked      bool
	TotalLikes int
}

type LikeStore interface {
	// Toggle flips the (userId, activityId) edge: creates it and increments
	// the activity's like counter, or removes it and decrements. The
	// read-modify-write is serialized per activity, so two concurrent
	// toggles on the same pair cannot lose an update.
	Toggle(ctx context.Context, userId UserId, activityId ActivityId) (ToggleResult, error)

	// HasLiked reports edge existence. Trivially false for NoViewer.
	HasLiked(ctx context.Context, userId UserId, activityId ActivityId) (bool, error)
}
