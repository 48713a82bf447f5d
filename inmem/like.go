package inmem

import (
	"context"
	"time"

	"github.com/ritmofit/ritmo"
)

type LikeStore struct {
	DB *DB
}

var _ ritmo.LikeStore = (*LikeStore)(nil)

func (s *LikeStore) Toggle(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (ritmo.ToggleResult, error) {
	db := s.DB

	// Serializes concurrent toggles touching the same activity. Toggles on
	// unrelated activities proceed in parallel.
	lock := db.activityLock(activityId)
	lock.Lock()
	defer lock.Unlock()

	db.mu.Lock()
	defer db.mu.Unlock()

	activity, ok := db.activities[activityId]
	if !ok {
		return ritmo.ToggleResult{}, ritmo.ErrActivityNotFound
	}

	key := likeKey{UserId: userId, ActivityId: activityId}
	if _, liked := db.likes[key]; liked {
		delete(db.likes, key)
		activity.LikesCount--
		if activity.LikesCount < 0 {
			activity.LikesCount = 0
		}
		return ritmo.ToggleResult{Liked: false, TotalLikes: activity.LikesCount}, nil
	}

	db.lastLikeId++
	db.likes[key] = ritmo.LikeEdge{
		Id:         db.lastLikeId,
		CreatedAt:  time.Now().UTC(),
		UserId:     userId,
		ActivityId: activityId,
	}
	activity.LikesCount++
	return ritmo.ToggleResult{Liked: true, TotalLikes: activity.LikesCount}, nil
}

func (s *LikeStore) HasLiked(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (bool, error) {
	if userId == ritmo.NoViewer {
		return false, nil
	}
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()
	_, liked := db.likes[likeKey{UserId: userId, ActivityId: activityId}]
	return liked, nil
}

// EdgeCount reports the live number of edges referencing the activity.
// Test helper for checking counter consistency.
func (s *LikeStore) EdgeCount(activityId ritmo.ActivityId) int {
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()
	n := 0
	for key := range db.likes {
		if key.ActivityId == activityId {
			n++
		}
	}
	return n
}
