package inmem

import (
	"context"
	"time"

	"github.com/ritmofit/ritmo"
)

type CommentStore struct {
	DB *DB
}

var _ ritmo.CommentStore = (*CommentStore)(nil)

func (s *CommentStore) Append(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error) {
	if err := ritmo.ValidateCommentText(text); err != nil {
		return ritmo.Comment{}, err
	}

	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	activity, ok := db.activities[activityId]
	if !ok {
		return ritmo.Comment{}, ritmo.ErrActivityNotFound
	}
	author, ok := db.users[userId]
	if !ok {
		return ritmo.Comment{}, ritmo.ErrUserNotFound
	}

	db.lastCommentId++
	comment := ritmo.Comment{
		Id:         db.lastCommentId,
		CreatedAt:  time.Now().UTC(),
		User:       author.Summary(),
		ActivityId: activityId,
		Text:       text,
	}
	db.comments[activityId] = append(db.comments[activityId], comment)
	activity.CommentsCount++

	return comment, nil
}

func (s *CommentStore) ByActivityId(ctx context.Context, activityId ritmo.ActivityId) ([]ritmo.Comment, error) {
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()

	if _, ok := db.activities[activityId]; !ok {
		return nil, ritmo.ErrActivityNotFound
	}

	stored := db.comments[activityId]
	comments := make([]ritmo.Comment, len(stored))
	// newest first
	for i, comment := range stored {
		comments[len(stored)-1-i] = comment
	}
	return comments, nil
}
