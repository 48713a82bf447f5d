package ritmo

import (
	"context"
	"strings"
	"time"
)

// Comments are append-only: no edits, no deletes.
type Comment struct {
	Id         int64
	CreatedAt  time.Time
	User       UserSummary
	ActivityId ActivityId
	Text       string
}

// ValidateCommentText rejects texts whose trimmed length is 2 or less.
func ValidateCommentText(text string) error {
	if len(strings.TrimSpace(text)) <= 2 {
		return ValidationError{Field: "text", Reason: "too short"}
	}
	return nil
}

type CommentStore interface {
	// Append stores the comment and increments the activity's comment
	// counter in the same atomic unit.
	Append(ctx context.Context, userId UserId, activityId ActivityId, text string) (Comment, error)

	// ByActivityId lists comments newest first with the commenter's public
	// identity joined in.
	ByActivityId(ctx context.Context, activityId ActivityId) ([]Comment, error)
}
