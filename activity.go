package ritmo

import (
	"context"
	"strings"
	"time"
)

type ActivityId int64

type Activity struct {
	Id              ActivityId
	CreatedAt       time.Time
	User            UserSummary
	Type            string
	Title           string
	DistanceMeters  float64
	DurationMinutes float64
	Calories        float64
	LikesCount      int
	CommentsCount   int
}

// NewActivity carries the caller-provided fields of an activity to create.
type NewActivity struct {
	UserId          UserId
	Type            string
	Title           string
	DistanceMeters  float64
	DurationMinutes float64
	Calories        float64
}

func (a NewActivity) Validate() error {
	switch {
	case a.UserId <= 0:
		return ValidationError{Field: "userId", Reason: "required"}
	case strings.TrimSpace(a.Type) == "":
		return ValidationError{Field: "type", Reason: "required"}
	case strings.TrimSpace(a.Title) == "":
		return ValidationError{Field: "title", Reason: "required"}
	case a.DistanceMeters < 0:
		return ValidationError{Field: "distanceMeters", Reason: "must not be negative"}
	case a.DurationMinutes < 0:
		return ValidationError{Field: "durationMinutes", Reason: "must not be negative"}
	case a.Calories < 0:
		return ValidationError{Field: "calories", Reason: "must not be negative"}
	}
	return nil
}

// FeedQuery selects one page of the activity feed.
type FeedQuery struct {
	// Type narrows the feed to a single activity type. Empty matches all.
	Type     string
	Page     int
	PageSize int
}

func (q FeedQuery) Validate() error {
	switch {
	case q.Page < 1:
		return ValidationError{Field: "page", Reason: "must be positive"}
	case q.PageSize < 1:
		return ValidationError{Field: "pageSize", Reason: "must be positive"}
	}
	return nil
}

func (q FeedQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// ActivityPage is one store page plus the total match count.
type ActivityPage struct {
	Items      []Activity
	TotalItems int
}

type ActivityStore interface {
	// Create persists the activity and applies the owner's and the company's
	// metric deltas in the same atomic unit. Either everything is visible
	// afterwards or nothing is.
	Create(ctx context.Context, activity NewActivity) (Activity, error)

	// ListPage returns activities ordered newest first. An unknown type
	// filter or a page past the end yields an empty page, not an error.
	ListPage(ctx context.Context, query FeedQuery) (ActivityPage, error)

	// IncrementLikes adjusts the cached like counter by delta (+1 or -1) and
	// returns the new value. The counter is clamped at zero.
	IncrementLikes(ctx context.Context, activityId ActivityId, delta int) (int, error)

	IncrementComments(ctx context.Context, activityId ActivityId) (int, error)
}
