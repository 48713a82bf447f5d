package inmem

import (
	"context"
	"sort"
	"time"

	"github.com/ritmofit/ritmo"
)

type ActivityStore struct {
	DB *DB
}

var _ ritmo.ActivityStore = (*ActivityStore)(nil)

func (s *ActivityStore) Create(ctx context.Context, activity ritmo.NewActivity) (ritmo.Activity, error) {
	if err := activity.Validate(); err != nil {
		return ritmo.Activity{}, err
	}

	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	owner, ok := db.users[activity.UserId]
	if !ok {
		return ritmo.Activity{}, ritmo.ErrUserNotFound
	}

	db.lastActivityId++
	created := ritmo.Activity{
		Id:              ritmo.ActivityId(db.lastActivityId),
		CreatedAt:       time.Now().UTC(),
		User:            owner.Summary(),
		Type:            activity.Type,
		Title:           activity.Title,
		DistanceMeters:  activity.DistanceMeters,
		DurationMinutes: activity.DurationMinutes,
		Calories:        activity.Calories,
	}
	db.activities[created.Id] = &created

	// Same atomic unit as the insert: both happen under the write lock.
	owner.Metrics.TotalActivities++
	owner.Metrics.TotalCalories += activity.Calories
	db.company.TotalActivities++
	db.company.TotalCalories += activity.Calories

	return created, nil
}

func (s *ActivityStore) ListPage(ctx context.Context, query ritmo.FeedQuery) (ritmo.ActivityPage, error) {
	if err := query.Validate(); err != nil {
		return ritmo.ActivityPage{}, err
	}

	db := s.DB
	db.mu.RLock()
	matched := make([]ritmo.Activity, 0, len(db.activities))
	for _, activity := range db.activities {
		if query.Type == "" || activity.Type == query.Type {
			matched = append(matched, *activity)
		}
	}
	db.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].Id > matched[j].Id
	})

	page := ritmo.ActivityPage{TotalItems: len(matched)}
	from := query.Offset()
	if from > len(matched) {
		from = len(matched)
	}
	to := from + query.PageSize
	if to > len(matched) {
		to = len(matched)
	}
	page.Items = matched[from:to]
	return page, nil
}

func (s *ActivityStore) IncrementLikes(ctx context.Context, activityId ritmo.ActivityId, delta int) (int, error) {
	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	activity, ok := db.activities[activityId]
	if !ok {
		return 0, ritmo.ErrActivityNotFound
	}
	activity.LikesCount += delta
	if activity.LikesCount < 0 {
		// clamped, see ritmo.ActivityStore contract
		activity.LikesCount = 0
	}
	return activity.LikesCount, nil
}

func (s *ActivityStore) IncrementComments(ctx context.Context, activityId ritmo.ActivityId) (int, error) {
	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	activity, ok := db.activities[activityId]
	if !ok {
		return 0, ritmo.ErrActivityNotFound
	}
	activity.CommentsCount++
	return activity.CommentsCount, nil
}
