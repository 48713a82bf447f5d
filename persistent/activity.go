package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ritmofit/ritmo"
	"github.com/uptrace/bun"
)

type Activity struct {
	bun.BaseModel `bun:"table:activity"`

	Id              int64     `bun:",pk,autoincrement"`
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UserId          int64     `bun:",notnull"`
	User            *User     `bun:"rel:belongs-to,join:user_id=id"`
	Type            string    `bun:",notnull"`
	Title           string    `bun:",notnull"`
	DistanceMeters  float64   `bun:",notnull"`
	DurationMinutes float64   `bun:",notnull"`
	Calories        float64   `bun:",notnull"`
	LikesCount      int       `bun:",notnull,default:0"`
	CommentsCount   int       `bun:",notnull,default:0"`
}

func (a Activity) ToDomain() ritmo.Activity {
	activity := ritmo.Activity{
		Id:              ritmo.ActivityId(a.Id),
		CreatedAt:       a.CreatedAt,
		Type:            a.Type,
		Title:           a.Title,
		DistanceMeters:  a.DistanceMeters,
		DurationMinutes: a.DurationMinutes,
		Calories:        a.Calories,
		LikesCount:      a.LikesCount,
		CommentsCount:   a.CommentsCount,
	}
	if a.User != nil {
		activity.User = a.User.Summary()
	} else {
		activity.User = ritmo.UserSummary{Id: ritmo.UserId(a.UserId)}
	}
	return activity
}

type ActivityStore struct {
	DB *bun.DB
}

var _ ritmo.ActivityStore = (*ActivityStore)(nil)

func (s *ActivityStore) Create(ctx context.Context, activity ritmo.NewActivity) (ritmo.Activity, error) {
	if err := activity.Validate(); err != nil {
		return ritmo.Activity{}, err
	}

	row := &Activity{
		UserId:          int64(activity.UserId),
		Type:            activity.Type,
		Title:           activity.Title,
		DistanceMeters:  activity.DistanceMeters,
		DurationMinutes: activity.DurationMinutes,
		Calories:        activity.Calories,
	}

	// Insert and metric deltas commit together or not at all.
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		owner := new(User)
		err := tx.NewSelect().
			Model(owner).
			Where(`"user"."id"=?`, activity.UserId).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ritmo.ErrUserNotFound
			}
			return fmt.Errorf("select owner: %w", err)
		}
		row.User = owner

		_, err = tx.NewInsert().
			Model(row).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert activity: %w", err)
		}

		_, _, err = applyActivityCreated(ctx, tx, activity.UserId, activity.Calories)
		if err != nil {
			return fmt.Errorf("apply metric deltas: %w", err)
		}
		return nil
	})
	if err != nil {
		return ritmo.Activity{}, err
	}
	return row.ToDomain(), nil
}

func (s *ActivityStore) ListPage(ctx context.Context, query ritmo.FeedQuery) (ritmo.ActivityPage, error) {
	if err := query.Validate(); err != nil {
		return ritmo.ActivityPage{}, err
	}

	var rows []Activity
	q := s.DB.NewSelect().
		Model(&rows).
		Relation("User").
		OrderExpr("activity.created_at DESC, activity.id DESC").
		Limit(query.PageSize).
		Offset(query.Offset())
	if query.Type != "" {
		q = q.Where("activity.type=?", query.Type)
	}
	totalItems, err := q.ScanAndCount(ctx)
	if err != nil {
		return ritmo.ActivityPage{}, fmt.Errorf("select activities: %w", err)
	}

	page := ritmo.ActivityPage{
		Items:      make([]ritmo.Activity, len(rows)),
		TotalItems: totalItems,
	}
	for i, row := range rows {
		page.Items[i] = row.ToDomain()
	}
	return page, nil
}

func (s *ActivityStore) IncrementLikes(ctx context.Context, activityId ritmo.ActivityId, delta int) (int, error) {
	// GREATEST keeps the cached counter from ever going negative.
	return incrementCounter(ctx, s.DB, activityId,
		"likes_count = GREATEST(likes_count + ?, 0)", "likes_count", delta)
}

func (s *ActivityStore) IncrementComments(ctx context.Context, activityId ritmo.ActivityId) (int, error) {
	return incrementCounter(ctx, s.DB, activityId,
		"comments_count = comments_count + ?", "comments_count", 1)
}

func incrementCounter(ctx context.Context, db bun.IDB, activityId ritmo.ActivityId,
	set string, returning string, delta int) (int, error) {
	var count int
	_, err := db.NewUpdate().
		Model((*Activity)(nil)).
		Set(set, delta).
		Where("id=?", activityId).
		Returning(returning).
		Exec(ctx, &count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ritmo.ErrActivityNotFound
		}
		return 0, fmt.Errorf("update counter: %w", err)
	}
	return count, nil
}
