package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ritmofit/ritmo"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

type Like struct {
	bun.BaseModel `bun:"table:like"`

	Id         int64     `bun:",pk,autoincrement"`
	CreatedAt  time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UserId     int64     `bun:",notnull,unique:user_activity"`
	ActivityId int64     `bun:",notnull,unique:user_activity"`
}

func (l Like) ToDomain() ritmo.LikeEdge {
	return ritmo.LikeEdge{
		Id:         l.Id,
		CreatedAt:  l.CreatedAt,
		UserId:     ritmo.UserId(l.UserId),
		ActivityId: ritmo.ActivityId(l.ActivityId),
	}
}

type LikeStore struct {
	DB *bun.DB
}

var _ ritmo.LikeStore = (*LikeStore)(nil)

func (s *LikeStore) Toggle(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (ritmo.ToggleResult, error) {
	var result ritmo.ToggleResult
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Row lock on the activity serializes concurrent toggles per
		// activity, so edge existence and the cached counter move together.
		exists, err := tx.NewSelect().
			Model((*Activity)(nil)).
			Where("id=?", activityId).
			For("UPDATE").
			Exists(ctx)
		if err != nil {
			return fmt.Errorf("lock activity: %w", err)
		}
		if !exists {
			return ritmo.ErrActivityNotFound
		}

		like := new(Like)
		err = tx.NewSelect().
			Model(like).
			Where("user_id=? AND activity_id=?", userId, activityId).
			Scan(ctx)
		switch {
		case err == nil:
			_, err = tx.NewDelete().
				Model((*Like)(nil)).
				Where("id=?", like.Id).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("delete like: %w", err)
			}
			count, err := incrementCounter(ctx, tx, activityId,
				"likes_count = GREATEST(likes_count + ?, 0)", "likes_count", -1)
			if err != nil {
				return err
			}
			result = ritmo.ToggleResult{Liked: false, TotalLikes: count}
			return nil

		case errors.Is(err, sql.ErrNoRows):
			_, err = tx.NewInsert().
				Model(&Like{UserId: int64(userId), ActivityId: int64(activityId)}).
				Exec(ctx)
			if err != nil {
				if isUniqueViolation(err) {
					return ritmo.ErrDuplicateLike
				}
				return fmt.Errorf("insert like: %w", err)
			}
			count, err := incrementCounter(ctx, tx, activityId,
				"likes_count = GREATEST(likes_count + ?, 0)", "likes_count", 1)
			if err != nil {
				return err
			}
			result = ritmo.ToggleResult{Liked: true, TotalLikes: count}
			return nil

		default:
			return fmt.Errorf("select like: %w", err)
		}
	})
	if err != nil {
		return ritmo.ToggleResult{}, err
	}
	return result, nil
}

func (s *LikeStore) HasLiked(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId) (bool, error) {
	if userId == ritmo.NoViewer {
		return false, nil
	}
	liked, err := s.DB.NewSelect().
		Model((*Like)(nil)).
		Where("user_id=? AND activity_id=?", userId, activityId).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("select like: %w", err)
	}
	return liked, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Field('C') == "23505"
}
