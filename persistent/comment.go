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

type Comment struct {
	bun.BaseModel `bun:"table:comment"`

	Id         int64     `bun:",pk,autoincrement"`
	CreatedAt  time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	UserId     int64     `bun:",notnull"`
	User       *User     `bun:"rel:belongs-to,join:user_id=id"`
	ActivityId int64     `bun:",notnull"`
	Text       string    `bun:",notnull"`
}

func (c Comment) ToDomain() ritmo.Comment {
	comment := ritmo.Comment{
		Id:         c.Id,
		CreatedAt:  c.CreatedAt,
		ActivityId: ritmo.ActivityId(c.ActivityId),
		Text:       c.Text,
	}
	if c.User != nil {
		comment.User = c.User.Summary()
	} else {
		comment.User = ritmo.UserSummary{Id: ritmo.UserId(c.UserId)}
	}
	return comment
}

type CommentStore struct {
	DB *bun.DB
}

var _ ritmo.CommentStore = (*CommentStore)(nil)

func (s *CommentStore) Append(ctx context.Context, userId ritmo.UserId, activityId ritmo.ActivityId, text string) (ritmo.Comment, error) {
	if err := ritmo.ValidateCommentText(text); err != nil {
		return ritmo.Comment{}, err
	}

	row := &Comment{
		UserId:     int64(userId),
		ActivityId: int64(activityId),
		Text:       text,
	}

	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		// Same row lock as like toggles: insert and counter move together.
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

		author := new(User)
		err = tx.NewSelect().
			Model(author).
			Where(`"user"."id"=?`, userId).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ritmo.ErrUserNotFound
			}
			return fmt.Errorf("select author: %w", err)
		}
		row.User = author

		_, err = tx.NewInsert().
			Model(row).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		_, err = incrementCounter(ctx, tx, activityId,
			"comments_count = comments_count + ?", "comments_count", 1)
		return err
	})
	if err != nil {
		return ritmo.Comment{}, err
	}
	return row.ToDomain(), nil
}

func (s *CommentStore) ByActivityId(ctx context.Context, activityId ritmo.ActivityId) ([]ritmo.Comment, error) {
	exists, err := s.DB.NewSelect().
		Model((*Activity)(nil)).
		Where("id=?", activityId).
		Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("select activity: %w", err)
	}
	if !exists {
		return nil, ritmo.ErrActivityNotFound
	}

	var rows []Comment
	err = s.DB.NewSelect().
		Model(&rows).
		Relation("User").
		Where("comment.activity_id=?", activityId).
		OrderExpr("comment.created_at DESC, comment.id DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}

	comments := make([]ritmo.Comment, len(rows))
	for i, row := range rows {
		comments[i] = row.ToDomain()
	}
	return comments, nil
}
