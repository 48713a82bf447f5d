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

type User struct {
	bun.BaseModel `bun:"table:user"`

	Id              int64     `bun:",pk,autoincrement"`
	CreatedAt       time.Time `bun:",nullzero,notnull,default:current_timestamp"`
	Name            string    `bun:",notnull"`
	Email           string    `bun:",notnull,unique"`
	PasswordHash    string    `bun:",notnull"`
	AvatarUrl       string
	Kind            string  `bun:",notnull,default:'user'"`
	TotalActivities int     `bun:",notnull,default:0"`
	TotalCalories   float64 `bun:",notnull,default:0"`
}

func (u User) ToDomain() ritmo.User {
	return ritmo.User{
		Id:           ritmo.UserId(u.Id),
		CreatedAt:    u.CreatedAt,
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		AvatarUrl:    u.AvatarUrl,
		Kind:         u.Kind,
		Metrics: ritmo.UserMetrics{
			TotalActivities: u.TotalActivities,
			TotalCalories:   u.TotalCalories,
		},
	}
}

func (u User) Summary() ritmo.UserSummary {
	return ritmo.UserSummary{
		Id:        ritmo.UserId(u.Id),
		Name:      u.Name,
		AvatarUrl: u.AvatarUrl,
	}
}

type UserStore struct {
	DB *bun.DB
}

var _ ritmo.UserStore = (*UserStore)(nil)

func (s *UserStore) ById(ctx context.Context, userId ritmo.UserId) (ritmo.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(`"user"."id"=?`, userId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ritmo.User{}, ritmo.ErrUserNotFound
		}
		return ritmo.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (ritmo.User, error) {
	user := new(User)
	err := s.DB.NewSelect().
		Model(user).
		Where(`email=?`, email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ritmo.User{}, ritmo.ErrUserNotFound
		}
		return ritmo.User{}, fmt.Errorf("select user: %w", err)
	}
	return user.ToDomain(), nil
}

func (s *UserStore) Summaries(ctx context.Context) ([]ritmo.UserSummary, error) {
	var users []User
	err := s.DB.NewSelect().
		Model(&users).
		Column("id", "name", "avatar_url").
		OrderExpr(`name ASC, id ASC`).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}

	summaries := make([]ritmo.UserSummary, len(users))
	for i, user := range users {
		summaries[i] = user.Summary()
	}
	return summaries, nil
}
