package persistent

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ritmofit/ritmo"
	"github.com/uptrace/bun"
)

// The single tenant row. There is exactly one company.
const companyId = 1

type Company struct {
	bun.BaseModel `bun:"table:company"`

	Id              int64  `bun:",pk,autoincrement"`
	Name            string `bun:",notnull"`
	LogoUrl         string
	TotalActivities int     `bun:",notnull,default:0"`
	TotalCalories   float64 `bun:",notnull,default:0"`
}

func (c Company) ToDomain() ritmo.CompanyMetrics {
	return ritmo.CompanyMetrics{
		Name:            c.Name,
		LogoUrl:         c.LogoUrl,
		TotalActivities: c.TotalActivities,
		TotalCalories:   c.TotalCalories,
	}
}

type MetricsStore struct {
	DB *bun.DB
}

var _ ritmo.MetricsStore = (*MetricsStore)(nil)

// applyActivityCreated adds one activity and its calories to the owner's and
// the company's totals. Runs on the caller's transaction so activity insert
// and metric deltas commit or roll back together.
func applyActivityCreated(ctx context.Context, tx bun.IDB, userId ritmo.UserId, calories float64) (ritmo.UserMetrics, ritmo.CompanyMetrics, error) {
	var user ritmo.UserMetrics
	_, err := tx.NewUpdate().
		Model((*User)(nil)).
		Set("total_activities = total_activities + 1").
		Set("total_calories = total_calories + ?", calories).
		Where("id=?", userId).
		Returning("total_activities, total_calories").
		Exec(ctx, &user.TotalActivities, &user.TotalCalories)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, ritmo.ErrUserNotFound
		}
		return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, fmt.Errorf("update user metrics: %w", err)
	}

	company := new(Company)
	_, err = tx.NewUpdate().
		Model(company).
		Set("total_activities = total_activities + 1").
		Set("total_calories = total_calories + ?", calories).
		Where("id=?", companyId).
		Returning("*").
		Exec(ctx, company)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, ritmo.ErrCompanyNotFound
		}
		return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, fmt.Errorf("update company metrics: %w", err)
	}
	return user, company.ToDomain(), nil
}

func (s *MetricsStore) ApplyActivityCreated(ctx context.Context, userId ritmo.UserId, calories float64) (ritmo.UserMetrics, ritmo.CompanyMetrics, error) {
	var userMetrics ritmo.UserMetrics
	var companyMetrics ritmo.CompanyMetrics
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var err error
		userMetrics, companyMetrics, err = applyActivityCreated(ctx, tx, userId, calories)
		return err
	})
	if err != nil {
		return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, err
	}
	return userMetrics, companyMetrics, nil
}

func (s *MetricsStore) RecomputeUser(ctx context.Context, userId ritmo.UserId) (ritmo.UserMetrics, error) {
	var metrics ritmo.UserMetrics
	err := s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model((*Activity)(nil)).
			ColumnExpr("count(*)").
			ColumnExpr("coalesce(sum(calories), 0)").
			Where("user_id=?", userId).
			Scan(ctx, &metrics.TotalActivities, &metrics.TotalCalories)
		if err != nil {
			return fmt.Errorf("count activities: %w", err)
		}

		res, err := tx.NewUpdate().
			Model((*User)(nil)).
			Set("total_activities = ?", metrics.TotalActivities).
			Set("total_calories = ?", metrics.TotalCalories).
			Where("id=?", userId).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("store recomputed metrics: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("rows affected: %w", err)
		}
		if affected == 0 {
			return ritmo.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return ritmo.UserMetrics{}, err
	}
	return metrics, nil
}

func (s *MetricsStore) Company(ctx context.Context) (ritmo.CompanyMetrics, error) {
	company := new(Company)
	err := s.DB.NewSelect().
		Model(company).
		Where("id=?", companyId).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ritmo.CompanyMetrics{}, ritmo.ErrCompanyNotFound
		}
		return ritmo.CompanyMetrics{}, fmt.Errorf("select company: %w", err)
	}
	return company.ToDomain(), nil
}
