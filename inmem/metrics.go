package inmem

import (
	"context"

	"github.com/ritmofit/ritmo"
)

type MetricsStore struct {
	DB *DB
}

var _ ritmo.MetricsStore = (*MetricsStore)(nil)

func (s *MetricsStore) ApplyActivityCreated(ctx context.Context, userId ritmo.UserId, calories float64) (ritmo.UserMetrics, ritmo.CompanyMetrics, error) {
	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	user, ok := db.users[userId]
	if !ok {
		return ritmo.UserMetrics{}, ritmo.CompanyMetrics{}, ritmo.ErrUserNotFound
	}
	user.Metrics.TotalActivities++
	user.Metrics.TotalCalories += calories
	db.company.TotalActivities++
	db.company.TotalCalories += calories
	return user.Metrics, db.company, nil
}

func (s *MetricsStore) RecomputeUser(ctx context.Context, userId ritmo.UserId) (ritmo.UserMetrics, error) {
	db := s.DB
	db.mu.Lock()
	defer db.mu.Unlock()

	user, ok := db.users[userId]
	if !ok {
		return ritmo.UserMetrics{}, ritmo.ErrUserNotFound
	}

	metrics := ritmo.UserMetrics{}
	for _, activity := range db.activities {
		if activity.User.Id == userId {
			metrics.TotalActivities++
			metrics.TotalCalories += activity.Calories
		}
	}
	user.Metrics = metrics
	return metrics, nil
}

func (s *MetricsStore) Company(ctx context.Context) (ritmo.CompanyMetrics, error) {
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()
	if db.company.Name == "" {
		return ritmo.CompanyMetrics{}, ritmo.ErrCompanyNotFound
	}
	return db.company, nil
}
