package inmem

import (
	"context"
	"sort"

	"github.com/ritmofit/ritmo"
)

type UserStore struct {
	DB *DB
}

var _ ritmo.UserStore = (*UserStore)(nil)

func (s *UserStore) ById(ctx context.Context, userId ritmo.UserId) (ritmo.User, error) {
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()
	user, ok := db.users[userId]
	if !ok {
		return ritmo.User{}, ritmo.ErrUserNotFound
	}
	return *user, nil
}

func (s *UserStore) ByEmail(ctx context.Context, email string) (ritmo.User, error) {
	db := s.DB
	db.mu.RLock()
	defer db.mu.RUnlock()
	for _, user := range db.users {
		if user.Email == email {
			return *user, nil
		}
	}
	return ritmo.User{}, ritmo.ErrUserNotFound
}

func (s *UserStore) Summaries(ctx context.Context) ([]ritmo.UserSummary, error) {
	db := s.DB
	db.mu.RLock()
	summaries := make([]ritmo.UserSummary, 0, len(db.users))
	for _, user := range db.users {
		summaries = append(summaries, user.Summary())
	}
	db.mu.RUnlock()

	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Name != summaries[j].Name {
			return summaries[i].Name < summaries[j].Name
		}
		return summaries[i].Id < summaries[j].Id
	})
	return summaries, nil
}
