package ritmo

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type UserId int64

// NoViewer marks the absence of an authenticated viewer on public reads.
const NoViewer UserId = 0

type User struct {
	Id           UserId
	CreatedAt    time.Time
	Name         string
	Email        string
	PasswordHash string
	AvatarUrl    string
	Kind         string
	Metrics      UserMetrics
}

func (u User) PasswordMatches(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

func (u User) Summary() UserSummary {
	return UserSummary{Id: u.Id, Name: u.Name, AvatarUrl: u.AvatarUrl}
}

// UserSummary is the public slice of a user embedded in feed items,
// comments and the member directory.
type UserSummary struct {
	Id        UserId
	Name      string
	AvatarUrl string
}

type UserStore interface {
	ById(ctx context.Context, userId UserId) (User, error)

	ByEmail(ctx context.Context, email string) (User, error)

	// Summaries lists every member's public identity ordered by name.
	Summaries(ctx context.Context) ([]UserSummary, error)
}
