package persistent

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/ritmofit/ritmo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

// The test database is shared across the whole suite (see testenv), so
// every test works on its own users and filters by them.

func createTestUser(t *testing.T, ctx context.Context, db *bun.DB, name string) ritmo.User {
	t.Helper()
	user := &User{
		Name:         name,
		Email:        name + "-" + uuid.New().String() + "@ritmo.test",
		PasswordHash: "$2a$10$invalidhashinvalidhashinvalidhashinvalidhashinvalidha",
	}
	_, err := db.NewInsert().Model(user).Exec(ctx)
	require.NoError(t, err)
	return user.ToDomain()
}

func ensureTestCompany(t *testing.T, ctx context.Context, db *bun.DB) {
	t.Helper()
	require.NoError(t, EnsureCompany(ctx, db, "Ritmo", ""))
}

func uniqueActivityType(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

func TestActivityCreateAppliesMetrics(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	ensureTestCompany(t, ctx, db)
	runner := createTestUser(t, ctx, db, "ana")

	companyBefore, err := (&MetricsStore{DB: db}).Company(ctx)
	require.NoError(t, err)

	store := &ActivityStore{DB: db}
	activity, err := store.Create(ctx, ritmo.NewActivity{
		UserId:          runner.Id,
		Type:            "corrida",
		Title:           "corrida matinal",
		DistanceMeters:  5000,
		DurationMinutes: 30,
		Calories:        300,
	})
	if !assert.NoError(err) {
		return
	}
	assert.NotZero(activity.Id)
	assert.Equal(runner.Id, activity.User.Id)
	assert.Equal("ana", activity.User.Name)
	assert.False(activity.CreatedAt.IsZero())

	owner, err := (&UserStore{DB: db}).ById(ctx, runner.Id)
	require.NoError(t, err)
	assert.Equal(1, owner.Metrics.TotalActivities)
	assert.Equal(300.0, owner.Metrics.TotalCalories)

	companyAfter, err := (&MetricsStore{DB: db}).Company(ctx)
	require.NoError(t, err)
	assert.Equal(companyBefore.TotalActivities+1, companyAfter.TotalActivities)
	assert.Equal(companyBefore.TotalCalories+300, companyAfter.TotalCalories)
}

func TestActivityCreateUnknownUserRollsBack(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	ensureTestCompany(t, ctx, db)

	companyBefore, err := (&MetricsStore{DB: db}).Company(ctx)
	require.NoError(t, err)

	store := &ActivityStore{DB: db}
	_, err = store.Create(ctx, ritmo.NewActivity{
		UserId: 99999999, Type: "corrida", Title: "corrida",
	})
	assert.ErrorIs(err, ritmo.ErrUserNotFound)

	companyAfter, err := (&MetricsStore{DB: db}).Company(ctx)
	require.NoError(t, err)
	assert.Equal(companyBefore, companyAfter)
}

func TestActivityListPage(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	ensureTestCompany(t, ctx, db)
	runner := createTestUser(t, ctx, db, "ana")
	activityType := uniqueActivityType("corrida")

	store := &ActivityStore{DB: db}
	var lastId ritmo.ActivityId
	for i := 0; i < 5; i++ {
		activity, err := store.Create(ctx, ritmo.NewActivity{
			UserId: runner.Id,
			Type:   activityType,
			Title:  fmt.Sprintf("corrida #%d", i+1),
		})
		require.NoError(t, err)
		lastId = activity.Id
	}

	page, err := store.ListPage(ctx, ritmo.FeedQuery{Type: activityType, Page: 1, PageSize: 2})
	if !assert.NoError(err) {
		return
	}
	assert.Equal(5, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(lastId, page.Items[0].Id)
	assert.Equal("corrida #5", page.Items[0].Title)
	assert.Equal("ana", page.Items[0].User.Name)

	// past the end: empty page, total still reported
	page, err = store.ListPage(ctx, ritmo.FeedQuery{Type: activityType, Page: 4, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(5, page.TotalItems)
	assert.Len(page.Items, 0)
}

func TestIncrementLikesClamp(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	ensureTestCompany(t, ctx, db)
	runner := createTestUser(t, ctx, db, "ana")

	store := &ActivityStore{DB: db}
	activity, err := store.Create(ctx, ritmo.NewActivity{
		UserId: runner.Id, Type: "corrida", Title: "corrida",
	})
	require.NoError(t, err)

	count, err := store.IncrementLikes(ctx, activity.Id, -5)
	if assert.NoError(err) {
		assert.Equal(0, count)
	}

	count, err = store.IncrementLikes(ctx, activity.Id, 1)
	if assert.NoError(err) {
		assert.Equal(1, count)
	}

	_, err = store.IncrementLikes(ctx, 99999999, 1)
	assert.ErrorIs(err, ritmo.ErrActivityNotFound)
}

func TestMetricsRecomputeUser(t *testing.T) {
	if testing.Short() {
		t.SkipNow()
		return
	}
	assert := assert.New(t)
	ctx := context.Background()

	db := PgOpenTest(ctx)
	defer db.Close()
	ensureTestCompany(t, ctx, db)
	runner := createTestUser(t, ctx, db, "ana")

	store := &ActivityStore{DB: db}
	for i := 0; i < 2; i++ {
		_, err := store.Create(ctx, ritmo.NewActivity{
			UserId: runner.Id, Type: "corrida", Title: "corrida", Calories: 250,
		})
		require.NoError(t, err)
	}

	// drift the cached totals, recompute must heal them
	_, err := db.NewUpdate().
		Model((*User)(nil)).
		Set("total_activities = 99").
		Set("total_calories = 1").
		Where("id=?", runner.Id).
		Exec(ctx)
	require.NoError(t, err)

	metrics := &MetricsStore{DB: db}
	recomputed, err := metrics.RecomputeUser(ctx, runner.Id)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(2, recomputed.TotalActivities)
	assert.Equal(500.0, recomputed.TotalCalories)

	stored, err := (&UserStore{DB: db}).ById(ctx, runner.Id)
	require.NoError(t, err)
	assert.Equal(recomputed, stored.Metrics)

	_, err = metrics.RecomputeUser(ctx, 99999999)
	assert.ErrorIs(err, ritmo.ErrUserNotFound)
}
