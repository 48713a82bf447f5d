package ritmo

import "context"

// UserMetrics are denormalized running totals over one user's activities.
type UserMetrics struct {
	TotalActivities int
	TotalCalories   float64
}

// CompanyMetrics aggregate over all activities of the single company tenant.
type CompanyMetrics struct {
	Name            string
	LogoUrl         string
	TotalActivities int
	TotalCalories   float64
}

type MetricsStore interface {
	// ApplyActivityCreated adds one activity and its calories to the owner's
	// and the company's totals. Applied exactly once per created activity;
	// ActivityStore.Create runs the same deltas inside its own transaction.
	ApplyActivityCreated(ctx context.Context, userId UserId, calories float64) (UserMetrics, CompanyMetrics, error)

	// RecomputeUser rebuilds the user's totals from the activities
	// themselves and stores the result. Used at login and on "me" reads to
	// self-heal drift instead of trusting the cached columns.
	RecomputeUser(ctx context.Context, userId UserId) (UserMetrics, error)

	Company(ctx context.Context) (CompanyMetrics, error)
}
