package domain

import "context"

// MealCacheRepository defines the persistent calorie cache. Implementations
// must support concurrent lookups and upserts for different dish keys.
type MealCacheRepository interface {
	// Lookup returns the stored entry for dishKey together with a freshness
	// flag; a nil entry means no record exists. The flag only reports whether
	// the record is younger than the configured freshness window - deciding
	// what to do with a stale entry is the caller's job.
	Lookup(ctx context.Context, dishKey string) (*CachedMeal, bool, error)

	// Upsert creates or replaces the entry for dishKey, refreshing its value
	// and timestamp. Refreshes must never fail on the uniqueness constraint.
	Upsert(ctx context.Context, dishKey string, caloriesPerServing float64, source string) (*CachedMeal, error)
}

// UserRepository defines persistence for registered accounts.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	// FindByEmail returns nil with no error when no such user exists.
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// USDAClient defines the interface for the USDA FoodData Central API.
type USDAClient interface {
	Search(ctx context.Context, query string, pageSize int) ([]FoodRecord, error)
	FetchFood(ctx context.Context, fdcID int64) (*FoodRecord, error)
}
