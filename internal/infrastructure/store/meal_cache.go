package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealwise/backend/internal/domain"
)

// DefaultFreshnessWindow is how long a cached resolution stays fresh.
const DefaultFreshnessWindow = 24 * time.Hour

// MealCacheStore implements domain.MealCacheRepository on the primary
// database. Staleness is enforced at read time only; stale rows are reported
// as not fresh, never deleted.
type MealCacheStore struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewMealCacheStore constructs a database-backed meal cache with the given
// freshness window.
func NewMealCacheStore(db *gorm.DB, ttl time.Duration) *MealCacheStore {
	if ttl <= 0 {
		ttl = DefaultFreshnessWindow
	}
	return &MealCacheStore{
		db:  db,
		ttl: ttl,
		now: time.Now,
	}
}

// Lookup returns the raw record for dishKey plus its freshness flag.
func (s *MealCacheStore) Lookup(ctx context.Context, dishKey string) (*domain.CachedMeal, bool, error) {
	var meal domain.CachedMeal
	err := s.db.WithContext(ctx).Take(&meal, "dish_key = ?", dishKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	return &meal, meal.FreshWithin(s.ttl, s.now()), nil
}

// Upsert creates or replaces the entry for dishKey. Concurrent resolutions of
// the same dish race here; last write wins.
func (s *MealCacheStore) Upsert(ctx context.Context, dishKey string, caloriesPerServing float64, source string) (*domain.CachedMeal, error) {
	meal := domain.CachedMeal{
		DishKey:            dishKey,
		CaloriesPerServing: caloriesPerServing,
		Source:             source,
		ResolvedAt:         s.now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "dish_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"calories_per_serving", "source", "resolved_at"}),
		}).Create(&meal).Error
	if err != nil {
		return nil, err
	}

	return &meal, nil
}
