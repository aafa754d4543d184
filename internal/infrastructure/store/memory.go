package store

import (
	"context"
	"sync"
	"time"

	"github.com/mealwise/backend/internal/domain"
)

// MemoryMealCache is a thread-safe in-memory domain.MealCacheRepository.
// Used when no durable cache is wanted (cache.driver = memory) and as a test
// double. Entries survive until process exit; freshness is read-time only.
type MemoryMealCache struct {
	mu   sync.RWMutex
	data map[string]domain.CachedMeal
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryMealCache creates an in-memory meal cache with the given freshness
// window.
func NewMemoryMealCache(ttl time.Duration) *MemoryMealCache {
	if ttl <= 0 {
		ttl = DefaultFreshnessWindow
	}
	return &MemoryMealCache{
		data: make(map[string]domain.CachedMeal),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Lookup returns the stored entry and its freshness flag.
func (c *MemoryMealCache) Lookup(ctx context.Context, dishKey string) (*domain.CachedMeal, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	meal, ok := c.data[dishKey]
	if !ok {
		return nil, false, nil
	}

	cpy := meal
	return &cpy, cpy.FreshWithin(c.ttl, c.now()), nil
}

// Upsert creates or replaces the entry for dishKey.
func (c *MemoryMealCache) Upsert(ctx context.Context, dishKey string, caloriesPerServing float64, source string) (*domain.CachedMeal, error) {
	meal := domain.CachedMeal{
		DishKey:            dishKey,
		CaloriesPerServing: caloriesPerServing,
		Source:             source,
		ResolvedAt:         c.now(),
	}

	c.mu.Lock()
	c.data[dishKey] = meal
	c.mu.Unlock()

	return &meal, nil
}

// Size returns the current number of cached dishes.
func (c *MemoryMealCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
