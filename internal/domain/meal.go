package domain

import "time"

// Source tags reported to API consumers.
const (
	SourceCache = "Cache"
	SourceUSDA  = "USDA FoodData Central"
)

// CachedMeal is a resolved dish persisted in the meal cache. At most one row
// exists per DishKey; refreshes overwrite value and timestamp in place.
type CachedMeal struct {
	ID                 uint      `gorm:"primaryKey" json:"-"`
	DishKey            string    `gorm:"uniqueIndex;not null" json:"dishKey"`
	CaloriesPerServing float64   `gorm:"not null" json:"caloriesPerServing"`
	Source             string    `json:"source"`
	ResolvedAt         time.Time `json:"resolvedAt"`
}

func (CachedMeal) TableName() string { return "meal_cache" }

// FreshWithin reports whether the entry is younger than ttl at the given
// instant. An entry exactly at the boundary counts as stale.
func (m *CachedMeal) FreshWithin(ttl time.Duration, now time.Time) bool {
	return now.Sub(m.ResolvedAt) < ttl
}

// ResolutionRequest is a calorie lookup for a named dish.
type ResolutionRequest struct {
	DishName string  `json:"dish_name" binding:"required"`
	Servings float64 `json:"servings"`
}

// ResolutionResult is the assembled response for a resolution request.
// CaloriesPerServing and TotalCalories are rounded to 2 decimals for display;
// intermediate math uses full precision.
type ResolutionResult struct {
	DishName           string  `json:"dish_name"`
	Servings           float64 `json:"servings"`
	CaloriesPerServing float64 `json:"calories_per_serving"`
	TotalCalories      float64 `json:"total_calories"`
	Source             string  `json:"source"`
}
