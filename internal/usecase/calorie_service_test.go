package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mealwise/backend/internal/domain"
)

type fakeMealCache struct {
	meal      *domain.CachedMeal
	fresh     bool
	lookupErr error
	upsertErr error

	lookups int
	upserts []domain.CachedMeal
}

func (f *fakeMealCache) Lookup(ctx context.Context, dishKey string) (*domain.CachedMeal, bool, error) {
	f.lookups++
	if f.lookupErr != nil {
		return nil, false, f.lookupErr
	}
	return f.meal, f.fresh, nil
}

func (f *fakeMealCache) Upsert(ctx context.Context, dishKey string, caloriesPerServing float64, source string) (*domain.CachedMeal, error) {
	if f.upsertErr != nil {
		return nil, f.upsertErr
	}
	meal := domain.CachedMeal{
		DishKey:            dishKey,
		CaloriesPerServing: caloriesPerServing,
		Source:             source,
		ResolvedAt:         time.Now(),
	}
	f.upserts = append(f.upserts, meal)
	return &meal, nil
}

type fakeUSDAClient struct {
	foods     []domain.FoodRecord
	searchErr error
	detail    *domain.FoodRecord
	detailErr error

	searches     int
	detailCalls  int
	lastQuery    string
	lastPageSize int
}

func (f *fakeUSDAClient) Search(ctx context.Context, query string, pageSize int) ([]domain.FoodRecord, error) {
	f.searches++
	f.lastQuery = query
	f.lastPageSize = pageSize
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.foods, nil
}

func (f *fakeUSDAClient) FetchFood(ctx context.Context, fdcID int64) (*domain.FoodRecord, error) {
	f.detailCalls++
	if f.detailErr != nil {
		return nil, f.detailErr
	}
	return f.detail, nil
}

func newResolveService(cache *fakeMealCache, client *fakeUSDAClient) *CalorieService {
	return NewCalorieService(cache, client, CalorieServiceConfig{})
}

func TestNormalizeDishName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"  Chicken   Soup ", "chicken soup"},
		{"chicken soup", "chicken soup"},
		{"CHICKEN SOUP", "chicken soup"},
		{"Chicken\tSoup", "chicken soup"},
		{"   ", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := normalizeDishName(tt.raw); got != tt.want {
			t.Errorf("normalizeDishName(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestResolveRejectsInvalidServings(t *testing.T) {
	cache := &fakeMealCache{}
	client := &fakeUSDAClient{}
	svc := newResolveService(cache, client)

	for _, servings := range []float64{0, -1} {
		_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "soup", Servings: servings})
		if !errors.Is(err, domain.ErrInvalidServings) {
			t.Errorf("servings=%v: error = %v, want ErrInvalidServings", servings, err)
		}
	}

	if cache.lookups != 0 || client.searches != 0 {
		t.Error("validation failures must happen before any I/O")
	}
}

func TestResolveRejectsEmptyDishName(t *testing.T) {
	cache := &fakeMealCache{}
	svc := newResolveService(cache, &fakeUSDAClient{})

	_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "   ", Servings: 1})
	if !errors.Is(err, domain.ErrEmptyDishName) {
		t.Errorf("error = %v, want ErrEmptyDishName", err)
	}
	if cache.lookups != 0 {
		t.Error("empty dish name must be rejected before any I/O")
	}
}

func TestResolveAcceptsFractionalServings(t *testing.T) {
	cache := &fakeMealCache{
		meal:  &domain.CachedMeal{DishKey: "soup", CaloriesPerServing: 100, Source: domain.SourceUSDA},
		fresh: true,
	}
	svc := newResolveService(cache, &fakeUSDAClient{})

	result, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "soup", Servings: 0.5})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if result.TotalCalories != 50 {
		t.Errorf("TotalCalories = %v, want 50", result.TotalCalories)
	}
}

func TestResolveFreshCacheHitSkipsExternalLookup(t *testing.T) {
	cache := &fakeMealCache{
		meal: &domain.CachedMeal{
			DishKey:            "macaroni and cheese",
			CaloriesPerServing: 164,
			Source:             domain.SourceUSDA,
			ResolvedAt:         time.Now().Add(-time.Hour),
		},
		fresh: true,
	}
	client := &fakeUSDAClient{}
	svc := newResolveService(cache, client)

	result, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{
		DishName: "Macaroni And Cheese",
		Servings: 2,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if client.searches != 0 {
		t.Errorf("searches = %d, want 0 on fresh cache hit", client.searches)
	}
	if result.CaloriesPerServing != 164.0 {
		t.Errorf("CaloriesPerServing = %v, want 164.0", result.CaloriesPerServing)
	}
	if result.TotalCalories != 328.0 {
		t.Errorf("TotalCalories = %v, want 328.0", result.TotalCalories)
	}
	if result.Source != domain.SourceCache {
		t.Errorf("Source = %q, want %q", result.Source, domain.SourceCache)
	}
	if result.DishName != "Macaroni And Cheese" {
		t.Errorf("DishName = %q, want original spelling echoed back", result.DishName)
	}
}

func TestResolveStaleCacheEntryTriggersExternalLookup(t *testing.T) {
	cache := &fakeMealCache{
		meal: &domain.CachedMeal{
			DishKey:            "chicken soup",
			CaloriesPerServing: 75,
			ResolvedAt:         time.Now().Add(-25 * time.Hour),
		},
		fresh: false,
	}
	client := &fakeUSDAClient{
		foods: []domain.FoodRecord{
			{
				FdcID:       1,
				Description: "Chicken Soup",
				FoodNutrients: []domain.FoodNutrient{
					{NutrientName: "Energy", Value: floatPtr(80)},
				},
			},
		},
	}
	svc := newResolveService(cache, client)

	result, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "chicken soup", Servings: 1})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if client.searches != 1 {
		t.Errorf("searches = %d, want exactly 1", client.searches)
	}
	if result.Source != domain.SourceUSDA {
		t.Errorf("Source = %q, want %q", result.Source, domain.SourceUSDA)
	}
	if len(cache.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(cache.upserts))
	}
	if cache.upserts[0].CaloriesPerServing != 80 {
		t.Errorf("upserted calories = %v, want 80", cache.upserts[0].CaloriesPerServing)
	}
}

func TestResolveCacheMissResolvesAndWritesBack(t *testing.T) {
	cache := &fakeMealCache{}
	client := &fakeUSDAClient{
		foods: []domain.FoodRecord{
			{
				FdcID:       1,
				Description: "Grilled Chicken Breast",
				FoodNutrients: []domain.FoodNutrient{
					{NutrientName: "Energy", Value: floatPtr(165)},
				},
			},
		},
	}
	svc := newResolveService(cache, client)

	result, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{
		DishName: "  Grilled   Chicken Breast ",
		Servings: 1,
	})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if result.CaloriesPerServing != 165 {
		t.Errorf("CaloriesPerServing = %v, want 165", result.CaloriesPerServing)
	}
	if len(cache.upserts) != 1 {
		t.Fatalf("upserts = %d, want 1", len(cache.upserts))
	}
	if cache.upserts[0].DishKey != "grilled chicken breast" {
		t.Errorf("cache key = %q, want normalized form", cache.upserts[0].DishKey)
	}
	if cache.upserts[0].Source != domain.SourceUSDA {
		t.Errorf("cached source = %q, want %q", cache.upserts[0].Source, domain.SourceUSDA)
	}
}

func TestResolveRoundsForDisplay(t *testing.T) {
	cache := &fakeMealCache{}
	client := &fakeUSDAClient{
		foods: []domain.FoodRecord{
			{
				FdcID:       1,
				Description: "Rice",
				FoodNutrients: []domain.FoodNutrient{
					{NutrientName: "Energy", Value: floatPtr(166.666)},
				},
			},
		},
	}
	svc := newResolveService(cache, client)

	result, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "rice", Servings: 3})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}

	if result.CaloriesPerServing != 166.67 {
		t.Errorf("CaloriesPerServing = %v, want 166.67", result.CaloriesPerServing)
	}
	// Total is computed from the full-precision value, then rounded.
	if result.TotalCalories != 500.0 {
		t.Errorf("TotalCalories = %v, want 500.0", result.TotalCalories)
	}
}

func TestResolveSearchFailureAborts(t *testing.T) {
	transportErr := &domain.TransportError{StatusCode: 502}
	cache := &fakeMealCache{}
	client := &fakeUSDAClient{searchErr: transportErr}
	svc := newResolveService(cache, client)

	_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "soup", Servings: 1})

	var te *domain.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error = %v, want TransportError", err)
	}
	if len(cache.upserts) != 0 {
		t.Error("no cache write may happen after a failed search")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	svc := newResolveService(&fakeMealCache{}, &fakeUSDAClient{})

	_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "some unknown dish", Servings: 1})
	if !errors.Is(err, domain.ErrDishNotFound) {
		t.Errorf("error = %v, want ErrDishNotFound", err)
	}
}

func TestResolveUndeterminableCalories(t *testing.T) {
	cache := &fakeMealCache{}
	client := &fakeUSDAClient{
		foods: []domain.FoodRecord{
			{FdcID: 9, Description: "Mystery Dish"},
		},
		detailErr: &domain.TransportError{Err: errors.New("timeout")},
	}
	svc := newResolveService(cache, client)

	_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "mystery dish", Servings: 1})
	if !errors.Is(err, domain.ErrCaloriesUndeterminable) {
		t.Errorf("error = %v, want ErrCaloriesUndeterminable", err)
	}
	if client.detailCalls != 1 {
		t.Errorf("detail calls = %d, want exactly 1", client.detailCalls)
	}
	if len(cache.upserts) != 0 {
		t.Error("no cache write may happen without an extracted value")
	}
}

func TestResolveCacheWriteFailureAborts(t *testing.T) {
	cache := &fakeMealCache{upsertErr: errors.New("disk full")}
	client := &fakeUSDAClient{
		foods: []domain.FoodRecord{
			{
				FdcID:       1,
				Description: "Soup",
				FoodNutrients: []domain.FoodNutrient{
					{NutrientName: "Energy", Value: floatPtr(75)},
				},
			},
		},
	}
	svc := newResolveService(cache, client)

	_, err := svc.Resolve(context.Background(), &domain.ResolutionRequest{DishName: "soup", Servings: 1})
	if err == nil {
		t.Fatal("expected cache write failure to abort the resolution")
	}
}
