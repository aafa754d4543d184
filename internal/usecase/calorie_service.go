package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mealwise/backend/internal/domain"
	"github.com/mealwise/backend/pkg/logger"
)

// CalorieServiceConfig holds configuration for the calorie service.
type CalorieServiceConfig struct {
	SearchPageSize int
}

// CalorieService resolves calorie information for named dishes.
// Flow: normalize -> cache lookup -> USDA search -> match -> extract ->
// cache write -> response.
type CalorieService struct {
	cache    domain.MealCacheRepository
	usda     domain.USDAClient
	pageSize int
	log      *zap.Logger
}

// NewCalorieService creates a calorie service with its dependencies.
func NewCalorieService(
	cache domain.MealCacheRepository,
	usdaClient domain.USDAClient,
	cfg CalorieServiceConfig,
) *CalorieService {
	pageSize := cfg.SearchPageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	return &CalorieService{
		cache:    cache,
		usda:     usdaClient,
		pageSize: pageSize,
		log:      logger.WithModule("calories"),
	}
}

// Resolve answers a calorie lookup. A fresh cache entry short-circuits the
// external call; otherwise one USDA search (and at most one detail fetch) is
// made and the result is written back to the cache before returning.
func (s *CalorieService) Resolve(ctx context.Context, req *domain.ResolutionRequest) (*domain.ResolutionResult, error) {
	if req == nil || req.Servings <= 0 {
		return nil, domain.ErrInvalidServings
	}

	dishKey := normalizeDishName(req.DishName)
	if dishKey == "" {
		return nil, domain.ErrEmptyDishName
	}

	cached, fresh, err := s.cache.Lookup(ctx, dishKey)
	if err != nil {
		return nil, fmt.Errorf("meal cache lookup: %w", err)
	}
	if cached != nil && fresh {
		s.log.Debug("cache hit", zap.String("dish", dishKey))
		return buildResult(req, cached.CaloriesPerServing, domain.SourceCache), nil
	}

	foods, err := s.usda.Search(ctx, req.DishName, s.pageSize)
	if err != nil {
		return nil, err
	}

	best := ChooseBestMatch(req.DishName, foods)
	if best == nil {
		return nil, domain.ErrDishNotFound
	}

	calories, ok := ExtractCalories(ctx, best, s.usda.FetchFood)
	if !ok {
		return nil, domain.ErrCaloriesUndeterminable
	}

	// The write happens only after a full successful extract; an aborted
	// resolution never leaves a partial entry behind.
	if _, err := s.cache.Upsert(ctx, dishKey, calories, domain.SourceUSDA); err != nil {
		return nil, fmt.Errorf("meal cache write: %w", err)
	}

	s.log.Info("dish resolved",
		zap.String("dish", dishKey),
		zap.Float64("calories_per_serving", calories))

	return buildResult(req, calories, domain.SourceUSDA), nil
}

// normalizeDishName canonicalizes a dish name for cache-key use: lower-cased,
// trimmed, internal whitespace collapsed to single spaces.
func normalizeDishName(raw string) string {
	return strings.Join(strings.Fields(strings.ToLower(raw)), " ")
}

func buildResult(req *domain.ResolutionRequest, caloriesPerServing float64, source string) *domain.ResolutionResult {
	total := caloriesPerServing * req.Servings

	return &domain.ResolutionResult{
		DishName:           req.DishName,
		Servings:           req.Servings,
		CaloriesPerServing: round2(caloriesPerServing),
		TotalCalories:      round2(total),
		Source:             source,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
