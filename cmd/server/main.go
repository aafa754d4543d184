package main

import (
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/mealwise/backend/config"
	iauth "github.com/mealwise/backend/internal/auth"
	httpDelivery "github.com/mealwise/backend/internal/delivery/http"
	"github.com/mealwise/backend/internal/domain"
	"github.com/mealwise/backend/internal/infrastructure/store"
	"github.com/mealwise/backend/internal/infrastructure/usda"
	"github.com/mealwise/backend/internal/usecase"
	"github.com/mealwise/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(cfg.Log.Level); err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	zlog := logger.WithModule("main")
	zlog.Info("starting mealwise backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	db, err := store.Open(store.Config{
		Driver: cfg.Database.Driver,
		Path:   cfg.Database.Path,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		zlog.Fatal("failed to open database", zap.Error(err))
	}
	if err := store.AutoMigrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	var mealCache domain.MealCacheRepository
	switch cfg.Cache.Driver {
	case "memory":
		mealCache = store.NewMemoryMealCache(cfg.Cache.TTL)
	default:
		mealCache = store.NewMealCacheStore(db, cfg.Cache.TTL)
	}

	usdaClient := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL)
	if cfg.USDA.APIKey == "" {
		zlog.Warn("USDA API key not configured; calorie lookups will fail until MEALWISE_USDA_API_KEY is set")
	}

	tokens, err := iauth.NewJWTService(iauth.Config{
		Secret:         cfg.JWT.Secret,
		Issuer:         cfg.JWT.Issuer,
		AccessTokenTTL: cfg.JWT.TTL,
	})
	if err != nil {
		zlog.Fatal("failed to build jwt service", zap.Error(err))
	}

	calorieService := usecase.NewCalorieService(mealCache, usdaClient, usecase.CalorieServiceConfig{
		SearchPageSize: cfg.USDA.PageSize,
	})
	authService := usecase.NewAuthService(store.NewUserStore(db), tokens)

	handler := httpDelivery.NewHandler(calorieService, authService)
	router := httpDelivery.SetupRouter(cfg, handler, tokens)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
