package main

import (
	"context"
	"log"

	"github.com/Isann22/NutriTrack-Backend/config"
	"github.com/Isann22/NutriTrack-Backend/controllers"
	"github.com/Isann22/NutriTrack-Backend/routes"
	"github.com/Isann22/NutriTrack-Backend/services"
	"github.com/Isann22/NutriTrack-Backend/utils"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := utils.InitLogger(cfg.AppEnv); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer utils.Log.Sync() //nolint:errcheck

	ctx := context.Background()
	health := &controllers.HealthController{}

	var src services.CatalogSource
	switch cfg.CatalogSource {
	case config.CatalogPostgres:
		db, err := config.InitDB(cfg)
		if err != nil {
			utils.Log.Fatal("database init failed", zap.Error(err))
		}
		store := services.NewRecipeStore(db)
		health.DB = store
		src = store
	case config.CatalogS3:
		s3src, err := services.NewS3CatalogSource(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			utils.Log.Fatal("s3 catalog init failed", zap.Error(err))
		}
		src = s3src
	default:
		src = services.NewFileCatalogSource(cfg.CatalogDir)
	}

	catalogs, err := services.LoadCatalogs(ctx, src)
	if err != nil {
		utils.Log.Fatal("recipe catalogs failed to load", zap.Error(err))
	}

	var (
		energy    services.EnergyPredictor   = services.FormulaEnergyPredictor{}
		nutrients services.NutrientPredictor = services.FormulaNutrientPredictor{}
	)
	if cfg.InferenceURL != "" {
		ic := services.NewInferenceClient(cfg.InferenceURL, cfg.InferenceToken, 0)
		energy, nutrients = ic, ic
	} else {
		utils.Log.Warn("INFERENCE_URL not set, using formula predictors")
	}
	if cfg.RedisAddr != "" {
		cache := services.NewRedisPredictionCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer cache.Close()
		if err := cache.Ping(ctx); err != nil {
			utils.Log.Warn("redis unreachable, cache misses will fall through", zap.Error(err))
		}
		nutrients = services.NewCachedNutrientPredictor(nutrients, cache, cfg.CacheTTL)
	}

	engine := services.NewRecipeSearchEngine(services.SearchConfig{
		MaxAttempts: cfg.SearchMaxAttempts,
		Workers:     cfg.SearchWorkers,
		Seed:        cfg.SearchSeed,
	})
	builder := services.NewMealPlanBuilder(catalogs, nutrients, engine, cfg.MealPlanParallel)
	rec := services.NewRecService(energy, builder, cfg.SearchTimeout)

	r := routes.SetupRouter(routes.Deps{
		Recommendation: controllers.NewRecommendationController(rec),
		Catalog:        controllers.NewCatalogController(catalogs),
		Health:         health,
		JWTSecret:      cfg.JWTSecret,
	})

	utils.Log.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.Log.Fatal("server stopped", zap.Error(err))
	}
}
