// Command catalog-import loads <dir>/{breakfast,lunch,dinner}.json into the
// recipes table.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/Isann22/NutriTrack-Backend/config"
	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/services"
	"github.com/Isann22/NutriTrack-Backend/utils"

	"go.uber.org/zap"
)

func main() {
	dir := flag.String("dir", "", "directory holding the per-slot catalog JSON files (default CATALOG_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := utils.InitLogger(cfg.AppEnv); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer utils.Log.Sync() //nolint:errcheck

	if *dir == "" {
		*dir = cfg.CatalogDir
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.Log.Fatal("database init failed", zap.Error(err))
	}
	store := services.NewRecipeStore(db)
	files := services.NewFileCatalogSource(*dir)
	ctx := context.Background()

	for _, slot := range models.MealSlots {
		recs, err := files.LoadRecipes(ctx, slot)
		if err != nil {
			utils.Log.Fatal("read catalog", zap.String("slot", string(slot)), zap.Error(err))
		}
		n, err := store.Upsert(ctx, slot, recs)
		if err != nil {
			utils.Log.Fatal("import catalog", zap.String("slot", string(slot)), zap.Error(err))
		}
		utils.Log.Info("catalog imported", zap.String("slot", string(slot)), zap.Int("recipes", n))
	}

	counts, err := store.CountBySlot(ctx)
	if err != nil {
		utils.Log.Fatal("count recipes", zap.Error(err))
	}
	for _, slot := range models.MealSlots {
		utils.Log.Info("catalog size", zap.String("slot", string(slot)), zap.Int64("recipes", counts[slot]))
	}
}
