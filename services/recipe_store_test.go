package services

import (
	"context"
	"os"
	"testing"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRecipeDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Recipe{}))
	db.Exec("DELETE FROM recipes")
	return db
}

func TestRecipeStore(t *testing.T) {
	db := setupRecipeDB(t)
	store := NewRecipeStore(db)
	ctx := context.Background()

	require.NoError(t, store.Ping(ctx))

	n, err := store.Upsert(ctx, models.Lunch, []RecipeRecord{
		with(rec("l1", 420, 25, 40, 12), "Sodium", 300),
		with(rec("l2", 380, 18, 50, 9), "Sodium", 150),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// same food_id replaces the row
	_, err = store.Upsert(ctx, models.Lunch, []RecipeRecord{with(rec("l1", 450, 26, 41, 13), "Sodium", 310)})
	require.NoError(t, err)

	recs, err := store.LoadRecipes(ctx, models.Lunch)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "l1", recs[0].FoodID)
	assert.Equal(t, 450.0, recs[0].Calories)
	assert.Equal(t, 310.0, recs[0].Nutrients["Sodium"])

	counts, err := store.CountBySlot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), counts[models.Lunch])

	empty, err := store.LoadRecipes(ctx, models.Dinner)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRecipeStoreRejectsInvalidBatch(t *testing.T) {
	db := setupRecipeDB(t)
	store := NewRecipeStore(db)

	_, err := store.Upsert(context.Background(), models.Dinner, []RecipeRecord{with(rec("d1", 500, 1, 1, 1), "Fibre", 3)})
	assert.ErrorIs(t, err, ErrCatalogInvalid)

	_, err = store.Upsert(context.Background(), models.Dinner, []RecipeRecord{
		rec("d1", 500, 1, 1, 1),
		rec("d1", 520, 2, 2, 2),
	})
	assert.ErrorIs(t, err, ErrCatalogInvalid)

	var count int64
	db.Model(&models.Recipe{}).Count(&count)
	assert.Zero(t, count)
}
