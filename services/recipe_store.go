package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Isann22/NutriTrack-Backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeStore is the Postgres-backed catalog source.
type RecipeStore struct{ db *gorm.DB }

func NewRecipeStore(db *gorm.DB) *RecipeStore { return &RecipeStore{db: db} }

func (s *RecipeStore) LoadRecipes(ctx context.Context, slot models.MealSlot) ([]RecipeRecord, error) {
	var rows []models.Recipe
	if err := s.db.WithContext(ctx).
		Where("slot = ?", string(slot)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("db error fetching %s recipes: %w", slot, err)
	}

	out := make([]RecipeRecord, 0, len(rows))
	for _, r := range rows {
		var nut map[string]float64
		if len(r.Nutrients) > 0 {
			if err := json.Unmarshal(r.Nutrients, &nut); err != nil {
				return nil, fmt.Errorf("recipe %d (%s): bad nutrients JSON: %w", r.ID, r.FoodID, err)
			}
		}
		out = append(out, RecipeRecord{
			FoodID:    r.FoodID,
			Name:      r.Name,
			Calories:  r.Calories,
			Nutrients: nut,
		})
	}
	return out, nil
}

// Upsert inserts records for a slot, replacing rows with the same food_id.
// Records are validated first so a bad file never half-lands.
func (s *RecipeStore) Upsert(ctx context.Context, slot models.MealSlot, records []RecipeRecord) (int, error) {
	if _, err := NewRecipeCatalog(slot, records); err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	rows := make([]models.Recipe, 0, len(records))
	for _, rec := range records {
		b, err := json.Marshal(rec.Nutrients)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal nutrients of %s: %w", rec.FoodID, err)
		}
		foodID := rec.FoodID
		if foodID == "" {
			foodID = rec.Name
		}
		rows = append(rows, models.Recipe{
			Slot:      string(slot),
			FoodID:    foodID,
			Name:      rec.Name,
			Calories:  rec.Calories,
			Nutrients: b,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slot"}, {Name: "food_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "calories", "nutrients", "updated_at"}),
		}).CreateInBatches(rows, 500).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to upsert %s recipes: %w", slot, err)
	}
	return len(rows), nil
}

func (s *RecipeStore) CountBySlot(ctx context.Context) (map[models.MealSlot]int64, error) {
	var rows []struct {
		Slot  string
		Count int64
	}
	if err := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Select("slot, COUNT(*) AS count").
		Group("slot").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.MealSlot]int64, len(rows))
	for _, r := range rows {
		out[models.MealSlot(r.Slot)] = r.Count
	}
	return out, nil
}

func (s *RecipeStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
