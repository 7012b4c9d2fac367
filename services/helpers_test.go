package services

import (
	"testing"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/stretchr/testify/require"
)

// rec builds a catalog record with the three required macros.
func rec(id string, cal, protein, carbs, fat float64) RecipeRecord {
	return RecipeRecord{
		FoodID:   id,
		Name:     "recipe " + id,
		Calories: cal,
		Nutrients: map[string]float64{
			"Protein":       protein,
			"Carbohydrates": carbs,
			"Fat":           fat,
		},
	}
}

// with returns a copy of r carrying an extra nutrient column.
func with(r RecipeRecord, name string, v float64) RecipeRecord {
	nut := make(map[string]float64, len(r.Nutrients)+1)
	for k, x := range r.Nutrients {
		nut[k] = x
	}
	nut[name] = v
	r.Nutrients = nut
	return r
}

func mustCatalog(t *testing.T, slot models.MealSlot, records ...RecipeRecord) *RecipeCatalog {
	t.Helper()
	cat, err := NewRecipeCatalog(slot, records)
	require.NoError(t, err)
	return cat
}

func allSlots(t *testing.T, records ...RecipeRecord) Catalogs {
	t.Helper()
	out := make(Catalogs, len(models.MealSlots))
	for _, s := range models.MealSlots {
		out[s] = mustCatalog(t, s, records...)
	}
	return out
}

func ids(items []CatalogItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}
