package services

import (
	"context"
	"fmt"

	"github.com/Isann22/NutriTrack-Backend/models"
)

// FormulaEnergyPredictor estimates TDEE as BMR times the activity multiplier.
// It stands in for the trained model when no inference service is set up.
type FormulaEnergyPredictor struct{}

func (FormulaEnergyPredictor) PredictEnergy(_ context.Context, f FeatureVector) (float64, error) {
	return f.BMR * f.ActivityMultiplier, nil
}

// macroShare is the fraction of a meal's kcal per macro, plus fibre in grams
// per 1000 kcal.
type macroShare struct {
	protein, carbs, fat, sugars float64
	fiberPer1000                float64
}

var slotMacros = map[models.MealSlot]macroShare{
	models.Breakfast: {protein: 0.20, carbs: 0.55, fat: 0.25, sugars: 0.10, fiberPer1000: 14},
	models.Lunch:     {protein: 0.25, carbs: 0.45, fat: 0.30, sugars: 0.08, fiberPer1000: 14},
	models.Dinner:    {protein: 0.30, carbs: 0.40, fat: 0.30, sugars: 0.06, fiberPer1000: 14},
}

// FormulaNutrientPredictor derives gram targets from fixed per-slot macro
// shares (4 kcal/g for protein and carbohydrates, 9 kcal/g for fat).
type FormulaNutrientPredictor struct{}

func (FormulaNutrientPredictor) PredictNutrients(_ context.Context, slot models.MealSlot, calories float64) (models.NutrientValues, error) {
	m, ok := slotMacros[slot]
	if !ok {
		return nil, fmt.Errorf("%w: no macro profile for %q", ErrPredictor, slot)
	}
	return models.NutrientValues{
		models.Protein:       calories * m.protein / 4,
		models.Carbohydrates: calories * m.carbs / 4,
		models.Fat:           calories * m.fat / 9,
		models.Sugars:        calories * m.sugars / 4,
		models.DietaryFiber:  calories * m.fiberPer1000 / 1000,
	}, nil
}
