package services

import (
	"context"
	"errors"

	"github.com/Isann22/NutriTrack-Backend/models"
)

// ErrPredictor marks failures of an external predictor. They are fatal for
// the whole recommendation request.
var ErrPredictor = errors.New("predictor failure")

// FeatureVector is the energy model input, in the order the model was
// trained on.
type FeatureVector struct {
	Age                float64
	Weight             float64
	Height             float64
	GenderCode         float64
	BMI                float64
	BMR                float64
	ActivityMultiplier float64
}

func (f FeatureVector) Slice() []float64 {
	return []float64{f.Age, f.Weight, f.Height, f.GenderCode, f.BMI, f.BMR, f.ActivityMultiplier}
}

// EnergyPredictor estimates total daily energy expenditure (kcal/day).
type EnergyPredictor interface {
	PredictEnergy(ctx context.Context, features FeatureVector) (float64, error)
}

// NutrientPredictor estimates the nutrient targets of one meal slot for a
// calorie target. The nutrient set is fixed per slot.
type NutrientPredictor interface {
	PredictNutrients(ctx context.Context, slot models.MealSlot, calories float64) (models.NutrientValues, error)
}
