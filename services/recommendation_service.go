package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/utils"
	"go.uber.org/zap"
)

var ErrInvalidProfile = errors.New("invalid profile")

// RecService produces a full-day meal plan for a profile.
type RecService struct {
	energy  EnergyPredictor
	builder *MealPlanBuilder
	timeout time.Duration
}

func NewRecService(energy EnergyPredictor, builder *MealPlanBuilder, timeout time.Duration) *RecService {
	return &RecService{energy: energy, builder: builder, timeout: timeout}
}

// Recommend runs metrics -> energy model -> goal adjustment -> per-meal
// plans. A predictor error aborts the request; no partial plan is returned.
func (r *RecService) Recommend(ctx context.Context, in models.ProfileInput) (*models.MealPlan, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	bmi, ok := utils.CalculateBMI(in.Weight, in.Height)
	if !ok {
		return nil, fmt.Errorf("%w: height must be positive, got %v", ErrInvalidProfile, in.Height)
	}
	bmr := utils.CalculateBMR(in.Age, in.Weight, in.Height, in.Gender)

	features := FeatureVector{
		Age:                float64(in.Age),
		Weight:             in.Weight,
		Height:             in.Height,
		GenderCode:         in.Gender.Code(),
		BMI:                bmi,
		BMR:                bmr,
		ActivityMultiplier: in.ActivityLevel.Multiplier(),
	}
	tdee, err := r.energy.PredictEnergy(ctx, features)
	if err != nil {
		return nil, fmt.Errorf("predict energy: %w", err)
	}

	recommended := AdjustCalories(tdee, in.WeightGoal, in.Gender)
	budget := SplitCalories(recommended)

	plan, err := r.builder.Build(ctx, budget)
	if err != nil {
		return nil, err
	}

	utils.Log.Info("meal plan generated",
		zap.Float64("tdee", tdee),
		zap.Float64("recommended_calories", recommended),
		zap.String("goal", string(in.WeightGoal)))

	return &models.MealPlan{
		BMI:                 utils.Round2(bmi),
		BMR:                 utils.Round2(bmr),
		TDEE:                utils.Round2(tdee),
		RecommendedCalories: utils.Round2(recommended),
		MealPlan:            plan,
	}, nil
}
