package services

import (
	"math"

	"github.com/Isann22/NutriTrack-Backend/models"
)

const (
	goalCalorieDelta = 500.0

	// Minimum daily intake when losing weight. Not configurable.
	femaleCalorieFloor = 1200.0
	maleCalorieFloor   = 1500.0
)

// mealWeights sum to 0.91; the remaining 9% of the day is left unallocated.
var mealWeights = map[models.MealSlot]float64{
	models.Breakfast: 0.25,
	models.Lunch:     0.31,
	models.Dinner:    0.35,
}

// CalorieBudget is the per-slot kcal target of one day.
type CalorieBudget map[models.MealSlot]float64

func (b CalorieBudget) Total() float64 {
	var sum float64
	for _, v := range b {
		sum += v
	}
	return sum
}

// AdjustCalories applies the weight goal to a TDEE estimate. Unknown goals
// leave the estimate unchanged.
func AdjustCalories(tdee float64, goal models.WeightGoal, gender models.Gender) float64 {
	switch goal {
	case models.LoseWeight:
		floor := maleCalorieFloor
		if gender == models.Female {
			floor = femaleCalorieFloor
		}
		return math.Max(tdee-goalCalorieDelta, floor)
	case models.GainWeight:
		return tdee + goalCalorieDelta
	default:
		return tdee
	}
}

// SplitCalories divides the goal-adjusted daily budget across meal slots.
func SplitCalories(budget float64) CalorieBudget {
	out := make(CalorieBudget, len(mealWeights))
	for slot, w := range mealWeights {
		out[slot] = budget * w
	}
	return out
}
