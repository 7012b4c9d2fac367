package models

import "fmt"

// MealSlot is a meal of the day (breakfast/lunch/dinner).
type MealSlot string

const (
	Breakfast MealSlot = "breakfast"
	Lunch     MealSlot = "lunch"
	Dinner    MealSlot = "dinner"
)

// MealSlots lists the slots in planning order.
var MealSlots = []MealSlot{Breakfast, Lunch, Dinner}

func ParseMealSlot(s string) (MealSlot, error) {
	switch m := MealSlot(s); m {
	case Breakfast, Lunch, Dinner:
		return m, nil
	}
	return "", fmt.Errorf("invalid meal slot %q", s)
}

// RecipeSuggestion is one recipe of a recommended combination
type RecipeSuggestion struct {
	RecipeID   string         `json:"recipe_id"`
	RecipeName string         `json:"recipe_name"`
	Calories   float64        `json:"calories"`
	Nutrients  NutrientValues `json:"nutrients"`
}

// MealPlanEntry holds the targets and the chosen recipes of one slot.
// Recipes is empty (never nil) when the catalog offered nothing.
type MealPlanEntry struct {
	TargetCalories  float64            `json:"target_calories"`
	TargetNutrients NutrientValues     `json:"target_nutrients"`
	Recipes         []RecipeSuggestion `json:"recipes"`
}

type MealPlan struct {
	BMI                 float64                    `json:"bmi"`
	BMR                 float64                    `json:"bmr"`
	TDEE                float64                    `json:"tdee"`
	RecommendedCalories float64                    `json:"recommended_calories"`
	MealPlan            map[MealSlot]MealPlanEntry `json:"meal_plan"`
}
