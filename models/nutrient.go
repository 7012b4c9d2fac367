package models

import (
	"fmt"
	"sort"
	"strings"
)

// Nutrient is one of the recognized nutrient columns of a recipe catalog.
// Names match the column headers of the catalog datasets exactly.
type Nutrient string

const (
	Protein             Nutrient = "Protein"
	Carbohydrates       Nutrient = "Carbohydrates"
	Fat                 Nutrient = "Fat"
	DietaryFiber        Nutrient = "Dietary Fiber"
	Sugars              Nutrient = "Sugars"
	SaturatedFats       Nutrient = "Saturated Fats"
	MonounsaturatedFats Nutrient = "Monounsaturated Fats"
	PolyunsaturatedFats Nutrient = "Polyunsaturated Fats"
	Cholesterol         Nutrient = "Cholesterol"
	Sodium              Nutrient = "Sodium"
	Water               Nutrient = "Water"
	VitaminA            Nutrient = "Vitamin A"
	VitaminB1           Nutrient = "Vitamin B1"
	VitaminB2           Nutrient = "Vitamin B2"
	VitaminB3           Nutrient = "Vitamin B3"
	VitaminB5           Nutrient = "Vitamin B5"
	VitaminB6           Nutrient = "Vitamin B6"
	VitaminB11          Nutrient = "Vitamin B11"
	VitaminB12          Nutrient = "Vitamin B12"
	VitaminC            Nutrient = "Vitamin C"
	VitaminD            Nutrient = "Vitamin D"
	VitaminE            Nutrient = "Vitamin E"
	VitaminK            Nutrient = "Vitamin K"
	Calcium             Nutrient = "Calcium"
	Copper              Nutrient = "Copper"
	Iron                Nutrient = "Iron"
	Magnesium           Nutrient = "Magnesium"
	Manganese           Nutrient = "Manganese"
	Phosphorus          Nutrient = "Phosphorus"
	Potassium           Nutrient = "Potassium"
	Selenium            Nutrient = "Selenium"
	Zinc                Nutrient = "Zinc"
	NutritionDensity    Nutrient = "Nutrition Density"
)

var knownNutrients = map[Nutrient]struct{}{
	Protein: {}, Carbohydrates: {}, Fat: {}, DietaryFiber: {}, Sugars: {},
	SaturatedFats: {}, MonounsaturatedFats: {}, PolyunsaturatedFats: {},
	Cholesterol: {}, Sodium: {}, Water: {},
	VitaminA: {}, VitaminB1: {}, VitaminB2: {}, VitaminB3: {}, VitaminB5: {},
	VitaminB6: {}, VitaminB11: {}, VitaminB12: {}, VitaminC: {}, VitaminD: {},
	VitaminE: {}, VitaminK: {},
	Calcium: {}, Copper: {}, Iron: {}, Magnesium: {}, Manganese: {},
	Phosphorus: {}, Potassium: {}, Selenium: {}, Zinc: {},
	NutritionDensity: {},
}

// PriorityNutrients is the subset shown to clients for targets and recipes.
var PriorityNutrients = []Nutrient{Protein, Carbohydrates, Fat, DietaryFiber, Sugars}

// RequiredNutrients must be present on every catalog recipe.
var RequiredNutrients = []Nutrient{Protein, Carbohydrates, Fat}

// ParseNutrient maps a column name onto the closed nutrient set.
// Surrounding whitespace is ignored, case is not.
func ParseNutrient(name string) (Nutrient, error) {
	n := Nutrient(strings.TrimSpace(name))
	if _, ok := knownNutrients[n]; !ok {
		return "", fmt.Errorf("unknown nutrient %q", name)
	}
	return n, nil
}

// NutrientValues maps nutrients to an amount (grams, milligrams, ... as the
// dataset defines for that column).
type NutrientValues map[Nutrient]float64

// ParseNutrientValues converts a raw column-name map, rejecting unknown names.
func ParseNutrientValues(raw map[string]float64) (NutrientValues, error) {
	out := make(NutrientValues, len(raw))
	for k, v := range raw {
		n, err := ParseNutrient(k)
		if err != nil {
			return nil, err
		}
		out[n] = v
	}
	return out, nil
}

// Filter returns a copy holding only the given nutrients that are present.
func (v NutrientValues) Filter(keep []Nutrient) NutrientValues {
	out := make(NutrientValues, len(keep))
	for _, n := range keep {
		if val, ok := v[n]; ok {
			out[n] = val
		}
	}
	return out
}

// Keys returns the nutrients in a stable order.
func (v NutrientValues) Keys() []Nutrient {
	keys := make([]Nutrient, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
