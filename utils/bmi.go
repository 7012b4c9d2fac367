package utils

import (
	"math"

	"github.com/Isann22/NutriTrack-Backend/models"
)

// CalculateBMI expects height in meters and weight in kilograms.
// ok is false for a non-positive height; the caller decides what that means.
func CalculateBMI(weightKg, heightM float64) (bmi float64, ok bool) {
	if heightM <= 0 {
		return 0, false
	}
	return weightKg / (heightM * heightM), true
}

// CalculateBMR is the revised Harris-Benedict equation. Every non-male
// profile uses the female coefficients.
func CalculateBMR(age int, weightKg, heightM float64, gender models.Gender) float64 {
	heightCm := heightM * 100
	if gender == models.Male {
		return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
	}
	return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
