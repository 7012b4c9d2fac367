package models

import (
	"fmt"
	"strings"
)

type Gender string

const (
	Male   Gender = "M"
	Female Gender = "F"
)

// ParseGender accepts "M"/"F" and "male"/"female" in any case.
func ParseGender(s string) (Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m", "male":
		return Male, nil
	case "f", "female":
		return Female, nil
	}
	return "", fmt.Errorf("invalid gender %q", s)
}

// Code is the categorical encoding fed to the energy predictor (F=0, M=1).
func (g Gender) Code() float64 {
	if g == Male {
		return 1
	}
	return 0
}

type ActivityLevel string

const (
	Sedentary  ActivityLevel = "Sedentary"
	Active     ActivityLevel = "Active"
	VeryActive ActivityLevel = "Very Active"
)

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:  1.2,
	Active:     1.55,
	VeryActive: 1.725,
}

// Multiplier returns the activity factor; unknown levels count as Sedentary.
func (a ActivityLevel) Multiplier() float64 {
	if m, ok := activityMultipliers[a]; ok {
		return m
	}
	return activityMultipliers[Sedentary]
}

type WeightGoal string

const (
	LoseWeight WeightGoal = "Lose Weight"
	Maintain   WeightGoal = "Maintain"
	GainWeight WeightGoal = "Gain Weight"
)

func ParseWeightGoal(s string) (WeightGoal, error) {
	switch g := WeightGoal(strings.TrimSpace(s)); g {
	case LoseWeight, Maintain, GainWeight:
		return g, nil
	}
	return "", fmt.Errorf("invalid weight goal %q (want %q, %q or %q)", s, LoseWeight, Maintain, GainWeight)
}

// ProfileInput is the physiological profile of one recommendation request.
// Height is in meters, weight in kilograms.
type ProfileInput struct {
	Age           int
	Weight        float64
	Height        float64
	Gender        Gender
	ActivityLevel ActivityLevel
	WeightGoal    WeightGoal
}
