package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Recipe is a catalog row. Nutrients holds a JSON object of nutrient column
// name to amount, e.g. {"Protein": 12.5, "Fat": 3}.
type Recipe struct {
	gorm.Model
	Slot      string         `gorm:"size:16;not null;uniqueIndex:idx_recipe_slot_food"`
	FoodID    string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_recipe_slot_food"`
	Name      string         `gorm:"not null"`
	Calories  float64        `gorm:"not null"`
	Nutrients datatypes.JSON `gorm:"type:jsonb;not null"`
}
