package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/utils"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownNutrient is returned when the nutrient predictor asks for a
// nutrient the slot's catalog does not carry.
var ErrUnknownNutrient = errors.New("nutrient not in catalog")

// MealPlanBuilder turns per-slot calorie targets into plan entries.
type MealPlanBuilder struct {
	catalogs  Catalogs
	nutrients NutrientPredictor
	engine    *RecipeSearchEngine
	parallel  bool
}

func NewMealPlanBuilder(catalogs Catalogs, nutrients NutrientPredictor, engine *RecipeSearchEngine, parallel bool) *MealPlanBuilder {
	return &MealPlanBuilder{
		catalogs:  catalogs,
		nutrients: nutrients,
		engine:    engine,
		parallel:  parallel,
	}
}

// Build plans every meal slot. Slots are independent, so they may run
// concurrently; any failure fails the whole plan.
func (b *MealPlanBuilder) Build(ctx context.Context, budget CalorieBudget) (map[models.MealSlot]models.MealPlanEntry, error) {
	entries := make([]models.MealPlanEntry, len(models.MealSlots))

	g, gctx := errgroup.WithContext(ctx)
	if !b.parallel {
		g.SetLimit(1)
	}
	for i, slot := range models.MealSlots {
		i, slot := i, slot
		g.Go(func() error {
			e, err := b.buildSlot(gctx, slot, budget[slot])
			if err != nil {
				return err
			}
			entries[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[models.MealSlot]models.MealPlanEntry, len(entries))
	for i, slot := range models.MealSlots {
		out[slot] = entries[i]
	}
	return out, nil
}

func (b *MealPlanBuilder) buildSlot(ctx context.Context, slot models.MealSlot, calories float64) (models.MealPlanEntry, error) {
	cat, ok := b.catalogs[slot]
	if !ok {
		return models.MealPlanEntry{}, fmt.Errorf("no recipe catalog loaded for %s", slot)
	}

	targets, err := b.nutrients.PredictNutrients(ctx, slot, calories)
	if err != nil {
		return models.MealPlanEntry{}, fmt.Errorf("predict %s nutrients: %w", slot, err)
	}
	// an empty catalog has no columns to check and yields no recipes
	if cat.Len() > 0 {
		for n := range targets {
			if !cat.HasColumn(n) {
				return models.MealPlanEntry{}, fmt.Errorf("%w: %s catalog has no %q column", ErrUnknownNutrient, slot, n)
			}
		}
	}

	// search on the full target set; only the response is trimmed
	chosen, complete := b.engine.Search(ctx, cat, calories, targets)
	if !complete {
		return models.MealPlanEntry{}, fmt.Errorf("%s recipe search: %w", slot, ctx.Err())
	}

	recipes := make([]models.RecipeSuggestion, 0, len(chosen))
	for _, it := range chosen {
		recipes = append(recipes, models.RecipeSuggestion{
			RecipeID:   it.ID,
			RecipeName: it.Name,
			Calories:   it.Calories,
			Nutrients:  it.Nutrients.Filter(models.PriorityNutrients),
		})
	}

	display := targets.Filter(models.PriorityNutrients)
	for n, v := range display {
		display[n] = utils.Round2(v)
	}

	utils.Log.Debug("meal slot planned",
		zap.String("slot", string(slot)),
		zap.Float64("target_calories", calories),
		zap.Int("recipes", len(recipes)))

	return models.MealPlanEntry{
		TargetCalories:  utils.Round2(calories),
		TargetNutrients: display,
		Recipes:         recipes,
	}, nil
}
