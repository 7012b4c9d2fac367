package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/Isann22/NutriTrack-Backend/utils"
	"go.uber.org/zap"
)

var ErrCatalogInvalid = errors.New("invalid recipe catalog")

// RecipeRecord is the raw, unvalidated form of a catalog entry as stored in
// Postgres, S3 or a local JSON file.
type RecipeRecord struct {
	FoodID    string             `json:"food_id"`
	Name      string             `json:"food"`
	Calories  float64            `json:"Caloric Value"`
	Nutrients map[string]float64 `json:"nutrients"`
}

// CatalogSource loads the raw recipes of one meal slot.
type CatalogSource interface {
	LoadRecipes(ctx context.Context, slot models.MealSlot) ([]RecipeRecord, error)
}

type CatalogItem struct {
	ID        string
	Name      string
	Calories  float64
	Nutrients models.NutrientValues
}

// RecipeCatalog is the validated, read-only recipe set of one meal slot.
// Every item carries exactly the nutrients listed in Columns.
type RecipeCatalog struct {
	slot    models.MealSlot
	columns []models.Nutrient
	items   []CatalogItem
}

// NewRecipeCatalog validates records: ids must be unique, nutrient names
// recognized and the required macros present. All records share one column set.
func NewRecipeCatalog(slot models.MealSlot, records []RecipeRecord) (*RecipeCatalog, error) {
	c := &RecipeCatalog{slot: slot, items: make([]CatalogItem, 0, len(records))}
	var colSet map[models.Nutrient]struct{}
	seen := make(map[string]struct{}, len(records))

	for i, r := range records {
		id := r.FoodID
		if id == "" {
			id = r.Name
		}
		if id == "" {
			return nil, fmt.Errorf("%w: %s record %d has no food_id or name", ErrCatalogInvalid, slot, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %s recipe %q appears more than once", ErrCatalogInvalid, slot, id)
		}
		seen[id] = struct{}{}
		if r.Calories < 0 {
			return nil, fmt.Errorf("%w: %s recipe %q has negative calories", ErrCatalogInvalid, slot, id)
		}
		nut, err := models.ParseNutrientValues(r.Nutrients)
		if err != nil {
			return nil, fmt.Errorf("%w: %s recipe %q: %v", ErrCatalogInvalid, slot, id, err)
		}
		for _, req := range models.RequiredNutrients {
			if _, ok := nut[req]; !ok {
				return nil, fmt.Errorf("%w: %s recipe %q is missing %s", ErrCatalogInvalid, slot, id, req)
			}
		}

		if colSet == nil {
			colSet = make(map[models.Nutrient]struct{}, len(nut))
			for n := range nut {
				colSet[n] = struct{}{}
			}
			c.columns = nut.Keys()
		} else {
			if len(nut) != len(colSet) {
				return nil, fmt.Errorf("%w: %s recipe %q has %d nutrient columns, expected %d",
					ErrCatalogInvalid, slot, id, len(nut), len(colSet))
			}
			for n := range nut {
				if _, ok := colSet[n]; !ok {
					return nil, fmt.Errorf("%w: %s recipe %q has unexpected column %s", ErrCatalogInvalid, slot, id, n)
				}
			}
		}

		name := r.Name
		if name == "" {
			name = id
		}
		c.items = append(c.items, CatalogItem{ID: id, Name: name, Calories: r.Calories, Nutrients: nut})
	}
	return c, nil
}

func (c *RecipeCatalog) Slot() models.MealSlot { return c.slot }

func (c *RecipeCatalog) Len() int { return len(c.items) }

// Columns returns the nutrient columns in a stable order.
func (c *RecipeCatalog) Columns() []models.Nutrient {
	return append([]models.Nutrient(nil), c.columns...)
}

func (c *RecipeCatalog) HasColumn(n models.Nutrient) bool {
	i := sort.Search(len(c.columns), func(i int) bool { return c.columns[i] >= n })
	return i < len(c.columns) && c.columns[i] == n
}

// Item returns the i-th recipe. Callers must not mutate its nutrient map.
func (c *RecipeCatalog) Item(i int) CatalogItem { return c.items[i] }

// Catalogs bundles the catalogs of all meal slots.
type Catalogs map[models.MealSlot]*RecipeCatalog

// LoadCatalogs loads and validates the catalog of every meal slot.
func LoadCatalogs(ctx context.Context, src CatalogSource) (Catalogs, error) {
	out := make(Catalogs, len(models.MealSlots))
	for _, slot := range models.MealSlots {
		records, err := src.LoadRecipes(ctx, slot)
		if err != nil {
			return nil, fmt.Errorf("load %s catalog: %w", slot, err)
		}
		cat, err := NewRecipeCatalog(slot, records)
		if err != nil {
			return nil, err
		}
		utils.Log.Info("recipe catalog loaded",
			zap.String("slot", string(slot)),
			zap.Int("recipes", cat.Len()),
			zap.Int("nutrients", len(cat.columns)))
		out[slot] = cat
	}
	return out, nil
}

// FileCatalogSource reads <dir>/<slot>.json, each a JSON array of records.
type FileCatalogSource struct {
	Dir string
}

func NewFileCatalogSource(dir string) *FileCatalogSource {
	return &FileCatalogSource{Dir: dir}
}

func (s *FileCatalogSource) LoadRecipes(_ context.Context, slot models.MealSlot) ([]RecipeRecord, error) {
	path := filepath.Join(s.Dir, string(slot)+".json")
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return decodeRecipeRecords(b)
}

func decodeRecipeRecords(b []byte) ([]RecipeRecord, error) {
	var records []RecipeRecord
	if err := json.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return records, nil
}
