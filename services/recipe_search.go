package services

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/Isann22/NutriTrack-Backend/models"
)

const (
	DefaultMaxAttempts = 5000

	// calories of a combination must land within ±15% of the slot target
	// before it is scored at all
	calorieGate      = 0.15
	calorieTolerance = 0.10
	defaultTolerance = 0.25

	// how often the sampling loop looks at ctx
	cancelCheckEvery = 256
)

// nutrientTolerance is the per-nutrient relative error that saturates a score
// term. Everything else uses defaultTolerance.
var nutrientTolerance = map[models.Nutrient]float64{
	models.Protein:       0.15,
	models.Carbohydrates: 0.15,
	models.Fat:           0.15,
}

// SearchConfig tunes the recipe search. Zero values fall back to defaults;
// Seed 0 means a time-based seed.
type SearchConfig struct {
	MaxAttempts int
	Workers     int
	Seed        int64
}

// RecipeSearchEngine looks for a combination of 1-3 distinct recipes whose
// totals best match a meal's calorie and nutrient targets, using a fixed
// budget of random samples.
type RecipeSearchEngine struct {
	maxAttempts int
	workers     int
	seed        int64

	mu      sync.Mutex
	seedGen *rand.Rand
}

func NewRecipeSearchEngine(cfg SearchConfig) *RecipeSearchEngine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RecipeSearchEngine{
		maxAttempts: cfg.MaxAttempts,
		workers:     cfg.Workers,
		seed:        cfg.Seed,
		seedGen:     rand.New(rand.NewSource(seed)),
	}
}

// combo is a sampled combination: indices into the catalog.
type combo struct {
	idx [3]int
	n   int
}

// searchState is the accumulator of the sampling fold. step never mutates
// the receiver.
type searchState struct {
	bestScore float64
	best      combo
	hasBest   bool

	minDiff     float64
	fallback    combo
	hasFallback bool
}

func newSearchState() searchState {
	return searchState{bestScore: math.Inf(1), minDiff: math.Inf(1)}
}

func (s searchState) step(c combo, calories float64, score func() float64, target float64) searchState {
	if diff := math.Abs(calories - target); diff < s.minDiff {
		s.minDiff = diff
		s.fallback = c
		s.hasFallback = true
	}
	if calories < target*(1-calorieGate) || calories > target*(1+calorieGate) {
		return s
	}
	if sc := score(); sc < s.bestScore {
		s.bestScore = sc
		s.best = c
		s.hasBest = true
	}
	return s
}

// merge combines two partial states. On ties the receiver wins, so merging
// partitions in order keeps "first found wins".
func (s searchState) merge(o searchState) searchState {
	if o.hasBest && o.bestScore < s.bestScore {
		s.bestScore, s.best, s.hasBest = o.bestScore, o.best, true
	}
	if o.hasFallback && o.minDiff < s.minDiff {
		s.minDiff, s.fallback, s.hasFallback = o.minDiff, o.fallback, true
	}
	return s
}

func (s searchState) result() (combo, bool) {
	if s.hasBest {
		return s.best, true
	}
	if s.hasFallback {
		return s.fallback, true
	}
	return combo{}, false
}

// Search returns the chosen recipes, or an empty slice when the catalog could
// not produce a single sample. It never fails: when ctx is done it returns
// the best combination found so far with complete set to false.
func (e *RecipeSearchEngine) Search(ctx context.Context, cat *RecipeCatalog, targetCal float64, targets models.NutrientValues) (items []CatalogItem, complete bool) {
	if cat == nil || cat.Len() == 0 {
		return []CatalogItem{}, true
	}

	workers := e.workers
	if workers > e.maxAttempts {
		workers = e.maxAttempts
	}
	states := make([]searchState, workers)
	cut := make([]bool, workers)
	seeds := e.nextSeeds(workers)

	if workers == 1 {
		states[0], cut[0] = e.run(ctx, cat, targetCal, targets, e.maxAttempts, seeds[0])
	} else {
		var wg sync.WaitGroup
		per, rem := e.maxAttempts/workers, e.maxAttempts%workers
		for w := 0; w < workers; w++ {
			attempts := per
			if w < rem {
				attempts++
			}
			wg.Add(1)
			go func(w, attempts int) {
				defer wg.Done()
				states[w], cut[w] = e.run(ctx, cat, targetCal, targets, attempts, seeds[w])
			}(w, attempts)
		}
		wg.Wait()
	}

	complete = true
	for _, c := range cut {
		if c {
			complete = false
		}
	}

	final := states[0]
	for _, s := range states[1:] {
		final = final.merge(s)
	}
	c, ok := final.result()
	if !ok {
		return []CatalogItem{}, complete
	}
	out := make([]CatalogItem, 0, c.n)
	for i := 0; i < c.n; i++ {
		out = append(out, cat.Item(c.idx[i]))
	}
	return out, complete
}

// nextSeeds derives one seed per worker. With a fixed Seed every call
// replays the same sequence.
func (e *RecipeSearchEngine) nextSeeds(n int) []int64 {
	seeds := make([]int64, n)
	if e.seed != 0 {
		for i := range seeds {
			seeds[i] = e.seed + int64(i)
		}
		return seeds
	}
	e.mu.Lock()
	for i := range seeds {
		seeds[i] = e.seedGen.Int63()
	}
	e.mu.Unlock()
	return seeds
}

// run samples one partition. cut reports that ctx ended it before its
// attempt budget was spent.
func (e *RecipeSearchEngine) run(ctx context.Context, cat *RecipeCatalog, targetCal float64, targets models.NutrientValues, attempts int, seed int64) (state searchState, cut bool) {
	rng := rand.New(rand.NewSource(seed))
	state = newSearchState()
	n := cat.Len()

	for i := 0; i < attempts; i++ {
		if i%cancelCheckEvery == 0 && ctx.Err() != nil {
			return state, true
		}
		k := pickComboSize(rng)
		if n < k {
			continue
		}
		c := sampleCombo(rng, n, k)
		calories := comboCalories(cat, c)
		state = state.step(c, calories, func() float64 {
			return scoreCombination(calories, comboNutrients(cat, c, targets), targetCal, targets)
		}, targetCal)
	}
	return state, false
}

// pickComboSize draws 1, 2 or 3 with weights 0.2, 0.3, 0.5.
func pickComboSize(rng *rand.Rand) int {
	switch r := rng.Float64(); {
	case r < 0.2:
		return 1
	case r < 0.5:
		return 2
	default:
		return 3
	}
}

// sampleCombo draws k distinct indices from [0, n). Requires k <= n.
func sampleCombo(rng *rand.Rand, n, k int) combo {
	var c combo
	for c.n < k {
		i := rng.Intn(n)
		dup := false
		for j := 0; j < c.n; j++ {
			if c.idx[j] == i {
				dup = true
				break
			}
		}
		if !dup {
			c.idx[c.n] = i
			c.n++
		}
	}
	return c
}

func comboCalories(cat *RecipeCatalog, c combo) float64 {
	var sum float64
	for i := 0; i < c.n; i++ {
		sum += cat.items[c.idx[i]].Calories
	}
	return sum
}

func comboNutrients(cat *RecipeCatalog, c combo, targets models.NutrientValues) models.NutrientValues {
	out := make(models.NutrientValues, len(targets))
	for n := range targets {
		var sum float64
		for i := 0; i < c.n; i++ {
			sum += cat.items[c.idx[i]].Nutrients[n]
		}
		out[n] = sum
	}
	return out
}

// scoreCombination averages one calorie term and one term per target
// nutrient. Each term is the relative error over its tolerance, capped at
// 1. Lower is better; 0 is a perfect match.
func scoreCombination(actualCal float64, actual models.NutrientValues, targetCal float64, targets models.NutrientValues) float64 {
	sum := errorTerm(actualCal, targetCal, calorieTolerance)
	for n, want := range targets {
		tol, ok := nutrientTolerance[n]
		if !ok {
			tol = defaultTolerance
		}
		sum += errorTerm(actual[n], want, tol)
	}
	return sum / float64(len(targets)+1)
}

func errorTerm(actual, target, tol float64) float64 {
	relErr := 1.0
	if target != 0 {
		relErr = math.Abs(actual-target) / target
	}
	return math.Min(relErr/tol, 1.0)
}
