package services

import (
	"context"
	"math/rand"
	"testing"

	"github.com/Isann22/NutriTrack-Backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func macros(p, c, f float64) models.NutrientValues {
	return models.NutrientValues{models.Protein: p, models.Carbohydrates: c, models.Fat: f}
}

func TestSearchEmptyCatalog(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 1})

	got, _ := e.Search(context.Background(), mustCatalog(t, models.Lunch), 500, macros(10, 10, 10))
	assert.NotNil(t, got)
	assert.Empty(t, got)

	got, _ = e.Search(context.Background(), nil, 500, macros(10, 10, 10))
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchSingleRecipeFallsBack(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 1})
	cat := mustCatalog(t, models.Breakfast, rec("a", 100, 5, 10, 2))

	got, _ := e.Search(context.Background(), cat, 500, macros(30, 60, 15))
	assert.Equal(t, []string{"a"}, ids(got))
}

func TestSearchFindsExactPair(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 7})
	cat := mustCatalog(t, models.Lunch,
		rec("a", 200, 10, 20, 5),
		rec("b", 300, 20, 30, 10),
	)

	got, _ := e.Search(context.Background(), cat, 500, macros(30, 50, 15))
	assert.ElementsMatch(t, []string{"a", "b"}, ids(got))
}

func TestSearchCalorieGateBeatsNutrients(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 3})
	cat := mustCatalog(t, models.Dinner,
		rec("heavy", 1000, 30, 50, 15),
		rec("in-gate", 480, 1, 1, 1),
		rec("perfect-macros", 700, 30, 50, 15),
	)

	// only "in-gate" alone lands within ±15% of 500 kcal
	got, _ := e.Search(context.Background(), cat, 500, macros(30, 50, 15))
	assert.Equal(t, []string{"in-gate"}, ids(got))
}

func TestSearchFallbackClosestCalories(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 11})
	cat := mustCatalog(t, models.Lunch,
		rec("a", 50, 1, 1, 1),
		rec("b", 60, 1, 1, 1),
	)

	got, _ := e.Search(context.Background(), cat, 1000, macros(30, 50, 15))
	assert.ElementsMatch(t, []string{"a", "b"}, ids(got))
}

func TestSearchDeterministicWithSeed(t *testing.T) {
	cat := mustCatalog(t, models.Lunch,
		rec("a", 150, 10, 20, 5),
		rec("b", 220, 12, 25, 8),
		rec("c", 310, 20, 30, 10),
		rec("d", 90, 4, 12, 2),
		rec("e", 260, 18, 22, 9),
	)
	target := macros(25, 45, 12)

	for _, workers := range []int{1, 4} {
		first := NewRecipeSearchEngine(SearchConfig{Seed: 42, Workers: workers, MaxAttempts: 800})
		second := NewRecipeSearchEngine(SearchConfig{Seed: 42, Workers: workers, MaxAttempts: 800})
		a, _ := first.Search(context.Background(), cat, 480, target)
		b, _ := second.Search(context.Background(), cat, 480, target)
		require.NotEmpty(t, a)
		assert.Equal(t, ids(a), ids(b), "workers=%d", workers)
		// same engine, fixed seed: every call replays
		again, _ := first.Search(context.Background(), cat, 480, target)
		assert.Equal(t, ids(a), ids(again))
	}
}

func TestSearchWorkersFindExactPair(t *testing.T) {
	e := NewRecipeSearchEngine(SearchConfig{Seed: 5, Workers: 4})
	cat := mustCatalog(t, models.Lunch,
		rec("a", 200, 10, 20, 5),
		rec("b", 300, 20, 30, 10),
	)

	got, _ := e.Search(context.Background(), cat, 500, macros(30, 50, 15))
	assert.ElementsMatch(t, []string{"a", "b"}, ids(got))
}

func TestSearchCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewRecipeSearchEngine(SearchConfig{Seed: 1})
	cat := mustCatalog(t, models.Lunch, rec("a", 500, 30, 50, 15))

	got, complete := e.Search(ctx, cat, 500, macros(30, 50, 15))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.False(t, complete)
}

func TestSearchReportsCompletion(t *testing.T) {
	cat := mustCatalog(t, models.Lunch, rec("a", 500, 30, 50, 15), rec("b", 250, 10, 20, 5))
	for _, workers := range []int{1, 3} {
		e := NewRecipeSearchEngine(SearchConfig{Seed: 2, Workers: workers, MaxAttempts: 300})
		got, complete := e.Search(context.Background(), cat, 500, macros(30, 50, 15))
		assert.NotEmpty(t, got)
		assert.True(t, complete, "workers=%d", workers)
	}

	// nothing to sample means nothing was cut short
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, complete := NewRecipeSearchEngine(SearchConfig{Seed: 2}).Search(ctx, mustCatalog(t, models.Lunch), 500, nil)
	assert.True(t, complete)
}

func TestScoreCombination(t *testing.T) {
	target := macros(30, 50, 15)
	assert.Equal(t, 0.0, scoreCombination(500, macros(30, 50, 15), 500, target))

	// calorie term saturates at 1
	assert.InDelta(t, 0.25, scoreCombination(1000, macros(30, 50, 15), 500, target), 1e-9)

	// protein is off by 10% against a 15% tolerance
	got := scoreCombination(500, models.NutrientValues{models.Protein: 110}, 500, models.NutrientValues{models.Protein: 100})
	assert.InDelta(t, (0.1/0.15)/2, got, 1e-9)

	// sodium uses the default 25% tolerance
	got = scoreCombination(500, models.NutrientValues{models.Sodium: 110}, 500, models.NutrientValues{models.Sodium: 100})
	assert.InDelta(t, (0.1/0.25)/2, got, 1e-9)

	// zero target always counts as a full miss
	got = scoreCombination(500, models.NutrientValues{models.Sugars: 0}, 500, models.NutrientValues{models.Sugars: 0})
	assert.InDelta(t, 0.5, got, 1e-9)
}

func TestErrorTerm(t *testing.T) {
	assert.InDelta(t, 0.5, errorTerm(105, 100, 0.10), 1e-9)
	assert.InDelta(t, 0.5, errorTerm(95, 100, 0.10), 1e-9)
	assert.Equal(t, 1.0, errorTerm(200, 100, 0.10))
	assert.Equal(t, 1.0, errorTerm(5, 0, 0.10))
}

func TestSearchStateMergePrefersReceiverOnTie(t *testing.T) {
	a := newSearchState()
	a = a.step(combo{idx: [3]int{0}, n: 1}, 500, func() float64 { return 0.2 }, 500)
	b := newSearchState()
	b = b.step(combo{idx: [3]int{1}, n: 1}, 500, func() float64 { return 0.2 }, 500)

	c, ok := a.merge(b).result()
	require.True(t, ok)
	assert.Equal(t, 0, c.idx[0])

	c, ok = b.merge(a).result()
	require.True(t, ok)
	assert.Equal(t, 1, c.idx[0])
}

func TestSearchStateGateSkipsScoring(t *testing.T) {
	s := newSearchState()
	called := false
	s = s.step(combo{n: 1}, 900, func() float64 { called = true; return 0 }, 500)
	assert.False(t, called)
	assert.False(t, s.hasBest)
	assert.True(t, s.hasFallback)
}

func TestSampleComboDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		c := sampleCombo(rng, 3, 3)
		require.Equal(t, 3, c.n)
		seen := map[int]bool{}
		for j := 0; j < c.n; j++ {
			assert.False(t, seen[c.idx[j]], "duplicate index in %v", c.idx)
			seen[c.idx[j]] = true
		}
	}
}

func TestPickComboSizeWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	counts := map[int]int{}
	const draws = 20000
	for i := 0; i < draws; i++ {
		counts[pickComboSize(rng)]++
	}
	assert.InDelta(t, 0.2, float64(counts[1])/draws, 0.02)
	assert.InDelta(t, 0.3, float64(counts[2])/draws, 0.02)
	assert.InDelta(t, 0.5, float64(counts[3])/draws, 0.02)
}
