package shopping

import (
	"errors"
	"os"
	"testing"

	"meal-planner/internal/logger"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

func withIngredients(name string, ings ...recipe.Ingredient) *recipe.Recipe {
	return &recipe.Recipe{Name: name, CookingTimeMin: 20, Servings: 2, Ingredients: ings, MealComponents: []recipe.MealComponent{recipe.Meat}}
}

func ing(name string, amount float64, unit string) recipe.Ingredient {
	return recipe.Ingredient{Name: name, Amount: amount, Unit: unit}
}

func TestAggregate(t *testing.T) {
	t.Run("SumsAcrossDaysWithScale", func(t *testing.T) {
		plan := planner.WeekPlan{
			planner.Monday: {Description: "A", Recipes: []*recipe.Recipe{
				withIngredients("Pasta", ing("onion", 1, "pc"), ing("pasta", 200, "g")),
			}},
			planner.Tuesday: {Description: "B", Recipes: []*recipe.Recipe{
				withIngredients("Soup", ing("onion", 2, "pc")),
			}},
			planner.Wednesday: {Description: "No cooking"},
		}

		s := Aggregate(plan, map[planner.Day]float64{planner.Tuesday: 1.5})
		assert.Empty(t, s.Warnings)
		assert.Equal(t, []Item{
			{Name: "onion", Amount: 4, Unit: "pc"},
			{Name: "pasta", Amount: 200, Unit: "g"},
		}, s.Items())
	})

	t.Run("MixedUnitsWarnAndSkip", func(t *testing.T) {
		plan := planner.WeekPlan{
			planner.Monday:  {Description: "A", Recipes: []*recipe.Recipe{withIngredients("Bread", ing("flour", 200, "g"))}},
			planner.Tuesday: {Description: "B", Recipes: []*recipe.Recipe{withIngredients("Pancakes", ing("flour", 1, "cup"))}},
		}

		s := Aggregate(plan, nil)
		flour, ok := s.Get("flour")
		require.True(t, ok)
		assert.Equal(t, Item{Name: "flour", Amount: 200, Unit: "g"}, flour)
		require.Len(t, s.Warnings, 1)
		assert.Equal(t, UnitMismatch{Name: "flour", Unit: "cup", RecordedUnit: "g"}, s.Warnings[0])
		assert.Equal(t, "Ingredient 'flour' has mixed units (cup vs g)", s.Warnings[0].String())
	})

	t.Run("FirstSeenUnitFollowsWeekOrder", func(t *testing.T) {
		plan := planner.WeekPlan{
			planner.Sunday: {Description: "A", Recipes: []*recipe.Recipe{withIngredients("Bread", ing("flour", 1, "cup"))}},
			planner.Monday: {Description: "B", Recipes: []*recipe.Recipe{withIngredients("Cake", ing("flour", 300, "g"))}},
		}
		flour, _ := Aggregate(plan, nil).Get("flour")
		assert.Equal(t, "g", flour.Unit)
		assert.Equal(t, 300.0, flour.Amount)
	})

	t.Run("Idempotent", func(t *testing.T) {
		plan := planner.WeekPlan{
			planner.Friday: {Description: "A", Recipes: []*recipe.Recipe{
				withIngredients("Curry", ing("rice", 150, "g"), ing("garlic", 2, "clove")),
				withIngredients("Naan", ing("flour", 250, "g")),
			}},
		}
		scale := map[planner.Day]float64{planner.Friday: 2}
		assert.Equal(t, Aggregate(plan, scale).Items(), Aggregate(plan, scale).Items())
	})

	t.Run("OrderIndependent", func(t *testing.T) {
		curry := withIngredients("Curry", ing("rice", 150, "g"), ing("onion", 1, "pc"))
		soup := withIngredients("Soup", ing("onion", 2, "pc"), ing("stock", 500, "ml"))
		salad := withIngredients("Salad", ing("lettuce", 1, "pc"), ing("onion", 0.5, "pc"))

		placements := []planner.WeekPlan{
			{
				planner.Monday:    {Description: "A", Recipes: []*recipe.Recipe{curry}},
				planner.Tuesday:   {Description: "B", Recipes: []*recipe.Recipe{soup}},
				planner.Wednesday: {Description: "C", Recipes: []*recipe.Recipe{salad}},
			},
			{
				planner.Sunday:   {Description: "A", Recipes: []*recipe.Recipe{salad, soup}},
				planner.Thursday: {Description: "B", Recipes: []*recipe.Recipe{curry}},
			},
			{
				planner.Friday: {Description: "A", Recipes: []*recipe.Recipe{soup, curry, salad}},
			},
		}

		want := []Item{
			{Name: "lettuce", Amount: 1, Unit: "pc"},
			{Name: "onion", Amount: 3.5, Unit: "pc"},
			{Name: "rice", Amount: 150, Unit: "g"},
			{Name: "stock", Amount: 500, Unit: "ml"},
		}
		for i, plan := range placements {
			s := Aggregate(plan, nil)
			assert.Empty(t, s.Warnings)
			assert.Equal(t, want, s.Items(), "placement %d", i)
		}
	})

	t.Run("EmptyPlan", func(t *testing.T) {
		s := Aggregate(planner.WeekPlan{}, nil)
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Items())
	})
}

func TestParseScaleFactor(t *testing.T) {
	cases := []struct {
		in      string
		want    float64
		invalid bool
	}{
		{"", 1.0, false},
		{"  ", 1.0, false},
		{"2", 2.0, false},
		{"0.5", 0.5, false},
		{"abc", 1.0, true},
		{"0", 1.0, true},
		{"-1", 1.0, true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseScaleFactor(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.invalid, errors.Is(err, ErrInvalidScaleFactor))
		})
	}
}
