package storage

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.Set(zap.NewNop())
	os.Exit(m.Run())
}

func TestRecipeStore(t *testing.T) {
	tempDir := filepath.Join(t.TempDir(), "recipes")
	store := NewRecipeStore(tempDir)

	rec := &recipe.Recipe{
		Name:           "Pan-Fried Salmon",
		Ingredients:    []recipe.Ingredient{{Name: "salmon", Amount: 300, Unit: "g"}},
		CookingTimeMin: 20,
		Servings:       2,
		MealComponents: []recipe.MealComponent{recipe.Meat},
	}

	t.Run("LoadAll-MissingDir", func(t *testing.T) {
		recipes, warnings := store.LoadAll()
		assert.Empty(t, recipes)
		assert.Empty(t, warnings)
	})

	t.Run("CheckExists-False", func(t *testing.T) {
		assert.False(t, store.Exists(rec.Name))
	})

	t.Run("Save", func(t *testing.T) {
		path, err := store.Save(rec)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(tempDir, "pan_fried_salmon.json"), path)

		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("CheckExists-True", func(t *testing.T) {
		assert.True(t, store.Exists(rec.Name))
	})

	t.Run("Save-NoOverwrite", func(t *testing.T) {
		_, err := store.Save(rec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrRecipeExists))
	})

	t.Run("Save-WriteFailureLeavesNoFile", func(t *testing.T) {
		soup := &recipe.Recipe{
			Name:           "Tomato Soup",
			CookingTimeMin: 30,
			Servings:       4,
			MealComponents: []recipe.MealComponent{recipe.Vegetable},
		}

		orig := writeRecipe
		writeRecipe = func(w io.Writer, data []byte) error {
			_, _ = w.Write(data[:len(data)/2])
			return errors.New("disk full")
		}
		_, err := store.Save(soup)
		writeRecipe = orig

		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.False(t, store.Exists(soup.Name))

		path, err := store.Save(soup)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))
	})

	t.Run("Save-Invalid", func(t *testing.T) {
		_, err := store.Save(&recipe.Recipe{Name: "Broken"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, recipe.ErrInvalidRecipe))
	})

	t.Run("LoadAll-SkipsMalformed", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "broken.json"), []byte("{"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "bad_servings.json"),
			[]byte(`{"name": "Soup", "cooking_time_min": 10, "servings": 0, "meal_components": ["vegetable"]}`), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(tempDir, "notes.txt"), []byte("ignored"), 0644))

		recipes, warnings := store.LoadAll()
		require.Len(t, recipes, 1)
		assert.Equal(t, "Pan-Fried Salmon", recipes[0].Name)
		assert.Len(t, warnings, 2)
	})
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "spaghetti_bolognese", slug("Spaghetti Bolognese"))
	assert.Equal(t, "mac_cheese", slug("  Mac & Cheese! "))
	assert.Equal(t, "crème_brûlée", slug("Crème Brûlée"))
}

func TestKnownIngredients(t *testing.T) {
	recipes := []*recipe.Recipe{
		{Ingredients: []recipe.Ingredient{{Name: "onion", Unit: "piece"}, {Name: "flour", Unit: "g"}}},
		{Ingredients: []recipe.Ingredient{{Name: "flour", Unit: "cup"}, {Name: "butter", Unit: "g"}}},
	}

	known := KnownIngredients(recipes)
	assert.Equal(t, []KnownIngredient{
		{Name: "butter", Unit: "g"},
		{Name: "flour", Unit: "g"},
		{Name: "onion", Unit: "piece"},
	}, known)
}
