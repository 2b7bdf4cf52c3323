package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// ErrRecipeExists is returned when saving would overwrite an existing recipe file.
var ErrRecipeExists = errors.New("recipe already exists")

// RecipeStore provides a file-based storage for recipes, one JSON file per recipe.
type RecipeStore struct {
	basePath string
}

// NewRecipeStore creates a new RecipeStore. The directory is not created
// until the first Save so that a missing directory can be reported on load.
func NewRecipeStore(basePath string) *RecipeStore {
	return &RecipeStore{basePath: basePath}
}

// Dir returns the directory the store reads from.
func (s *RecipeStore) Dir() string {
	return s.basePath
}

// slug makes a recipe name safe for filenames.
func slug(name string) string {
	var sb strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			lastDash = false
		case !lastDash && sb.Len() > 0:
			sb.WriteRune('_')
			lastDash = true
		}
	}
	return strings.TrimRight(sb.String(), "_")
}

func (s *RecipeStore) path(name string) string {
	return filepath.Join(s.basePath, slug(name)+".json")
}

// LoadAll reads every *.json recipe in the directory. A missing directory
// yields an empty catalog. Malformed records are skipped; their errors are
// logged and returned alongside the recipes that did load.
func (s *RecipeStore) LoadAll() ([]*recipe.Recipe, []error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn("Recipe directory does not exist", zap.String("dir", s.basePath))
			return nil, nil
		}
		return nil, []error{fmt.Errorf("failed to read recipe directory %s: %w", s.basePath, err)}
	}

	var (
		recipes  []*recipe.Recipe
		warnings []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		filePath := filepath.Join(s.basePath, entry.Name())
		data, err := os.ReadFile(filePath)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("failed to read %s: %w", entry.Name(), err))
			logger.Warn("Skipping unreadable recipe file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}

		rec, err := recipe.Decode(data)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("%s: %w", entry.Name(), err))
			logger.Warn("Skipping malformed recipe file", zap.String("file", entry.Name()), zap.Error(err))
			continue
		}
		recipes = append(recipes, rec)
	}

	return recipes, warnings
}

// Save stores a recipe as <slug>.json. Existing files are never overwritten.
func (s *RecipeStore) Save(rec *recipe.Recipe) (string, error) {
	data, err := recipe.Encode(rec)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create storage directory %s: %w", s.basePath, err)
	}

	filePath := s.path(rec.Name)
	f, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return "", fmt.Errorf("%w: %s", ErrRecipeExists, filePath)
		}
		return "", fmt.Errorf("failed to create recipe file: %w", err)
	}

	if err := writeRecipe(f, data); err != nil {
		f.Close()
		os.Remove(filePath)
		return "", fmt.Errorf("failed to write recipe file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to close recipe file: %w", err)
	}
	return filePath, nil
}

var writeRecipe = func(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}

// Exists checks if a recipe with the given name has been saved.
func (s *RecipeStore) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return !os.IsNotExist(err)
}

// KnownIngredient is a canonical ingredient name with the unit it was first recorded in.
type KnownIngredient struct {
	Name string
	Unit string
}

// KnownIngredients returns the distinct ingredient names used across the
// given recipes, sorted by name.
func KnownIngredients(recipes []*recipe.Recipe) []KnownIngredient {
	seen := make(map[string]string)
	for _, rec := range recipes {
		for _, ing := range rec.Ingredients {
			if _, ok := seen[ing.Name]; !ok {
				seen[ing.Name] = ing.Unit
			}
		}
	}

	known := make([]KnownIngredient, 0, len(seen))
	for name, unit := range seen {
		known = append(known, KnownIngredient{Name: name, Unit: unit})
	}
	sort.Slice(known, func(i, j int) bool { return known[i].Name < known[j].Name })
	return known
}
