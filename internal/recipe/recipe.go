package recipe

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRecipe is returned when a recipe record fails validation.
var ErrInvalidRecipe = errors.New("invalid recipe")

// MealComponent is one of the nutritional roles a recipe can fill on a plate.
type MealComponent string

const (
	Meat      MealComponent = "meat"
	Vegetable MealComponent = "vegetable"
	Carb      MealComponent = "carb"
)

// Components lists every known meal component.
var Components = []MealComponent{Meat, Vegetable, Carb}

// Valid reports whether c is a known component.
func (c MealComponent) Valid() bool {
	switch c {
	case Meat, Vegetable, Carb:
		return true
	}
	return false
}

// Ingredient is a single quantified ingredient line of a recipe.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (i Ingredient) String() string {
	return fmt.Sprintf("%g %s of %s", i.Amount, i.Unit, i.Name)
}

// Recipe is the persisted recipe record. Recipes are read-only once loaded
// for a planning session; planners compare them by pointer identity.
type Recipe struct {
	Name           string          `json:"name"`
	Ingredients    []Ingredient    `json:"ingredients"`
	CookingTimeMin int             `json:"cooking_time_min"`
	Servings       int             `json:"servings"`
	MealComponents []MealComponent `json:"meal_components"`
	RecipeLink     *string         `json:"recipe_link"`
}

// Has reports whether the recipe lists the given component.
func (r *Recipe) Has(c MealComponent) bool {
	for _, mc := range r.MealComponents {
		if mc == c {
			return true
		}
	}
	return false
}

// Validate checks the invariants of a recipe record.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	if r.CookingTimeMin < 0 {
		return fmt.Errorf("%w: %q has negative cooking time %d", ErrInvalidRecipe, r.Name, r.CookingTimeMin)
	}
	if r.Servings <= 0 {
		return fmt.Errorf("%w: %q must serve at least one person", ErrInvalidRecipe, r.Name)
	}
	for _, mc := range r.MealComponents {
		if !mc.Valid() {
			return fmt.Errorf("%w: %q has unknown meal component %q", ErrInvalidRecipe, r.Name, mc)
		}
	}
	for i, ing := range r.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return fmt.Errorf("%w: %q ingredient %d has no name", ErrInvalidRecipe, r.Name, i)
		}
	}
	return nil
}

func (r *Recipe) String() string {
	ingredients := make([]string, len(r.Ingredients))
	for i, ing := range r.Ingredients {
		ingredients[i] = ing.String()
	}
	components := make([]string, len(r.MealComponents))
	for i, mc := range r.MealComponents {
		components[i] = string(mc)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Recipe: %s\n", r.Name)
	fmt.Fprintf(&sb, "Ingredients: %s\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&sb, "Cooking Time: %d minutes\n", r.CookingTimeMin)
	fmt.Fprintf(&sb, "Servings: %d\n", r.Servings)
	fmt.Fprintf(&sb, "Meal Components: %s", strings.Join(components, ", "))
	return sb.String()
}

// Decode parses and validates a single recipe record.
func Decode(data []byte) (*Recipe, error) {
	var rec Recipe
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Encode renders a recipe record as indented JSON.
func Encode(rec *Recipe) ([]byte, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recipe: %w", err)
	}
	return data, nil
}
