package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"meal-planner/internal/clipper"
	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"
	"meal-planner/internal/storage"

	"go.uber.org/zap"
)

// AddRecipe authors a recipe interactively and saves it to the recipe
// directory. A non-empty url pre-fills the answers from the page. Every
// ingredient name is checked against the names already in use.
func (a *App) AddRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	known := storage.KnownIngredients(a.LoadRecipes())
	units := make(map[string]string, len(known))
	names := make([]string, len(known))
	for i, k := range known {
		names[i] = k.Name
		units[k.Name] = k.Unit
	}

	draft := &recipe.Recipe{}
	if url != "" {
		if a.recipeClipper == nil {
			return nil, errors.New("recipe import is not available")
		}
		clipped, err := a.recipeClipper.ClipURL(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("failed to import recipe: %w", err)
		}
		draft = clipped.Recipe
		for _, line := range clipped.Unparsed {
			fmt.Fprintf(a.out, "Could not read ingredient %q, add it by hand if needed.\n", line)
		}
	}

	name, err := a.prompter.Input("Recipe name:", draft.Name)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if a.recipeStore.Exists(name) {
		return nil, fmt.Errorf("%w: %s", storage.ErrRecipeExists, name)
	}

	minutes, err := a.askInt("Cooking time in minutes:", draft.CookingTimeMin, 0)
	if err != nil {
		return nil, err
	}
	servings, err := a.askInt("Servings:", max(draft.Servings, 1), 1)
	if err != nil {
		return nil, err
	}

	componentLabels := make([]string, len(recipe.Components))
	for i, c := range recipe.Components {
		componentLabels[i] = string(c)
	}
	picked, err := a.prompter.MultiSelect("Meal components:", componentLabels)
	if err != nil {
		return nil, err
	}
	components := make([]recipe.MealComponent, len(picked))
	for i, p := range picked {
		components[i] = recipe.MealComponent(p)
	}

	var ingredients []recipe.Ingredient
	for _, ing := range draft.Ingredients {
		fixed, err := a.canonicalize(ing, names, units)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, fixed)
	}
	for {
		line, err := a.prompter.Input("Ingredient, e.g. \"200 g flour\" (empty to finish):", "")
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(line) == "" {
			break
		}
		ing, ok := clipper.ParseIngredientLine(line)
		if !ok {
			fmt.Fprintf(a.out, "Could not read %q, use \"<amount> [unit] <name>\".\n", line)
			continue
		}
		fixed, err := a.canonicalize(ing, names, units)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, fixed)
	}

	link := ""
	if draft.RecipeLink != nil {
		link = *draft.RecipeLink
	}
	link, err = a.prompter.Input("Recipe link (optional):", link)
	if err != nil {
		return nil, err
	}

	rec := &recipe.Recipe{
		Name:           name,
		Ingredients:    ingredients,
		CookingTimeMin: minutes,
		Servings:       servings,
		MealComponents: components,
	}
	if link = strings.TrimSpace(link); link != "" {
		rec.RecipeLink = &link
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}

	path, err := a.recipeStore.Save(rec)
	if err != nil {
		return nil, err
	}
	logger.Info("Saved recipe", zap.String("name", rec.Name), zap.String("path", path))
	fmt.Fprintf(a.out, "Saved %s to %s\n", rec.Name, path)
	return rec, nil
}

// canonicalize offers the closest known ingredient name. Accepting it also
// adopts the unit that name is recorded in.
func (a *App) canonicalize(ing recipe.Ingredient, names []string, units map[string]string) (recipe.Ingredient, error) {
	suggestion, ok := a.SuggestIngredientName(ing.Name, names)
	if !ok || suggestion == ing.Name && units[suggestion] == ing.Unit {
		return ing, nil
	}

	msg := fmt.Sprintf("Use the known ingredient %q (%s) for %q?", suggestion, units[suggestion], ing.Name)
	accept, err := a.prompter.Confirm(msg, true)
	if err != nil {
		return ing, err
	}
	if !accept {
		return ing, nil
	}
	if unit := units[suggestion]; unit != ing.Unit {
		logger.Warn("Ingredient unit changed to the recorded unit",
			zap.String("ingredient", suggestion),
			zap.String("from", ing.Unit),
			zap.String("to", unit),
		)
		fmt.Fprintf(a.out, "Note: %s is recorded in %s, check the amount.\n", suggestion, unit)
		ing.Unit = unit
	}
	ing.Name = suggestion
	return ing, nil
}

func (a *App) askInt(message string, def, minimum int) (int, error) {
	for {
		answer, err := a.prompter.Input(message, strconv.Itoa(def))
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= minimum {
			return n, nil
		}
		fmt.Fprintf(a.out, "Please enter a whole number of at least %d.\n", minimum)
	}
}
