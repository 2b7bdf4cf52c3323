package planner

import (
	"fmt"
	"strings"

	"meal-planner/internal/recipe"
)

// BuildDayPlan describes a main with its sides as
// "<main> with <side>, <side> (<n> min)".
func BuildDayPlan(main *recipe.Recipe, sides ...*recipe.Recipe) DayPlan {
	var sb strings.Builder
	sb.WriteString(main.Name)
	if len(sides) > 0 {
		names := make([]string, len(sides))
		for i, s := range sides {
			names[i] = s.Name
		}
		sb.WriteString(" with ")
		sb.WriteString(strings.Join(names, ", "))
	}
	fmt.Fprintf(&sb, " (%d min)", main.CookingTimeMin)

	recipes := make([]*recipe.Recipe, 0, 1+len(sides))
	recipes = append(recipes, main)
	recipes = append(recipes, sides...)
	return DayPlan{Description: sb.String(), Recipes: recipes}
}

// MissingComponents lists the sides a main needs, carb before vegetable.
func MissingComponents(main *recipe.Recipe) []recipe.MealComponent {
	var missing []recipe.MealComponent
	for _, c := range []recipe.MealComponent{recipe.Carb, recipe.Vegetable} {
		if !main.Has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// Override replaces a cooked day's plan with an explicit main and sides. A
// main already planned on another day is rejected.
func (r *Replanner) Override(day Day, main *recipe.Recipe, sides ...*recipe.Recipe) error {
	c, ok := r.constraints[day]
	if !ok || c.Trivial() {
		return fmt.Errorf("%w: %s", ErrDayNotOverridable, day)
	}
	if _, ok := r.plan[day]; !ok {
		return fmt.Errorf("%w: %s has no plan yet", ErrDayNotOverridable, day)
	}
	if main == nil {
		return fmt.Errorf("%w: %s needs a main recipe", ErrDayNotOverridable, day)
	}
	if other, ok := r.PlannedOn(main); ok && other != day {
		return fmt.Errorf("%w: %s is planned on %s", ErrMainAlreadyPlanned, main.Name, other)
	}
	r.plan[day] = BuildDayPlan(main, sides...)
	return nil
}

// PlannedOn reports the day whose current plan uses main as its main.
func (r *Replanner) PlannedOn(main *recipe.Recipe) (Day, bool) {
	for _, d := range Week {
		if p, ok := r.plan[d]; ok && len(p.Recipes) > 0 && p.Main() == main {
			return d, true
		}
	}
	return "", false
}
