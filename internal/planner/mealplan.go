package planner

import (
	"fmt"
	"strings"

	"meal-planner/internal/recipe"
)

// Day is a weekday name.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Week is the fixed display and iteration order of a plan.
var Week = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDay resolves a weekday name, ignoring case.
func ParseDay(s string) (Day, error) {
	for _, d := range Week {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", s)
}

// Constraint is the cooking availability of a day. The cooking-time buckets
// double as recipe classifications; LeftoverDay only applies to days.
type Constraint string

const (
	NoCooking    Constraint = "No cooking"
	QuickMeal    Constraint = "Quick meal (30 min)"
	NormalMeal   Constraint = "Normal meal (1 hour)"
	ExtendedMeal Constraint = "Extended meal (2+ hours)"
	LeftoverDay  Constraint = "Leftover day"
)

// ConstraintOrder is the order the assigner visits buckets in. Mains left
// over from a bucket stay eligible for every later one, so the order must
// run from the shortest cooking time to the longest.
var ConstraintOrder = []Constraint{NoCooking, QuickMeal, NormalMeal, ExtendedMeal, LeftoverDay}

// ParseConstraint resolves a constraint from its label.
func ParseConstraint(s string) (Constraint, error) {
	for _, c := range ConstraintOrder {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown cooking constraint %q", s)
}

// Trivial reports whether days with this constraint need no recipes.
func (c Constraint) Trivial() bool {
	return c == NoCooking || c == LeftoverDay
}

// BucketFor classifies a cooking time in minutes.
func BucketFor(minutes int) Constraint {
	switch {
	case minutes <= 0:
		return NoCooking
	case minutes <= 30:
		return QuickMeal
	case minutes <= 60:
		return NormalMeal
	default:
		return ExtendedMeal
	}
}

// DayPlan represents the plan for a single day. Recipes is empty for trivial
// days and [main, sides...] otherwise.
type DayPlan struct {
	Description string
	Recipes     []*recipe.Recipe
}

// Main returns the day's main recipe, or nil on a trivial day.
func (p DayPlan) Main() *recipe.Recipe {
	if len(p.Recipes) == 0 {
		return nil
	}
	return p.Recipes[0]
}

// WeekPlan maps every weekday to its plan.
type WeekPlan map[Day]DayPlan

// Clone returns a shallow copy; DayPlan values are never mutated in place.
func (w WeekPlan) Clone() WeekPlan {
	out := make(WeekPlan, len(w))
	for d, p := range w {
		out[d] = p
	}
	return out
}

// Complete reports whether every weekday has a plan.
func (w WeekPlan) Complete() bool {
	for _, d := range Week {
		if _, ok := w[d]; !ok {
			return false
		}
	}
	return true
}

// String renders the plan in week order.
func (w WeekPlan) String() string {
	var sb strings.Builder
	for _, d := range Week {
		if p, ok := w[d]; ok {
			fmt.Fprintf(&sb, "%s: %s\n", d, p.Description)
		}
	}
	return sb.String()
}
