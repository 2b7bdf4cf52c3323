package shopping

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"meal-planner/internal/logger"
	"meal-planner/internal/planner"

	"go.uber.org/zap"
)

// ErrInvalidScaleFactor is returned for scale input that is not a positive number.
var ErrInvalidScaleFactor = errors.New("invalid scale factor")

// Summary is the aggregated ingredient list of a week plan.
type Summary struct {
	totals   map[string]*Item
	Warnings []UnitMismatch
}

// Aggregate sums the ingredients of every recipe in the plan. Days are
// visited in week order so the first-seen unit of a name is stable. Missing
// scale factors default to 1.0.
func Aggregate(plan planner.WeekPlan, scale map[planner.Day]float64) Summary {
	s := Summary{totals: make(map[string]*Item)}

	for _, day := range planner.Week {
		dp, ok := plan[day]
		if !ok {
			continue
		}
		factor := 1.0
		if f, ok := scale[day]; ok {
			factor = f
		}

		for _, rec := range dp.Recipes {
			for _, ing := range rec.Ingredients {
				item, seen := s.totals[ing.Name]
				if !seen {
					item = &Item{Name: ing.Name, Unit: ing.Unit}
					s.totals[ing.Name] = item
				}
				if ing.Unit != item.Unit {
					w := UnitMismatch{Name: ing.Name, Unit: ing.Unit, RecordedUnit: item.Unit}
					s.Warnings = append(s.Warnings, w)
					logger.Warn("Ingredient has mixed units",
						zap.String("ingredient", ing.Name),
						zap.String("unit", ing.Unit),
						zap.String("recorded_unit", item.Unit),
						zap.String("recipe", rec.Name),
						zap.String("day", string(day)),
					)
					continue
				}
				item.Amount += ing.Amount * factor
			}
		}
	}

	return s
}

// Items returns the aggregated ingredients sorted by name.
func (s Summary) Items() []Item {
	items := make([]Item, 0, len(s.totals))
	for _, item := range s.totals {
		items = append(items, *item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items
}

// Get returns the aggregated line for one ingredient.
func (s Summary) Get(name string) (Item, bool) {
	item, ok := s.totals[name]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Len returns the number of distinct ingredients.
func (s Summary) Len() int {
	return len(s.totals)
}

// ParseScaleFactor reads a per-day scale factor. Empty input means 1.0.
// Anything that is not a positive number also yields 1.0, together with
// ErrInvalidScaleFactor so the caller can warn.
func ParseScaleFactor(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 1.0, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f <= 0 {
		return 1.0, fmt.Errorf("%w: %q, using 1.0", ErrInvalidScaleFactor, text)
	}
	return f, nil
}
