package shopping

import (
	"fmt"
	"time"
)

// Item is one aggregated line of a shopping list.
type Item struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

func (i Item) String() string {
	return fmt.Sprintf("%s: %g %s", i.Name, i.Amount, i.Unit)
}

// UnitMismatch records an ingredient occurrence whose unit differs from the
// unit first recorded for that name. Its amount is left out of the total.
type UnitMismatch struct {
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	RecordedUnit string `json:"recorded_unit"`
}

func (w UnitMismatch) String() string {
	return fmt.Sprintf("Ingredient '%s' has mixed units (%s vs %s)", w.Name, w.Unit, w.RecordedUnit)
}

// ShoppingList represents a stored shopping list for a meal plan.
type ShoppingList struct {
	ID         int64          `json:"id"`
	MealPlanID string         `json:"meal_plan_id"`
	Items      []Item         `json:"items"`
	Warnings   []UnitMismatch `json:"warnings"`
	CreatedAt  time.Time      `json:"created_at"`
}
