package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// Save stores the shopping list of a meal plan.
func (r *Repository) Save(ctx context.Context, mealPlanID string, summary Summary) (int64, error) {
	itemsJSON, err := json.Marshal(summary.Items())
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list items: %w", err)
	}
	warnings := summary.Warnings
	if warnings == nil {
		warnings = []UnitMismatch{}
	}
	warningsJSON, err := json.Marshal(warnings)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list warnings: %w", err)
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (meal_plan_id, items, warnings, created_at) VALUES (?, ?, ?, ?)`,
		mealPlanID, string(itemsJSON), string(warningsJSON), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read shopping list id: %w", err)
	}
	return id, nil
}

// GetByMealPlanID retrieves a shopping list by meal plan ID.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID string) (*ShoppingList, error) {
	var (
		list         ShoppingList
		itemsJSON    string
		warningsJSON string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, meal_plan_id, items, warnings, created_at FROM shopping_lists WHERE meal_plan_id = ?`,
		mealPlanID,
	).Scan(&list.ID, &list.MealPlanID, &itemsJSON, &warningsJSON, &list.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No shopping list found
		}
		return nil, fmt.Errorf("failed to get shopping list by meal plan ID: %w", err)
	}

	if err := json.Unmarshal([]byte(itemsJSON), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	if err := json.Unmarshal([]byte(warningsJSON), &list.Warnings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list warnings: %w", err)
	}
	return &list, nil
}

// DeleteByMealPlanID deletes a shopping list by meal plan ID.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE meal_plan_id = ?`, mealPlanID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}
