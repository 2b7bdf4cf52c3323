package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// StoredDay is the persisted form of one day of a finalized plan.
type StoredDay struct {
	Day         Day        `json:"day"`
	Constraint  Constraint `json:"constraint"`
	Description string     `json:"description"`
	Recipes     []string   `json:"recipes,omitempty"`
}

// StoredPlan is a finalized week plan as kept in the plan history.
type StoredPlan struct {
	ID        string
	Days      []StoredDay
	Passes    int
	CreatedAt time.Time
}

// NewStoredPlan flattens a week plan into week order.
func NewStoredPlan(plan WeekPlan, constraints map[Day]Constraint, passes int) StoredPlan {
	days := make([]StoredDay, 0, len(Week))
	for _, d := range Week {
		dp, ok := plan[d]
		if !ok {
			continue
		}
		names := make([]string, len(dp.Recipes))
		for i, r := range dp.Recipes {
			names[i] = r.Name
		}
		days = append(days, StoredDay{
			Day:         d,
			Constraint:  constraints[d],
			Description: dp.Description,
			Recipes:     names,
		})
	}
	return StoredPlan{Days: days, Passes: passes}
}

// PlanRepository is a database-backed repository for finalized meal plans.
type PlanRepository struct {
	db *sql.DB
}

// NewPlanRepository creates a new PlanRepository.
func NewPlanRepository(d *sql.DB) *PlanRepository {
	return &PlanRepository{db: d}
}

// Save inserts a plan and returns its generated ID.
func (r *PlanRepository) Save(ctx context.Context, plan StoredPlan) (string, error) {
	daysJSON, err := json.Marshal(plan.Days)
	if err != nil {
		return "", fmt.Errorf("failed to marshal plan days: %w", err)
	}

	id := uuid.NewString()
	createdAt := plan.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, days, passes, created_at) VALUES (?, ?, ?, ?)`,
		id, string(daysJSON), plan.Passes, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert meal plan: %w", err)
	}
	return id, nil
}

// ListRecent retrieves the N most recent meal plans.
func (r *PlanRepository) ListRecent(ctx context.Context, limit int) ([]StoredPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, days, passes, created_at FROM meal_plans ORDER BY created_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent meal plans: %w", err)
	}
	defer rows.Close()

	var plans []StoredPlan
	for rows.Next() {
		var (
			p        StoredPlan
			daysJSON string
		)
		if err := rows.Scan(&p.ID, &daysJSON, &p.Passes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan: %w", err)
		}
		if err := json.Unmarshal([]byte(daysJSON), &p.Days); err != nil {
			return nil, fmt.Errorf("failed to unmarshal days of plan %s: %w", p.ID, err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate meal plans: %w", err)
	}
	return plans, nil
}
