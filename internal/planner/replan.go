package planner

import (
	"context"
	"fmt"

	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// RedoChooser asks the user which days to plan again. An empty selection
// accepts the current plan.
type RedoChooser interface {
	ChooseRedoDays(ctx context.Context, plan WeekPlan, options []Day) ([]Day, error)
}

// Replanner runs the first assignment pass and then re-rolls user-selected
// days until the user is satisfied. Day constraints are fixed at creation.
type Replanner struct {
	planner     *Planner
	constraints map[Day]Constraint
	plan        WeekPlan
	passes      int
}

// NewReplanner creates a replan session for the given day constraints.
func NewReplanner(p *Planner, constraints map[Day]Constraint) *Replanner {
	cs := make(map[Day]Constraint, len(constraints))
	for d, c := range constraints {
		cs[d] = c
	}
	return &Replanner{planner: p, constraints: cs}
}

// Start runs the first pass over every day.
func (r *Replanner) Start() (WeekPlan, error) {
	plans, err := r.planner.Assign(r.constraints)
	if err != nil {
		return nil, err
	}
	r.plan = WeekPlan(plans)
	r.passes = 1
	return r.Plan(), nil
}

// Plan returns a copy of the current plan.
func (r *Replanner) Plan() WeekPlan {
	return r.plan.Clone()
}

// Constraint returns the fixed constraint of a day.
func (r *Replanner) Constraint(day Day) (Constraint, bool) {
	c, ok := r.constraints[day]
	return c, ok
}

// Passes returns how many assignment passes have run.
func (r *Replanner) Passes() int {
	return r.passes
}

// Options lists the days that can be re-rolled, in week order.
func (r *Replanner) Options() []Day {
	var days []Day
	for _, d := range Week {
		if p, ok := r.plan[d]; ok && len(p.Recipes) > 0 {
			days = append(days, d)
		}
	}
	return days
}

// Apply is one replan transition. It returns done when the selection is
// empty. Otherwise every meat-bearing recipe in the current week is barred
// from future draws, every vegetable-bearing recipe goes back into the pool,
// and only the selected days are assigned again. On error the plan and the
// vegetable pool are left as they were.
func (r *Replanner) Apply(redo []Day) (bool, error) {
	if r.plan == nil {
		return false, ErrNotStarted
	}

	selected := make(map[Day]Constraint)
	for _, d := range redo {
		if p, ok := r.plan[d]; ok && len(p.Recipes) > 0 {
			selected[d] = r.constraints[d]
		}
	}
	if len(selected) == 0 {
		return true, nil
	}

	vegetables := r.planner.vegetables.snapshot()
	for _, d := range Week {
		for _, rec := range r.plan[d].Recipes {
			if rec.Has(recipe.Meat) {
				r.planner.Exclude(rec)
			}
			if rec.Has(recipe.Vegetable) {
				r.planner.vegetables.Return(rec)
			}
		}
	}
	r.planner.vegetables.Shuffle(r.planner.rng)

	plans, err := r.planner.Assign(selected)
	if err != nil {
		r.planner.vegetables.restore(vegetables)
		return false, err
	}
	for d, p := range plans {
		r.plan[d] = p
	}
	r.passes++
	logger.Info("Replanned days", zap.Int("days", len(plans)), zap.Int("pass", r.passes))
	return false, nil
}

// Run drives the replan loop until the chooser returns no days.
func (r *Replanner) Run(ctx context.Context, chooser RedoChooser) (WeekPlan, error) {
	if r.plan == nil {
		if _, err := r.Start(); err != nil {
			return nil, err
		}
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		options := r.Options()
		if len(options) == 0 {
			break
		}

		redo, err := chooser.ChooseRedoDays(ctx, r.Plan(), options)
		if err != nil {
			return nil, fmt.Errorf("failed to read days to redo: %w", err)
		}

		done, err := r.Apply(redo)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return r.Plan(), nil
}
