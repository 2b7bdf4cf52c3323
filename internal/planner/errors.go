package planner

import (
	"errors"
	"fmt"
)

var (
	// ErrVegetablePoolExhausted is returned when a main needs a vegetable side
	// and every vegetable has already been used in the current pass.
	ErrVegetablePoolExhausted = errors.New("vegetable pool exhausted")
	// ErrCarbPoolEmpty is returned when a main needs a carb side but the
	// catalog has no carb recipes.
	ErrCarbPoolEmpty = errors.New("carb pool is empty")
	// ErrDayNotOverridable is returned when a manual override targets a day
	// without a cooked meal.
	ErrDayNotOverridable = errors.New("day cannot be overridden")
	// ErrMainAlreadyPlanned is returned when a manual override picks a main
	// that another day of the plan already uses.
	ErrMainAlreadyPlanned = errors.New("main is already planned on another day")
	// ErrNotStarted is returned when replanning before the first pass.
	ErrNotStarted = errors.New("planning has not started")
)

// InsufficientRecipesError reports that a bucket had fewer eligible mains
// than days to fill. The whole assignment is aborted.
type InsufficientRecipesError struct {
	Constraint Constraint
	Found      int
	Needed     int
}

func (e *InsufficientRecipesError) Error() string {
	return fmt.Sprintf("not enough recipes available for %s: found %d, but needed %d", e.Constraint, e.Found, e.Needed)
}
