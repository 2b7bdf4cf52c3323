package planner

import (
	"math/rand/v2"
	"slices"

	"meal-planner/internal/recipe"
)

// PoolPolicy decides what drawing a side does to its pool.
type PoolPolicy int

const (
	// Reuse draws uniformly at random and leaves the recipe in the pool.
	Reuse PoolPolicy = iota
	// Consume removes the drawn recipe until it is returned on replan.
	Consume
)

// SidePool holds the candidate sides for one meal component.
type SidePool struct {
	component recipe.MealComponent
	policy    PoolPolicy
	recipes   []*recipe.Recipe
	empty     error
}

func newSidePool(component recipe.MealComponent, policy PoolPolicy, recipes []*recipe.Recipe, empty error) *SidePool {
	return &SidePool{
		component: component,
		policy:    policy,
		recipes:   slices.Clone(recipes),
		empty:     empty,
	}
}

// Component returns the meal component the pool supplies.
func (p *SidePool) Component() recipe.MealComponent {
	return p.component
}

// Len returns the number of recipes currently available.
func (p *SidePool) Len() int {
	return len(p.recipes)
}

// Recipes returns a copy of the available recipes in draw order.
func (p *SidePool) Recipes() []*recipe.Recipe {
	return slices.Clone(p.recipes)
}

// Shuffle permutes the pool uniformly.
func (p *SidePool) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(p.recipes), func(i, j int) {
		p.recipes[i], p.recipes[j] = p.recipes[j], p.recipes[i]
	})
}

// Draw picks a side according to the pool policy.
func (p *SidePool) Draw(rng *rand.Rand) (*recipe.Recipe, error) {
	n := len(p.recipes)
	if n == 0 {
		return nil, p.empty
	}
	if p.policy == Consume {
		r := p.recipes[n-1]
		p.recipes = p.recipes[:n-1]
		return r, nil
	}
	return p.recipes[rng.IntN(n)], nil
}

// Return puts a recipe back into the pool unless it is already there.
func (p *SidePool) Return(r *recipe.Recipe) {
	if slices.Contains(p.recipes, r) {
		return
	}
	p.recipes = append(p.recipes, r)
}

func (p *SidePool) snapshot() []*recipe.Recipe {
	return slices.Clone(p.recipes)
}

func (p *SidePool) restore(s []*recipe.Recipe) {
	p.recipes = s
}
