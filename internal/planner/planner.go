package planner

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"meal-planner/internal/logger"
	"meal-planner/internal/recipe"

	"go.uber.org/zap"
)

// NewRand returns the random source for a planning session. A nil seed
// draws a fresh one.
func NewRand(seed *int64) *rand.Rand {
	if seed == nil {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(uint64(*seed), uint64(*seed)))
}

// Planner assigns recipes to days. It owns the state that must persist
// across replan passes of one session: the side pools, the set of mains
// that may no longer be drawn, and the random source.
type Planner struct {
	catalog    *Catalog
	rng        *rand.Rand
	carbs      *SidePool
	vegetables *SidePool
	excluded   map[*recipe.Recipe]struct{}
}

// NewPlanner creates a planning session over the catalog. Carbs are reused
// across days; vegetables are consumed.
func NewPlanner(catalog *Catalog, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = NewRand(nil)
	}
	p := &Planner{
		catalog:    catalog,
		rng:        rng,
		carbs:      newSidePool(recipe.Carb, Reuse, catalog.Carbs, ErrCarbPoolEmpty),
		vegetables: newSidePool(recipe.Vegetable, Consume, catalog.Vegetables, ErrVegetablePoolExhausted),
		excluded:   make(map[*recipe.Recipe]struct{}),
	}
	p.carbs.Shuffle(rng)
	p.vegetables.Shuffle(rng)
	return p
}

// Catalog returns the catalog the session plans from.
func (p *Planner) Catalog() *Catalog {
	return p.catalog
}

// Carbs returns the carb side pool.
func (p *Planner) Carbs() *SidePool {
	return p.carbs
}

// Vegetables returns the vegetable side pool.
func (p *Planner) Vegetables() *SidePool {
	return p.vegetables
}

// Exclude bars a main from all later assignments in this session.
func (p *Planner) Exclude(r *recipe.Recipe) {
	p.excluded[r] = struct{}{}
}

// Excluded reports whether a main has been barred.
func (p *Planner) Excluded(r *recipe.Recipe) bool {
	_, ok := p.excluded[r]
	return ok
}

// Assign plans every day in constraints. Days with a trivial constraint get
// a recipe-less plan. On error no plan is returned and the vegetable pool is
// left as it was before the call.
func (p *Planner) Assign(constraints map[Day]Constraint) (map[Day]DayPlan, error) {
	if err := validateConstraints(constraints); err != nil {
		return nil, err
	}

	plans := make(map[Day]DayPlan, len(constraints))
	daysByConstraint := make(map[Constraint][]Day)
	for _, day := range Week {
		c, ok := constraints[day]
		if !ok {
			continue
		}
		if c.Trivial() {
			plans[day] = DayPlan{Description: string(c)}
			continue
		}
		daysByConstraint[c] = append(daysByConstraint[c], day)
	}

	snapshot := p.vegetables.snapshot()
	fail := func(err error) (map[Day]DayPlan, error) {
		p.vegetables.restore(snapshot)
		return nil, err
	}

	// Mains accumulate bucket by bucket, so a slower day can use quicker
	// mains left unused by an earlier bucket but never the other way round.
	var pool []*recipe.Recipe
	for _, bucket := range ConstraintOrder {
		for _, m := range p.catalog.MainsByBucket[bucket] {
			if !p.Excluded(m) {
				pool = append(pool, m)
			}
		}

		days := daysByConstraint[bucket]
		if len(days) == 0 {
			continue
		}

		p.rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
		needed := len(days)
		if len(pool) < needed {
			return fail(&InsufficientRecipesError{Constraint: bucket, Found: len(pool), Needed: needed})
		}

		chosen := slices.Clone(pool[:needed])
		pool = slices.Clone(pool[needed:])

		for i, day := range days {
			plan, err := p.planDay(chosen[i])
			if err != nil {
				return fail(fmt.Errorf("failed to plan %s: %w", day, err))
			}
			plans[day] = plan
		}
		logger.Debug("Assigned bucket",
			zap.String("constraint", string(bucket)),
			zap.Int("days", needed),
			zap.Int("remaining_mains", len(pool)),
		)
	}

	return plans, nil
}

// planDay balances a main with a carb and a vegetable side where it lacks them.
func (p *Planner) planDay(main *recipe.Recipe) (DayPlan, error) {
	var sides []*recipe.Recipe
	for _, pool := range []*SidePool{p.carbs, p.vegetables} {
		if main.Has(pool.Component()) {
			continue
		}
		side, err := pool.Draw(p.rng)
		if err != nil {
			return DayPlan{}, err
		}
		sides = append(sides, side)
	}
	return BuildDayPlan(main, sides...), nil
}

func validateConstraints(constraints map[Day]Constraint) error {
	for day, c := range constraints {
		if !slices.Contains(Week, day) {
			return fmt.Errorf("unknown day %q", day)
		}
		if !slices.Contains(ConstraintOrder, c) {
			return fmt.Errorf("unknown cooking constraint %q for %s", c, day)
		}
	}
	return nil
}
