package planner

import "meal-planner/internal/recipe"

// Category is the single role a recipe plays in planning.
type Category int

const (
	Uncategorized Category = iota
	Main
	CarbSide
	VegetableSide
)

// Classify assigns a recipe exactly one category with priority
// MEAT > CARB > VEGETABLE. A recipe listing both carb and vegetable but no
// meat is a carb side only.
func Classify(r *recipe.Recipe) Category {
	switch {
	case r.Has(recipe.Meat):
		return Main
	case r.Has(recipe.Carb):
		return CarbSide
	case r.Has(recipe.Vegetable):
		return VegetableSide
	default:
		return Uncategorized
	}
}

// Catalog indexes a recipe collection for planning.
type Catalog struct {
	MainsByBucket map[Constraint][]*recipe.Recipe
	Carbs         []*recipe.Recipe
	Vegetables    []*recipe.Recipe
}

// NewCatalog classifies recipes, preserving input order within each pool.
// Recipes matching no category are dropped.
func NewCatalog(recipes []*recipe.Recipe) *Catalog {
	c := &Catalog{MainsByBucket: make(map[Constraint][]*recipe.Recipe)}
	for _, r := range recipes {
		switch Classify(r) {
		case Main:
			bucket := BucketFor(r.CookingTimeMin)
			c.MainsByBucket[bucket] = append(c.MainsByBucket[bucket], r)
		case CarbSide:
			c.Carbs = append(c.Carbs, r)
		case VegetableSide:
			c.Vegetables = append(c.Vegetables, r)
		}
	}
	return c
}

// Mains returns every main in bucket order.
func (c *Catalog) Mains() []*recipe.Recipe {
	var mains []*recipe.Recipe
	for _, bucket := range ConstraintOrder {
		mains = append(mains, c.MainsByBucket[bucket]...)
	}
	return mains
}

// Size returns the number of classified recipes.
func (c *Catalog) Size() int {
	return len(c.Mains()) + len(c.Carbs) + len(c.Vegetables)
}
