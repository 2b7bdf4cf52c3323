package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/ghost"
	"meal-planner/internal/logger"
	"meal-planner/internal/match"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"
	"meal-planner/internal/storage"

	"go.uber.org/zap"
)

// Notifier delivers a finished plan to a chat.
type Notifier interface {
	SendPlan(plan planner.WeekPlan, summary shopping.Summary) error
}

// App holds the application's dependencies.
type App struct {
	cfg           *config.Config
	recipeStore   *storage.RecipeStore
	planRepo      *planner.PlanRepository
	shoppingRepo  *shopping.Repository
	metricsStore  *metrics.Store
	recipeClipper *clipper.Clipper
	notifier      Notifier
	ghostClient   ghost.Client
	prompter      Prompter
	out           io.Writer
	now           func() time.Time
}

// NewApp creates and initializes a new App instance. notifier and
// ghostClient may be nil when the integration is not configured.
func NewApp(
	cfg *config.Config,
	recipeStore *storage.RecipeStore,
	planRepo *planner.PlanRepository,
	shoppingRepo *shopping.Repository,
	metricsStore *metrics.Store,
	recipeClipper *clipper.Clipper,
	notifier Notifier,
	ghostClient ghost.Client,
	prompter Prompter,
	out io.Writer,
) *App {
	return &App{
		cfg:           cfg,
		recipeStore:   recipeStore,
		planRepo:      planRepo,
		shoppingRepo:  shoppingRepo,
		metricsStore:  metricsStore,
		recipeClipper: recipeClipper,
		notifier:      notifier,
		ghostClient:   ghostClient,
		prompter:      prompter,
		out:           out,
		now:           time.Now,
	}
}

// LoadRecipes reads the recipe directory. Unreadable records are skipped
// and already logged by the store.
func (a *App) LoadRecipes() []*recipe.Recipe {
	recipes, problems := a.recipeStore.LoadAll()
	if len(problems) > 0 {
		logger.Warn("Some recipes were skipped", zap.Int("skipped", len(problems)))
	}
	return recipes
}

// PlanWeek assigns a recipe to every day in one pass.
func (a *App) PlanWeek(ctx context.Context, constraints map[planner.Day]planner.Constraint) (planner.WeekPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := planner.NewPlanner(planner.NewCatalog(a.LoadRecipes()), planner.NewRand(a.cfg.Seed))
	plans, err := planner.NewReplanner(p, constraints).Start()
	if err != nil {
		return nil, fmt.Errorf("failed to plan week: %w", err)
	}
	return plans, nil
}

// AggregateIngredients builds the shopping list of a plan.
func (a *App) AggregateIngredients(plan planner.WeekPlan, scale map[planner.Day]float64) shopping.Summary {
	return shopping.Aggregate(plan, scale)
}

// SuggestIngredientName proposes a known ingredient name for candidate.
func (a *App) SuggestIngredientName(candidate string, known []string) (string, bool) {
	return match.Match(candidate, known, match.DefaultThreshold)
}
