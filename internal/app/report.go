package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
)

// ListRecipes prints the catalog grouped the way the planner sees it.
func (a *App) ListRecipes() {
	recipes := a.LoadRecipes()
	catalog := planner.NewCatalog(recipes)

	fmt.Fprintf(a.out, "%d recipes in %s\n", len(recipes), a.recipeStore.Dir())
	for _, bucket := range planner.ConstraintOrder {
		printPool(a.out, "Mains, "+string(bucket), catalog.MainsByBucket[bucket])
	}
	printPool(a.out, "Carb sides", catalog.Carbs)
	printPool(a.out, "Vegetable sides", catalog.Vegetables)
	if skipped := len(recipes) - catalog.Size(); skipped > 0 {
		fmt.Fprintf(a.out, "\n%d recipes have no meat, carb or vegetable component and are never planned.\n", skipped)
	}
}

func printPool(out io.Writer, title string, pool []*recipe.Recipe) {
	if len(pool) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(pool))
	for _, r := range pool {
		fmt.Fprintf(out, "- %s (%d min, serves %d)\n", r.Name, r.CookingTimeMin, r.Servings)
	}
}

// History prints the most recent saved plans.
func (a *App) History(ctx context.Context, limit int) error {
	plans, err := a.planRepo.ListRecent(ctx, limit)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		fmt.Fprintln(a.out, "No saved plans yet.")
		return nil
	}
	for _, p := range plans {
		fmt.Fprintf(a.out, "\n%s  (%s, %d passes)\n", p.CreatedAt.Local().Format("Mon 2006-01-02 15:04"), p.ID, p.Passes)
		for _, d := range p.Days {
			fmt.Fprintf(a.out, "  %s: %s\n", d.Day, d.Description)
		}
		if a.shoppingRepo == nil {
			continue
		}
		list, err := a.shoppingRepo.GetByMealPlanID(ctx, p.ID)
		if err != nil {
			return err
		}
		if list != nil && len(list.Items) > 0 {
			names := make([]string, len(list.Items))
			for i, item := range list.Items {
				names[i] = item.Name
			}
			fmt.Fprintf(a.out, "  Shopping: %s\n", strings.Join(names, ", "))
		}
	}
	return nil
}

// Stats prints planning activity and storage usage.
func (a *App) Stats(ctx context.Context, days int) error {
	runs, err := a.metricsStore.GetDailyRuns(ctx, days)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Planning runs, last %d days:\n", days)
	if len(runs) == 0 {
		fmt.Fprintln(a.out, "  no data yet")
	}
	for _, r := range runs {
		fmt.Fprintf(a.out, "  %s: %d runs (%d failed), %.1f passes avg, %.0f ms avg\n", r.Date, r.Runs, r.Failed, r.AvgPasses, r.AvgLatencyMS)
	}

	u := metrics.GetStorageUsage(a.recipeStore.Dir(), filepath.Dir(a.cfg.DatabasePath))
	fmt.Fprintf(a.out, "\nStorage:\n  %d recipe files (%s)\n  data directory %s\n", u.RecipeFiles, metrics.HumanBytes(u.RecipeBytes), metrics.HumanBytes(u.DataBytes))
	return nil
}

// CleanupMetrics deletes planning runs older than the given number of days.
func (a *App) CleanupMetrics(ctx context.Context, olderThanDays int) error {
	removed, err := a.metricsStore.Cleanup(ctx, olderThanDays)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Removed %d planning runs older than %d days.\n", removed, olderThanDays)
	return nil
}
