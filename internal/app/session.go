package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"meal-planner/internal/ghost"
	"meal-planner/internal/logger"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	"go.uber.org/zap"
)

const doneOption = "Done"

// PlanOptions controls an interactive planning session.
type PlanOptions struct {
	Seed    *int64
	Notify  bool
	Publish bool
}

// PlanSession runs the interactive weekly planning flow: day constraints,
// redo passes, manual overrides, scale factors, then output and persistence.
func (a *App) PlanSession(ctx context.Context, opts PlanOptions) error {
	start := a.now()
	recipes := a.LoadRecipes()
	catalog := planner.NewCatalog(recipes)
	logger.Info("Loaded recipe catalog",
		zap.Int("recipes", len(recipes)),
		zap.Int("mains", len(catalog.Mains())),
		zap.Int("carbs", len(catalog.Carbs)),
		zap.Int("vegetables", len(catalog.Vegetables)),
	)

	constraints, err := a.askConstraints()
	if err != nil {
		return err
	}

	seed := opts.Seed
	if seed == nil {
		seed = a.cfg.Seed
	}
	replanner := planner.NewReplanner(planner.NewPlanner(catalog, planner.NewRand(seed)), constraints)

	plan, err := replanner.Run(ctx, &redoChooser{app: a})
	if err != nil {
		a.recordRun(ctx, metrics.RunMetric{Passes: replanner.Passes(), Latency: a.now().Sub(start), Failed: true})
		return err
	}

	if err := a.askOverrides(replanner, catalog); err != nil {
		return err
	}
	plan = replanner.Plan()

	scale, err := a.askScaleFactors(plan)
	if err != nil {
		return err
	}
	summary := a.AggregateIngredients(plan, scale)

	fmt.Fprintln(a.out, "\nFinal meal plan:")
	fmt.Fprint(a.out, plan.String())
	a.printShoppingList(summary)

	planID := a.persist(ctx, plan, constraints, replanner.Passes(), summary)
	a.recordRun(ctx, metrics.RunMetric{
		MealPlanID:  planID,
		Passes:      replanner.Passes(),
		DaysPlanned: len(replanner.Options()),
		Latency:     a.now().Sub(start),
	})

	if opts.Notify {
		a.notify(plan, summary)
	}
	if opts.Publish {
		a.publish(ctx, plan, summary)
	}
	return nil
}

func (a *App) askConstraints() (map[planner.Day]planner.Constraint, error) {
	labels := make([]string, len(planner.ConstraintOrder))
	for i, c := range planner.ConstraintOrder {
		labels[i] = string(c)
	}

	constraints := make(map[planner.Day]planner.Constraint, len(planner.Week))
	for _, day := range planner.Week {
		answer, err := a.prompter.Select(fmt.Sprintf("How much time do you have to cook on %s?", day), labels, string(planner.NormalMeal))
		if err != nil {
			return nil, err
		}
		c, err := planner.ParseConstraint(answer)
		if err != nil {
			return nil, err
		}
		constraints[day] = c
	}
	return constraints, nil
}

// redoChooser shows the current plan and asks which days to redo. An
// interrupted prompt accepts the plan as it is.
type redoChooser struct {
	app *App
}

func (c *redoChooser) ChooseRedoDays(ctx context.Context, plan planner.WeekPlan, options []planner.Day) ([]planner.Day, error) {
	fmt.Fprintln(c.app.out, "\nCurrent meal plan:")
	fmt.Fprint(c.app.out, plan.String())

	labels := make([]string, len(options))
	for i, d := range options {
		labels[i] = string(d)
	}
	answers, err := c.app.prompter.MultiSelect("Select days to redo (none to accept the plan):", labels)
	if errors.Is(err, ErrAborted) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	days := make([]planner.Day, 0, len(answers))
	for _, ans := range answers {
		d, err := planner.ParseDay(ans)
		if err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func (a *App) askOverrides(r *planner.Replanner, catalog *planner.Catalog) error {
	options := r.Options()
	if len(options) == 0 {
		return nil
	}
	ok, err := a.prompter.Confirm("Do you want to pick any meal yourself?", false)
	if err != nil || !ok {
		return err
	}

	dayLabels := []string{doneOption}
	for _, d := range options {
		dayLabels = append(dayLabels, string(d))
	}

	for {
		answer, err := a.prompter.Select("Which day do you want to change?", dayLabels, doneOption)
		if err != nil {
			return err
		}
		if answer == doneOption {
			return nil
		}
		day, err := planner.ParseDay(answer)
		if err != nil {
			return err
		}

		var mains []*recipe.Recipe
		for _, m := range catalog.Mains() {
			if other, ok := r.PlannedOn(m); !ok || other == day {
				mains = append(mains, m)
			}
		}
		main, err := a.pickRecipe(fmt.Sprintf("Main for %s:", day), mains, false)
		if err != nil {
			return err
		}
		var sides []*recipe.Recipe
		for _, missing := range planner.MissingComponents(main) {
			pool := catalog.Vegetables
			if missing == recipe.Carb {
				pool = catalog.Carbs
			}
			side, err := a.pickRecipe(fmt.Sprintf("%s side for %s:", missing, main.Name), pool, true)
			if err != nil {
				return err
			}
			if side != nil {
				sides = append(sides, side)
			}
		}

		if err := r.Override(day, main, sides...); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s: %s\n", day, r.Plan()[day].Description)
	}
}

// pickRecipe asks for one recipe out of pool. With optional set the user
// may skip, which yields nil. Recipes sharing a label are numbered.
func (a *App) pickRecipe(message string, pool []*recipe.Recipe, optional bool) (*recipe.Recipe, error) {
	const skip = "(none)"
	var labels []string
	if optional {
		labels = append(labels, skip)
	}
	byLabel := make(map[string]*recipe.Recipe, len(pool))
	for i, r := range pool {
		label := fmt.Sprintf("%s (%d min)", r.Name, r.CookingTimeMin)
		if _, taken := byLabel[label]; taken {
			label = fmt.Sprintf("%s #%d", label, i+1)
		}
		byLabel[label] = r
		labels = append(labels, label)
	}
	if len(pool) == 0 {
		if optional {
			return nil, nil
		}
		return nil, errors.New("no recipes to choose from")
	}

	answer, err := a.prompter.Select(message, labels, "")
	if err != nil {
		return nil, err
	}
	if answer == skip {
		return nil, nil
	}
	r, ok := byLabel[answer]
	if !ok {
		return nil, fmt.Errorf("unknown recipe %q", answer)
	}
	return r, nil
}

func (a *App) askScaleFactors(plan planner.WeekPlan) (map[planner.Day]float64, error) {
	scale := make(map[planner.Day]float64)
	for _, day := range planner.Week {
		main := plan[day].Main()
		if main == nil {
			continue
		}
		answer, err := a.prompter.Input(fmt.Sprintf("Scale factor for %s (%s serves %d):", day, main.Name, main.Servings), "1")
		if err != nil {
			return nil, err
		}
		f, err := shopping.ParseScaleFactor(answer)
		if err != nil {
			logger.Warn("Invalid scale factor", zap.String("day", string(day)), zap.String("input", answer))
			fmt.Fprintf(a.out, "Invalid scale factor %q for %s, using 1.0\n", answer, day)
		}
		scale[day] = f
	}
	return scale, nil
}

func (a *App) printShoppingList(summary shopping.Summary) {
	fmt.Fprintln(a.out, "\nShopping list:")
	for _, item := range summary.Items() {
		fmt.Fprintf(a.out, "- %s\n", item)
	}
	for _, w := range summary.Warnings {
		fmt.Fprintf(a.out, "Warning: %s\n", w)
	}
}

// persist stores the plan and its shopping list. Failures are logged and
// do not fail the session.
func (a *App) persist(ctx context.Context, plan planner.WeekPlan, constraints map[planner.Day]planner.Constraint, passes int, summary shopping.Summary) string {
	if a.planRepo == nil {
		return ""
	}
	stored := planner.NewStoredPlan(plan, constraints, passes)
	stored.CreatedAt = a.now().UTC()
	planID, err := a.planRepo.Save(ctx, stored)
	if err != nil {
		logger.Warn("Failed to save meal plan", zap.Error(err))
		return ""
	}
	if a.shoppingRepo != nil {
		if _, err := a.shoppingRepo.Save(ctx, planID, summary); err != nil {
			logger.Warn("Failed to save shopping list", zap.String("plan_id", planID), zap.Error(err))
		}
	}
	logger.Info("Saved meal plan", zap.String("plan_id", planID), zap.Int("passes", passes))
	return planID
}

func (a *App) recordRun(ctx context.Context, m metrics.RunMetric) {
	if a.metricsStore == nil {
		return
	}
	m.Timestamp = a.now()
	if err := a.metricsStore.Record(ctx, m); err != nil {
		logger.Warn("Failed to record planning run", zap.Error(err))
	}
}

func (a *App) notify(plan planner.WeekPlan, summary shopping.Summary) {
	if a.notifier == nil {
		fmt.Fprintln(a.out, "Telegram is not configured, skipping notification.")
		return
	}
	if err := a.notifier.SendPlan(plan, summary); err != nil {
		logger.Error("Failed to send plan to Telegram", zap.Error(err))
		fmt.Fprintln(a.out, "Could not send the plan to Telegram.")
		return
	}
	fmt.Fprintln(a.out, "Plan sent to Telegram.")
}

func (a *App) publish(ctx context.Context, plan planner.WeekPlan, summary shopping.Summary) {
	if a.ghostClient == nil {
		fmt.Fprintln(a.out, "Ghost is not configured, skipping publishing.")
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	title := ghost.PlanTitle(a.now().Format("2006-01-02"))
	post, err := a.ghostClient.CreatePost(ctx, title, ghost.FormatPlanHTML(plan, summary), false)
	if err != nil {
		logger.Error("Failed to publish plan to Ghost", zap.Error(err))
		fmt.Fprintln(a.out, "Could not publish the plan to Ghost.")
		return
	}
	logger.Info("Published plan draft", zap.String("post_id", post.ID))
	fmt.Fprintf(a.out, "Draft post created: %s\n", post.Title)
}
