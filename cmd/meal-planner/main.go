package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"meal-planner/internal/app"
	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/ghost"
	"meal-planner/internal/logger"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
	"meal-planner/internal/shopping"
	"meal-planner/internal/storage"
	"meal-planner/internal/telegram"

	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Sync()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.NewFromEnv()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	var notifier app.Notifier
	if cfg.TelegramEnabled() {
		n, err := telegram.NewNotifier(cfg)
		if err != nil {
			logger.Warn("Telegram notifications disabled", zap.Error(err))
		} else {
			notifier = n
		}
	}

	var ghostClient ghost.Client
	if cfg.GhostEnabled() {
		ghostClient = ghost.NewClient(cfg)
	}

	application := app.NewApp(
		cfg,
		storage.NewRecipeStore(cfg.RecipeDir),
		planner.NewPlanRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		clipper.NewClipper(nil),
		notifier,
		ghostClient,
		app.NewSurveyPrompter(),
		os.Stdout,
	)

	switch os.Args[1] {
	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		seed := planCmd.Int64("seed", 0, "Seed for a reproducible plan (0 uses PLANNER_SEED or a random seed)")
		notify := planCmd.Bool("notify", false, "Send the final plan to Telegram")
		publish := planCmd.Bool("publish", false, "Create a Ghost draft post with the final plan")
		planCmd.Parse(os.Args[2:])

		opts := app.PlanOptions{Notify: *notify, Publish: *publish}
		if *seed != 0 {
			opts.Seed = seed
		}
		if err := application.PlanSession(ctx, opts); err != nil {
			exitOnError("Planning failed", err)
		}
	case "add-recipe":
		addCmd := flag.NewFlagSet("add-recipe", flag.ExitOnError)
		url := addCmd.String("url", "", "Pre-fill the recipe from a web page")
		addCmd.Parse(os.Args[2:])

		if _, err := application.AddRecipe(ctx, *url); err != nil {
			exitOnError("Adding recipe failed", err)
		}
	case "list-recipes":
		application.ListRecipes()
	case "history":
		historyCmd := flag.NewFlagSet("history", flag.ExitOnError)
		limit := historyCmd.Int("limit", 5, "Number of plans to show")
		historyCmd.Parse(os.Args[2:])

		if err := application.History(ctx, *limit); err != nil {
			exitOnError("Reading history failed", err)
		}
	case "stats":
		statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
		days := statsCmd.Int("days", 7, "Report the last N days")
		statsCmd.Parse(os.Args[2:])

		if err := application.Stats(ctx, *days); err != nil {
			exitOnError("Reading stats failed", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		if err := application.CleanupMetrics(ctx, *days); err != nil {
			exitOnError("Cleanup failed", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func exitOnError(msg string, err error) {
	if errors.Is(err, app.ErrAborted) {
		fmt.Println("Aborted.")
		os.Exit(130)
	}
	var insufficient *planner.InsufficientRecipesError
	if errors.As(err, &insufficient) {
		fmt.Printf("Error: %v\n", insufficient)
		os.Exit(2)
	}
	logger.Fatal(msg, zap.Error(err))
}

func printUsage() {
	fmt.Println("Usage: meal-planner <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Plan the week interactively and build the shopping list")
	fmt.Println("  add-recipe         Add a recipe, optionally imported with -url")
	fmt.Println("  list-recipes       Show the recipe catalog by category")
	fmt.Println("  history            Show recently saved plans")
	fmt.Println("  stats              Show planning activity and storage usage")
	fmt.Println("  metrics-cleanup    Remove old planning run records")
}
