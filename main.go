package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/zgrigoryan/Meal-Planner/internal/cli"
	"github.com/zgrigoryan/Meal-Planner/internal/config"
	"github.com/zgrigoryan/Meal-Planner/internal/database"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
	"github.com/zgrigoryan/Meal-Planner/internal/seed"
	"github.com/zgrigoryan/Meal-Planner/internal/server"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

const usage = "usage: meal-planner [serve | import <file>]"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		slog.Error("opening database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("running migrations", "error", err)
		os.Exit(1)
	}

	if err := run(context.Background(), db, cfg, os.Args[1:]); err != nil {
		slog.Error("meal planner", "error", err)
		db.Close()
		os.Exit(1)
	}
}

func run(ctx context.Context, db *sql.DB, cfg config.Config, args []string) error {
	mealRepo := repository.NewMealRepository(db)
	planRepo := repository.NewPlanRepository(db)

	catalog := services.NewMealCatalog(mealRepo)
	planner := services.NewWeeklyPlanner(catalog, planRepo)
	shopping := services.NewShoppingService(planRepo, catalog)

	if len(args) == 0 {
		prompt := cli.NewPrompt(os.Stdin, os.Stdout, catalog, planner, shopping, cfg.ShoppingListDir)
		return prompt.Run(ctx)
	}

	switch args[0] {
	case "serve":
		return server.NewWithServices(cfg, catalog, planner, shopping).Start()
	case "import":
		if len(args) != 2 {
			return errors.New(usage)
		}
		file, err := seed.LoadFile(args[1])
		if err != nil {
			return err
		}
		added, err := seed.Import(ctx, catalog, file)
		slog.Info("imported meals", "file", args[1], "count", len(added))
		return err
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
