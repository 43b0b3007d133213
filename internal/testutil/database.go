package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/zgrigoryan/Meal-Planner/internal/database"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
)

func NewTestDatabase(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// MealAdder is satisfied by the catalog service; kept narrow so test helpers
// do not import the services package.
type MealAdder interface {
	AddMeal(ctx context.Context, category, name string, ingredients []string) (models.Meal, error)
}

// SeedBasicMeals adds one meal per category: Pancakes, Salad and Soup.
func SeedBasicMeals(t *testing.T, catalog MealAdder) []models.Meal {
	t.Helper()
	ctx := context.Background()

	seeds := []struct {
		category    string
		name        string
		ingredients []string
	}{
		{"breakfast", "Pancakes", []string{"flour", "eggs", "milk"}},
		{"lunch", "Salad", []string{"lettuce", "tomato"}},
		{"dinner", "Soup", []string{"broth", "carrot"}},
	}

	var meals []models.Meal
	for _, seed := range seeds {
		meal, err := catalog.AddMeal(ctx, seed.category, seed.name, seed.ingredients)
		if err != nil {
			t.Fatalf("adding %s: %v", seed.name, err)
		}
		meals = append(meals, meal)
	}
	return meals
}
