package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
)

type MealRepository interface {
	Create(ctx context.Context, meal models.Meal) (models.Meal, error)
	FindByID(ctx context.Context, id int) (models.Meal, error)
	FindByName(ctx context.Context, name string) (models.Meal, error)
	FindByCategory(ctx context.Context, category models.Category) ([]models.Meal, error)
	FindIngredients(ctx context.Context, mealID int) ([]string, error)
	CountByCategory(ctx context.Context) (map[models.Category]int, error)
	MaxMealID(ctx context.Context) (int, error)
	MaxIngredientID(ctx context.Context) (int, error)
}

type SQLiteMealRepository struct {
	database *sql.DB
}

func NewMealRepository(database *sql.DB) *SQLiteMealRepository {
	return &SQLiteMealRepository{database: database}
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create assigns the meal and its ingredients the next free ids and stores
// them. Reading the current maximums and inserting happen in one transaction.
func (repository *SQLiteMealRepository) Create(ctx context.Context, meal models.Meal) (models.Meal, error) {
	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.Meal{}, fmt.Errorf("beginning meal transaction: %w", err)
	}
	defer transaction.Rollback()

	maxMealID, err := maxID(ctx, transaction, "SELECT MAX(meal_id) FROM meals")
	if err != nil {
		return models.Meal{}, fmt.Errorf("reading max meal id: %w", err)
	}
	maxIngredientID, err := maxID(ctx, transaction, "SELECT MAX(ingredient_id) FROM ingredients")
	if err != nil {
		return models.Meal{}, fmt.Errorf("reading max ingredient id: %w", err)
	}

	meal.ID = maxMealID + 1
	if _, err := transaction.ExecContext(ctx,
		"INSERT INTO meals (meal_id, category, meal) VALUES (?, ?, ?)",
		meal.ID, meal.Category, meal.Name,
	); err != nil {
		return models.Meal{}, fmt.Errorf("creating meal: %w", err)
	}

	statement, err := transaction.PrepareContext(ctx,
		"INSERT INTO ingredients (ingredient_id, ingredient, meal_id) VALUES (?, ?, ?)",
	)
	if err != nil {
		return models.Meal{}, fmt.Errorf("preparing ingredient insert: %w", err)
	}
	defer statement.Close()

	for index, ingredient := range meal.Ingredients {
		if _, err := statement.ExecContext(ctx, maxIngredientID+index+1, ingredient, meal.ID); err != nil {
			return models.Meal{}, fmt.Errorf("creating ingredient %q: %w", ingredient, err)
		}
	}

	if err := transaction.Commit(); err != nil {
		return models.Meal{}, fmt.Errorf("committing meal: %w", err)
	}
	return meal, nil
}

func (repository *SQLiteMealRepository) FindByID(ctx context.Context, id int) (models.Meal, error) {
	var meal models.Meal
	err := repository.database.QueryRowContext(ctx,
		"SELECT meal_id, category, meal FROM meals WHERE meal_id = ?", id,
	).Scan(&meal.ID, &meal.Category, &meal.Name)
	if err != nil {
		return models.Meal{}, fmt.Errorf("finding meal by id: %w", err)
	}

	meal.Ingredients, err = repository.FindIngredients(ctx, meal.ID)
	if err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// FindByName matches the name exactly. When several meals share a name the
// oldest one is returned.
func (repository *SQLiteMealRepository) FindByName(ctx context.Context, name string) (models.Meal, error) {
	var meal models.Meal
	err := repository.database.QueryRowContext(ctx,
		"SELECT meal_id, category, meal FROM meals WHERE meal = ? ORDER BY meal_id ASC LIMIT 1", name,
	).Scan(&meal.ID, &meal.Category, &meal.Name)
	if err != nil {
		return models.Meal{}, fmt.Errorf("finding meal by name: %w", err)
	}

	meal.Ingredients, err = repository.FindIngredients(ctx, meal.ID)
	if err != nil {
		return models.Meal{}, err
	}
	return meal, nil
}

// FindByCategory returns meals in insertion order; callers apply their own
// display ordering.
func (repository *SQLiteMealRepository) FindByCategory(ctx context.Context, category models.Category) ([]models.Meal, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT meal_id, category, meal FROM meals WHERE category = ? ORDER BY meal_id ASC", category,
	)
	if err != nil {
		return nil, fmt.Errorf("finding meals by category: %w", err)
	}

	var meals []models.Meal
	positions := make(map[int]int)
	for rows.Next() {
		var meal models.Meal
		if err := rows.Scan(&meal.ID, &meal.Category, &meal.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning meal: %w", err)
		}
		meal.Ingredients = []string{}
		positions[meal.ID] = len(meals)
		meals = append(meals, meal)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating meals: %w", err)
	}
	rows.Close()

	if len(meals) == 0 {
		return meals, nil
	}

	ingredientRows, err := repository.database.QueryContext(ctx,
		`SELECT ingredients.meal_id, ingredients.ingredient
		FROM ingredients JOIN meals ON meals.meal_id = ingredients.meal_id
		WHERE meals.category = ?
		ORDER BY ingredients.ingredient_id ASC`, category,
	)
	if err != nil {
		return nil, fmt.Errorf("finding ingredients by category: %w", err)
	}
	defer ingredientRows.Close()

	for ingredientRows.Next() {
		var mealID int
		var ingredient string
		if err := ingredientRows.Scan(&mealID, &ingredient); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		if position, ok := positions[mealID]; ok {
			meals[position].Ingredients = append(meals[position].Ingredients, ingredient)
		}
	}
	return meals, ingredientRows.Err()
}

func (repository *SQLiteMealRepository) FindIngredients(ctx context.Context, mealID int) ([]string, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT ingredient FROM ingredients WHERE meal_id = ? ORDER BY ingredient_id ASC", mealID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding ingredients: %w", err)
	}
	defer rows.Close()

	ingredients := []string{}
	for rows.Next() {
		var ingredient string
		if err := rows.Scan(&ingredient); err != nil {
			return nil, fmt.Errorf("scanning ingredient: %w", err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, rows.Err()
}

func (repository *SQLiteMealRepository) CountByCategory(ctx context.Context) (map[models.Category]int, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT category, COUNT(*) FROM meals GROUP BY category",
	)
	if err != nil {
		return nil, fmt.Errorf("counting meals by category: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.Category]int)
	for rows.Next() {
		var category models.Category
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scanning category count: %w", err)
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

func (repository *SQLiteMealRepository) MaxMealID(ctx context.Context) (int, error) {
	id, err := maxID(ctx, repository.database, "SELECT MAX(meal_id) FROM meals")
	if err != nil {
		return 0, fmt.Errorf("reading max meal id: %w", err)
	}
	return id, nil
}

func (repository *SQLiteMealRepository) MaxIngredientID(ctx context.Context) (int, error) {
	id, err := maxID(ctx, repository.database, "SELECT MAX(ingredient_id) FROM ingredients")
	if err != nil {
		return 0, fmt.Errorf("reading max ingredient id: %w", err)
	}
	return id, nil
}

func maxID(ctx context.Context, source queryer, query string) (int, error) {
	var id sql.NullInt64
	if err := source.QueryRowContext(ctx, query).Scan(&id); err != nil {
		return 0, err
	}
	return int(id.Int64), nil
}
