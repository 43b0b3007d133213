package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
)

var lettersAndSpaces = regexp.MustCompile(`^[a-zA-Z ]+$`)

// MealCatalog owns meals and their ingredients.
type MealCatalog struct {
	mealRepo repository.MealRepository
}

func NewMealCatalog(mealRepo repository.MealRepository) *MealCatalog {
	return &MealCatalog{mealRepo: mealRepo}
}

// AddMeal validates and stores a meal. The repository assigns ids from the
// current maximum inside one transaction; that is the only place ids are
// generated.
func (catalog *MealCatalog) AddMeal(ctx context.Context, category, name string, ingredients []string) (models.Meal, error) {
	meal, err := newMeal(category, name, ingredients)
	if err != nil {
		return models.Meal{}, err
	}

	created, err := catalog.mealRepo.Create(ctx, meal)
	if err != nil {
		return models.Meal{}, fmt.Errorf("adding meal %q: %w", meal.Name, err)
	}

	slog.Debug("added meal", "id", created.ID, "category", created.Category, "name", created.Name)
	return created, nil
}

func newMeal(category, name string, ingredients []string) (models.Meal, error) {
	parsedCategory, err := models.ParseCategory(category)
	if err != nil {
		return models.Meal{}, &ValidationError{Field: "category", Value: category}
	}

	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return models.Meal{}, err
	}

	if err := ValidateIngredients(ingredients); err != nil {
		return models.Meal{}, err
	}
	cleaned := make([]string, 0, len(ingredients))
	for _, ingredient := range ingredients {
		cleaned = append(cleaned, strings.TrimSpace(ingredient))
	}

	return models.Meal{Category: parsedCategory, Name: name, Ingredients: cleaned}, nil
}

// ValidateName accepts letters and spaces only, after trimming.
func ValidateName(name string) error {
	if !lettersAndSpaces.MatchString(strings.TrimSpace(name)) {
		return &ValidationError{Field: "name", Value: name}
	}
	return nil
}

// ValidateIngredients requires at least one ingredient, each letters and
// spaces only after trimming.
func ValidateIngredients(ingredients []string) error {
	if len(ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Value: ""}
	}
	for _, ingredient := range ingredients {
		if !lettersAndSpaces.MatchString(strings.TrimSpace(ingredient)) {
			return &ValidationError{Field: "ingredient", Value: ingredient}
		}
	}
	return nil
}

// MealsByCategory returns the category's meals ordered by name ignoring case.
// Names equal under that comparison fall back to exact name, then id.
func (catalog *MealCatalog) MealsByCategory(ctx context.Context, category models.Category) ([]models.Meal, error) {
	meals, err := catalog.mealRepo.FindByCategory(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("listing %s meals: %w", category, err)
	}

	sort.SliceStable(meals, func(i, j int) bool {
		left, right := strings.ToLower(meals[i].Name), strings.ToLower(meals[j].Name)
		if left != right {
			return left < right
		}
		if meals[i].Name != meals[j].Name {
			return meals[i].Name < meals[j].Name
		}
		return meals[i].ID < meals[j].ID
	})
	return meals, nil
}

func (catalog *MealCatalog) IngredientsOf(ctx context.Context, mealID int) ([]string, error) {
	ingredients, err := catalog.mealRepo.FindIngredients(ctx, mealID)
	if err != nil {
		return nil, fmt.Errorf("loading ingredients of meal %d: %w", mealID, err)
	}
	return ingredients, nil
}

// Meal loads a single meal with its ingredients.
func (catalog *MealCatalog) Meal(ctx context.Context, id int) (models.Meal, error) {
	meal, err := catalog.mealRepo.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meal{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return models.Meal{}, fmt.Errorf("loading meal %d: %w", id, err)
	}
	return meal, nil
}

// FindByName resolves an exact meal name. Names are not unique across
// categories; the oldest matching meal wins.
func (catalog *MealCatalog) FindByName(ctx context.Context, name string) (models.Meal, error) {
	meal, err := catalog.mealRepo.FindByName(ctx, name)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Meal{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return models.Meal{}, fmt.Errorf("resolving meal %q: %w", name, err)
	}
	return meal, nil
}

// CategoryCounts reports how many meals each category holds, with zero
// entries for empty categories.
func (catalog *MealCatalog) CategoryCounts(ctx context.Context) (map[models.Category]int, error) {
	counts, err := catalog.mealRepo.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range models.Categories {
		if _, ok := counts[category]; !ok {
			counts[category] = 0
		}
	}
	return counts, nil
}

// ParseIngredients splits a comma separated ingredient line. Elements are
// returned untrimmed so validation can report exactly what was typed. Empty
// elements at the end are dropped, so "eggs, milk," is two ingredients.
func ParseIngredients(input string) []string {
	if strings.TrimSpace(input) == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	for len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}
