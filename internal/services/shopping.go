package services

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
)

// ShoppingList maps an ingredient name to how many planned meals use it.
type ShoppingList map[string]int

// Lines formats the list sorted by ingredient, "name" for a single use and
// "name xN" otherwise.
func (list ShoppingList) Lines() []string {
	names := make([]string, 0, len(list))
	for name := range list {
		names = append(names, name)
	}
	sort.Strings(names)

	lines := make([]string, 0, len(names))
	for _, name := range names {
		if count := list[name]; count > 1 {
			lines = append(lines, fmt.Sprintf("%s x%d", name, count))
		} else {
			lines = append(lines, name)
		}
	}
	return lines
}

type IngredientSource interface {
	IngredientsOf(ctx context.Context, mealID int) ([]string, error)
}

// Aggregate counts every ingredient of every planned meal. Names are compared
// exactly, without case or whitespace folding.
func Aggregate(ctx context.Context, entries []models.PlanEntry, source IngredientSource) (ShoppingList, error) {
	list := ShoppingList{}
	cache := make(map[int][]string)

	for _, entry := range entries {
		ingredients, ok := cache[entry.MealID]
		if !ok {
			var err error
			ingredients, err = source.IngredientsOf(ctx, entry.MealID)
			if err != nil {
				return nil, fmt.Errorf("aggregating %s: %w", entry.Slot(), err)
			}
			cache[entry.MealID] = ingredients
		}
		for _, ingredient := range ingredients {
			list[ingredient]++
		}
	}
	return list, nil
}

type ShoppingService struct {
	planRepo repository.PlanRepository
	catalog  *MealCatalog
}

func NewShoppingService(planRepo repository.PlanRepository, catalog *MealCatalog) *ShoppingService {
	return &ShoppingService{planRepo: planRepo, catalog: catalog}
}

// Build aggregates the committed plan. It returns ErrNoPlan when nothing has
// been planned yet.
func (service *ShoppingService) Build(ctx context.Context) (ShoppingList, error) {
	entries, err := service.planRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	if len(entries) == 0 {
		return nil, ErrNoPlan
	}
	return Aggregate(ctx, entries, service.catalog)
}

// Save writes the formatted shopping list to path, one item per line.
func (service *ShoppingService) Save(ctx context.Context, path string) error {
	list, err := service.Build(ctx)
	if err != nil {
		return err
	}

	content := strings.Join(list.Lines(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing shopping list: %w", err)
	}
	return nil
}
