// Package seed imports meals into the catalog from a YAML file:
//
//	meals:
//	  - category: breakfast
//	    name: Pancakes
//	    ingredients: [flour, eggs, milk]
package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
)

type Meal struct {
	Category    string   `yaml:"category"`
	Name        string   `yaml:"name"`
	Ingredients []string `yaml:"ingredients"`
}

type File struct {
	Meals []Meal `yaml:"meals"`
}

type MealAdder interface {
	AddMeal(ctx context.Context, category, name string, ingredients []string) (models.Meal, error)
}

func Load(reader io.Reader) (File, error) {
	var file File
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if err == io.EOF {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decoding seed file: %w", err)
	}
	return file, nil
}

func LoadFile(path string) (File, error) {
	handle, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening seed file: %w", err)
	}
	defer handle.Close()
	return Load(handle)
}

// Import adds the meals in file order and stops at the first failure. Meals
// added before the failure stay in the catalog.
func Import(ctx context.Context, catalog MealAdder, file File) ([]models.Meal, error) {
	added := make([]models.Meal, 0, len(file.Meals))
	for index, meal := range file.Meals {
		created, err := catalog.AddMeal(ctx, meal.Category, meal.Name, meal.Ingredients)
		if err != nil {
			return added, fmt.Errorf("meal %d (%q): %w", index+1, meal.Name, err)
		}
		added = append(added, created)
	}
	return added, nil
}
