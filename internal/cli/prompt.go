package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

const (
	menuQuestion       = "What would you like to do (add, show, plan, list plan, save, exit)?"
	wrongCategory      = "Wrong meal category! Choose from: breakfast, lunch, dinner."
	wrongFormat        = "Wrong format. Use letters only!"
	mealMissing        = "This meal doesn't exist. Choose a meal from the list above."
	cannotPlanMessage  = "Add at least one meal to every category first."
	noPlanMessage      = "No plan found. Please create a plan first."
	cannotSaveMessage  = "Unable to save. Plan your meals first."
	unexpectedErrorFmt = "Something went wrong: %v\n"
)

// Prompt drives the line-based interactive session.
type Prompt struct {
	scanner     *bufio.Scanner
	out         io.Writer
	catalog     *services.MealCatalog
	planner     *services.WeeklyPlanner
	shopping    *services.ShoppingService
	shoppingDir string
	heading     lipgloss.Style
}

func NewPrompt(
	in io.Reader,
	out io.Writer,
	catalog *services.MealCatalog,
	planner *services.WeeklyPlanner,
	shopping *services.ShoppingService,
	shoppingDir string,
) *Prompt {
	renderer := lipgloss.NewRenderer(out)
	return &Prompt{
		scanner:     bufio.NewScanner(in),
		out:         out,
		catalog:     catalog,
		planner:     planner,
		shopping:    shopping,
		shoppingDir: shoppingDir,
		heading:     renderer.NewStyle().Bold(true),
	}
}

// Run reads commands until "exit" or end of input.
func (prompt *Prompt) Run(ctx context.Context) error {
	for {
		prompt.println(menuQuestion)
		line, ok := prompt.readLine()
		if !ok {
			return prompt.scanner.Err()
		}

		command := ParseCommand(line)
		if command.Kind == CommandExit {
			prompt.println("Bye!")
			return nil
		}

		if err := prompt.dispatch(ctx, command); err != nil {
			if errors.Is(err, io.EOF) {
				return prompt.scanner.Err()
			}
			slog.Error("running command", "command", command.Input, "error", err)
			fmt.Fprintf(prompt.out, unexpectedErrorFmt, err)
		}
	}
}

func (prompt *Prompt) dispatch(ctx context.Context, command Command) error {
	switch command.Kind {
	case CommandAdd:
		return prompt.add(ctx)
	case CommandShow:
		return prompt.show(ctx)
	case CommandPlan:
		return prompt.plan(ctx)
	case CommandListPlan:
		return prompt.listPlan(ctx)
	case CommandSave:
		return prompt.save(ctx)
	}
	return nil
}

func (prompt *Prompt) add(ctx context.Context) error {
	category, err := prompt.askCategory("Which meal do you want to add (breakfast, lunch, dinner)?")
	if err != nil {
		return err
	}

	var name string
	for {
		prompt.println("Input the meal's name:")
		line, ok := prompt.readLine()
		if !ok {
			return io.EOF
		}
		if services.ValidateName(line) == nil {
			name = strings.TrimSpace(line)
			break
		}
		prompt.println(wrongFormat)
	}

	var ingredients []string
	for {
		prompt.println("Input the ingredients:")
		line, ok := prompt.readLine()
		if !ok {
			return io.EOF
		}
		ingredients = services.ParseIngredients(line)
		if services.ValidateIngredients(ingredients) == nil {
			break
		}
		prompt.println(wrongFormat)
	}

	if _, err := prompt.catalog.AddMeal(ctx, string(category), name, ingredients); err != nil {
		return err
	}
	prompt.println("The meal has been added!")
	return nil
}

func (prompt *Prompt) show(ctx context.Context) error {
	category, err := prompt.askCategory("Which category do you want to print (breakfast, lunch, dinner)?")
	if err != nil {
		return err
	}

	meals, err := prompt.catalog.MealsByCategory(ctx, category)
	if err != nil {
		return err
	}
	if len(meals) == 0 {
		prompt.println("No meals found.")
		return nil
	}

	prompt.println("Category: " + string(category))
	for index, meal := range meals {
		if index > 0 {
			prompt.println("")
		}
		prompt.println("Name: " + meal.Name)
		prompt.println("Ingredients:")
		for _, ingredient := range meal.Ingredients {
			prompt.println(ingredient)
		}
	}
	return nil
}

func (prompt *Prompt) plan(ctx context.Context) error {
	if err := prompt.planner.BeginPlan(ctx); err != nil {
		if errors.Is(err, services.ErrCannotPlan) {
			prompt.println(cannotPlanMessage)
			return nil
		}
		return err
	}

	for _, day := range models.Days {
		prompt.println(prompt.heading.Render(string(day)))
		for _, category := range models.Categories {
			if err := prompt.chooseMeal(ctx, day, category); err != nil {
				return err
			}
		}
		prompt.println(fmt.Sprintf("Yeah! We planned the meals for %s.", day))
		prompt.println("")
	}

	if _, err := prompt.planner.Commit(ctx); err != nil {
		return err
	}
	return prompt.listPlan(ctx)
}

func (prompt *Prompt) chooseMeal(ctx context.Context, day models.Day, category models.Category) error {
	options, err := prompt.planner.Options(ctx, category)
	if err != nil {
		return err
	}
	for _, option := range options {
		prompt.println(option)
	}
	prompt.println("")

	for {
		prompt.println(fmt.Sprintf("Choose the %s for %s from the list above:", category, day))
		line, ok := prompt.readLine()
		if !ok {
			return io.EOF
		}
		err := prompt.planner.Assign(ctx, day, category, line)
		if err == nil {
			return nil
		}
		if !errors.Is(err, services.ErrInvalidSelection) {
			return err
		}
		prompt.println(mealMissing)
	}
}

func (prompt *Prompt) listPlan(ctx context.Context) error {
	plan, err := prompt.planner.CurrentPlan(ctx)
	if err != nil {
		return err
	}
	if len(plan) == 0 {
		prompt.println(noPlanMessage)
		return nil
	}

	for _, day := range models.Days {
		if _, ok := plan[day]; !ok {
			continue
		}
		prompt.println(prompt.heading.Render(string(day)))
		for _, category := range models.Categories {
			name, _ := plan.Get(day, category)
			prompt.println(category.Title() + ": " + name)
		}
		prompt.println("")
	}
	return nil
}

func (prompt *Prompt) save(ctx context.Context) error {
	if _, err := prompt.shopping.Build(ctx); err != nil {
		if errors.Is(err, services.ErrNoPlan) {
			prompt.println(cannotSaveMessage)
			return nil
		}
		return err
	}

	var path string
	for path == "" {
		prompt.println("Input a filename:")
		line, ok := prompt.readLine()
		if !ok {
			return io.EOF
		}
		path = strings.TrimSpace(line)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(prompt.shoppingDir, path)
	}

	if err := prompt.shopping.Save(ctx, path); err != nil {
		return err
	}
	prompt.println("Saved!")
	return nil
}

func (prompt *Prompt) askCategory(question string) (models.Category, error) {
	for {
		prompt.println(question)
		line, ok := prompt.readLine()
		if !ok {
			return "", io.EOF
		}
		category, err := models.ParseCategory(line)
		if err == nil {
			return category, nil
		}
		prompt.println(wrongCategory)
	}
}

func (prompt *Prompt) readLine() (string, bool) {
	if !prompt.scanner.Scan() {
		return "", false
	}
	return prompt.scanner.Text(), true
}

func (prompt *Prompt) println(line string) {
	fmt.Fprintln(prompt.out, line)
}
