package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/zgrigoryan/Meal-Planner/internal/cli"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
	"github.com/zgrigoryan/Meal-Planner/internal/testutil"
)

type session struct {
	catalog *services.MealCatalog
	planner *services.WeeklyPlanner
	dir     string
	run     func(t *testing.T, input ...string) string
}

func newSession(t *testing.T) session {
	t.Helper()
	db := testutil.NewTestDatabase(t)
	planRepo := repository.NewPlanRepository(db)
	catalog := services.NewMealCatalog(repository.NewMealRepository(db))
	planner := services.NewWeeklyPlanner(catalog, planRepo)
	shopping := services.NewShoppingService(planRepo, catalog)
	dir := t.TempDir()

	return session{
		catalog: catalog,
		planner: planner,
		dir:     dir,
		run: func(t *testing.T, input ...string) string {
			t.Helper()
			var out bytes.Buffer
			in := strings.NewReader(strings.Join(input, "\n") + "\n")
			prompt := cli.NewPrompt(in, &out, catalog, planner, shopping, dir)
			if err := prompt.Run(context.Background()); err != nil {
				t.Fatalf("running prompt: %v", err)
			}
			return out.String()
		},
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected cli.CommandKind
	}{
		{"add", cli.CommandAdd},
		{" show ", cli.CommandShow},
		{"plan", cli.CommandPlan},
		{"list plan", cli.CommandListPlan},
		{"save", cli.CommandSave},
		{"exit", cli.CommandExit},
		{"ADD", cli.CommandUnknown},
		{"list", cli.CommandUnknown},
	}

	for _, testCase := range tests {
		if got := cli.ParseCommand(testCase.input).Kind; got != testCase.expected {
			t.Errorf("ParseCommand(%q): expected %d, got %d", testCase.input, testCase.expected, got)
		}
	}
}

func TestPrompt_AddRepromptsOnBadInput(t *testing.T) {
	s := newSession(t)

	out := s.run(t,
		"add",
		"brunch", "Breakfast",
		"Eggs 2", "Scrambled Eggs",
		"eggs, butter1", "eggs, butter",
		"exit",
	)

	if !strings.Contains(out, "Wrong meal category! Choose from: breakfast, lunch, dinner.") {
		t.Errorf("expected category error, got:\n%s", out)
	}
	if strings.Count(out, "Wrong format. Use letters only!") != 2 {
		t.Errorf("expected two format errors, got:\n%s", out)
	}
	if !strings.Contains(out, "The meal has been added!") {
		t.Errorf("expected success message, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Bye!\n") {
		t.Errorf("expected Bye! at the end, got:\n%s", out)
	}

	meals, err := s.catalog.MealsByCategory(context.Background(), models.CategoryBreakfast)
	if err != nil {
		t.Fatalf("listing meals: %v", err)
	}
	if len(meals) != 1 || meals[0].Name != "Scrambled Eggs" {
		t.Fatalf("expected Scrambled Eggs stored, got %+v", meals)
	}
	if len(meals[0].Ingredients) != 2 || meals[0].Ingredients[1] != "butter" {
		t.Errorf("expected trimmed ingredients, got %v", meals[0].Ingredients)
	}
}

func TestPrompt_Show(t *testing.T) {
	s := newSession(t)
	testutil.SeedBasicMeals(t, s.catalog)

	out := s.run(t, "show", "lunch", "show", "dinner", "exit")

	want := "Category: lunch\nName: Salad\nIngredients:\nlettuce\ntomato\n"
	if !strings.Contains(out, want) {
		t.Errorf("expected lunch listing, got:\n%s", out)
	}
	if !strings.Contains(out, "Name: Soup\nIngredients:\nbroth\ncarrot\n") {
		t.Errorf("expected dinner listing, got:\n%s", out)
	}
}

func TestPrompt_ShowEmptyCategory(t *testing.T) {
	s := newSession(t)

	out := s.run(t, "show", "dinner", "exit")
	if !strings.Contains(out, "No meals found.") {
		t.Errorf("expected no meals message, got:\n%s", out)
	}
}

func TestPrompt_PlanRequiresEveryCategory(t *testing.T) {
	s := newSession(t)
	s.catalog.AddMeal(context.Background(), "lunch", "Salad", []string{"lettuce"})

	out := s.run(t, "plan", "exit")
	if !strings.Contains(out, "Add at least one meal to every category first.") {
		t.Errorf("expected cannot plan message, got:\n%s", out)
	}
}

func TestPrompt_PlanListAndSave(t *testing.T) {
	s := newSession(t)
	testutil.SeedBasicMeals(t, s.catalog)

	input := []string{"list plan", "save", "plan"}
	for i := range models.Days {
		if i == 0 {
			input = append(input, "Waffles")
		}
		input = append(input, "Pancakes", "Salad", "Soup")
	}
	input = append(input, "save", "shopping.txt", "exit")

	out := s.run(t, input...)

	if !strings.Contains(out, "No plan found. Please create a plan first.") {
		t.Errorf("expected no plan message before planning, got:\n%s", out)
	}
	if !strings.Contains(out, "Unable to save. Plan your meals first.") {
		t.Errorf("expected unable to save message, got:\n%s", out)
	}
	if !strings.Contains(out, "Choose the breakfast for Monday from the list above:") {
		t.Errorf("expected Monday breakfast prompt, got:\n%s", out)
	}
	if strings.Count(out, "This meal doesn't exist. Choose a meal from the list above.") != 1 {
		t.Errorf("expected one missing meal message, got:\n%s", out)
	}
	if !strings.Contains(out, "Yeah! We planned the meals for Sunday.") {
		t.Errorf("expected Sunday confirmation, got:\n%s", out)
	}
	if !strings.Contains(out, "Monday\nBreakfast: Pancakes\nLunch: Salad\nDinner: Soup\n") {
		t.Errorf("expected plan listing, got:\n%s", out)
	}
	if !strings.Contains(out, "Saved!") {
		t.Errorf("expected Saved!, got:\n%s", out)
	}

	content, err := os.ReadFile(filepath.Join(s.dir, "shopping.txt"))
	if err != nil {
		t.Fatalf("reading shopping list: %v", err)
	}
	want := "broth x7\ncarrot x7\neggs x7\nflour x7\nlettuce x7\nmilk x7\ntomato x7\n"
	if string(content) != want {
		t.Errorf("unexpected shopping list:\n%s", content)
	}
}

func TestPrompt_UnknownCommandRepeatsQuestion(t *testing.T) {
	s := newSession(t)

	out := s.run(t, "dance", "exit")
	question := "What would you like to do (add, show, plan, list plan, save, exit)?"
	if strings.Count(out, question) != 2 {
		t.Errorf("expected question twice, got:\n%s", out)
	}
}

func TestPrompt_EndOfInput(t *testing.T) {
	s := newSession(t)
	testutil.SeedBasicMeals(t, s.catalog)

	out := s.run(t, "plan", "Pancakes")
	if strings.Contains(out, "Bye!") {
		t.Errorf("did not expect Bye! on end of input, got:\n%s", out)
	}

	current, err := s.planner.CurrentPlan(context.Background())
	if err != nil {
		t.Fatalf("loading plan: %v", err)
	}
	if len(current) != 0 {
		t.Errorf("expected no plan stored after abandoned session, got %v", current)
	}
}
