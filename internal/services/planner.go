package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/repository"
)

// WeeklyPlanner builds a full week of meals one slot at a time. A draft
// only becomes visible to readers once Commit replaces the stored plan.
type WeeklyPlanner struct {
	catalog  *MealCatalog
	planRepo repository.PlanRepository
	now      func() time.Time

	mu       sync.Mutex
	planning bool
	draft    map[models.Slot]string
}

func NewWeeklyPlanner(catalog *MealCatalog, planRepo repository.PlanRepository) *WeeklyPlanner {
	return &WeeklyPlanner{
		catalog:  catalog,
		planRepo: planRepo,
		now:      time.Now,
	}
}

// CanPlan reports whether every category has at least one meal.
func (planner *WeeklyPlanner) CanPlan(ctx context.Context) (bool, error) {
	counts, err := planner.catalog.CategoryCounts(ctx)
	if err != nil {
		return false, fmt.Errorf("checking categories: %w", err)
	}
	for _, category := range models.Categories {
		if counts[category] == 0 {
			return false, nil
		}
	}
	return true, nil
}

// BeginPlan starts a fresh draft, discarding any unfinished one.
func (planner *WeeklyPlanner) BeginPlan(ctx context.Context) error {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	return planner.begin(ctx)
}

func (planner *WeeklyPlanner) begin(ctx context.Context) error {
	ok, err := planner.CanPlan(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCannotPlan
	}
	planner.planning = true
	planner.draft = make(map[models.Slot]string, models.SlotCount)
	return nil
}

// Options lists the meal names offered for a category, in display order.
func (planner *WeeklyPlanner) Options(ctx context.Context, category models.Category) ([]string, error) {
	meals, err := planner.catalog.MealsByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(meals))
	for _, meal := range meals {
		names = append(names, meal.Name)
	}
	return names, nil
}

// Assign records mealName for the slot. The name must match one of the
// category's meals exactly; otherwise the slot is left as it was.
func (planner *WeeklyPlanner) Assign(ctx context.Context, day models.Day, category models.Category, mealName string) error {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	return planner.assign(ctx, models.Slot{Day: day, Category: category}, mealName)
}

func (planner *WeeklyPlanner) assign(ctx context.Context, slot models.Slot, mealName string) error {
	if !planner.planning {
		return ErrNotPlanning
	}

	options, err := planner.Options(ctx, slot.Category)
	if err != nil {
		return err
	}
	for _, option := range options {
		if option == mealName {
			planner.draft[slot] = mealName
			return nil
		}
	}
	return &SelectionError{Slot: slot, MealName: mealName}
}

// Commit stores the draft as the current plan. It needs all 21 slots; on
// any failure the previously stored plan and the draft are left untouched.
func (planner *WeeklyPlanner) Commit(ctx context.Context) (models.Plan, error) {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	return planner.commit(ctx)
}

func (planner *WeeklyPlanner) commit(ctx context.Context) (models.Plan, error) {
	if !planner.planning {
		return models.Plan{}, ErrNotPlanning
	}

	var missing []models.Slot
	for _, slot := range models.Slots() {
		if _, ok := planner.draft[slot]; !ok {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return models.Plan{}, &IncompletePlanError{Missing: missing}
	}

	plan := models.Plan{
		ID:          uuid.New().String(),
		CommittedAt: planner.now().UTC(),
		Entries:     make([]models.PlanEntry, 0, models.SlotCount),
	}

	resolved := make(map[string]models.Meal)
	for _, slot := range models.Slots() {
		name := planner.draft[slot]
		meal, ok := resolved[name]
		if !ok {
			found, err := planner.catalog.FindByName(ctx, name)
			if err != nil {
				return models.Plan{}, fmt.Errorf("resolving %s: %w", slot, err)
			}
			meal = found
			resolved[name] = meal
		}
		if meal.Category != slot.Category {
			slog.Warn("meal name resolved to a different category",
				"slot", slot.String(), "meal", name, "meal_id", meal.ID, "meal_category", meal.Category)
		}
		plan.Entries = append(plan.Entries, models.PlanEntry{
			Day:      slot.Day,
			Category: slot.Category,
			MealID:   meal.ID,
			MealName: name,
		})
	}

	if err := planner.planRepo.Replace(ctx, plan); err != nil {
		return models.Plan{}, fmt.Errorf("saving plan: %w", err)
	}

	planner.planning = false
	planner.draft = nil
	slog.Info("committed plan", "plan_id", plan.ID, "entries", len(plan.Entries))
	return plan, nil
}

// PlanWeek runs a whole planning session from a prepared set of selections.
// Missing slots surface as an IncompletePlanError from the commit.
func (planner *WeeklyPlanner) PlanWeek(ctx context.Context, selections models.WeekPlan) (models.Plan, error) {
	planner.mu.Lock()
	defer planner.mu.Unlock()
	defer func() {
		planner.planning = false
		planner.draft = nil
	}()

	if err := planner.begin(ctx); err != nil {
		return models.Plan{}, err
	}
	for _, slot := range models.Slots() {
		name, ok := selections.Get(slot.Day, slot.Category)
		if !ok {
			continue
		}
		if err := planner.assign(ctx, slot, name); err != nil {
			return models.Plan{}, err
		}
	}
	return planner.commit(ctx)
}

// Draft returns a copy of the in-progress selections.
func (planner *WeeklyPlanner) Draft() models.WeekPlan {
	planner.mu.Lock()
	defer planner.mu.Unlock()

	draft := models.WeekPlan{}
	for slot, name := range planner.draft {
		draft.Set(slot.Day, slot.Category, name)
	}
	return draft
}

// StoredPlan returns the committed entries in slot order, or none.
func (planner *WeeklyPlanner) StoredPlan(ctx context.Context) ([]models.PlanEntry, error) {
	entries, err := planner.planRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading plan: %w", err)
	}
	return entries, nil
}

// LatestPlan returns the committed plan with its id and commit time. It
// returns ErrNoPlan when nothing has been committed.
func (planner *WeeklyPlanner) LatestPlan(ctx context.Context) (models.Plan, error) {
	plan, err := planner.planRepo.FindLatest(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Plan{}, ErrNoPlan
	}
	if err != nil {
		return models.Plan{}, fmt.Errorf("loading plan: %w", err)
	}
	return plan, nil
}

// CurrentPlan is the nested day/category view of the committed plan. It is
// empty when nothing has been committed.
func (planner *WeeklyPlanner) CurrentPlan(ctx context.Context) (models.WeekPlan, error) {
	entries, err := planner.StoredPlan(ctx)
	if err != nil {
		return nil, err
	}
	return models.Plan{Entries: entries}.Week(), nil
}
