package models

import (
	"fmt"
	"strings"
	"time"
)

type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
)

// Categories lists every category in planning order.
var Categories = []Category{CategoryBreakfast, CategoryLunch, CategoryDinner}

// ParseCategory accepts any casing and returns the normalized category.
func ParseCategory(value string) (Category, error) {
	normalized := Category(strings.ToLower(strings.TrimSpace(value)))
	for _, category := range Categories {
		if normalized == category {
			return category, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", value)
}

// Title returns the category with an upper-case first letter, as printed in plan listings.
func (category Category) Title() string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(string(category[:1])) + string(category[1:])
}

type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the planning week from Monday to Sunday.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDay(value string) (Day, error) {
	trimmed := strings.TrimSpace(value)
	for _, day := range Days {
		if strings.EqualFold(trimmed, string(day)) {
			return day, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", value)
}

// Slot is one (day, category) cell of the weekly plan.
type Slot struct {
	Day      Day
	Category Category
}

func (slot Slot) String() string {
	return string(slot.Day) + " " + string(slot.Category)
}

// Slots returns all 21 slots, day by day, breakfast to dinner within a day.
func Slots() []Slot {
	slots := make([]Slot, 0, len(Days)*len(Categories))
	for _, day := range Days {
		for _, category := range Categories {
			slots = append(slots, Slot{Day: day, Category: category})
		}
	}
	return slots
}

// SlotCount is the number of entries in a complete plan.
const SlotCount = 21

type Meal struct {
	ID          int      `json:"id"`
	Category    Category `json:"category"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

type PlanEntry struct {
	Day      Day      `json:"day"`
	Category Category `json:"category"`
	MealID   int      `json:"meal_id"`
	MealName string   `json:"meal_name"`
}

func (entry PlanEntry) Slot() Slot {
	return Slot{Day: entry.Day, Category: entry.Category}
}

type Plan struct {
	ID          string      `json:"id"`
	CommittedAt time.Time   `json:"committed_at"`
	Entries     []PlanEntry `json:"entries"`
}

// Week returns the nested day/category view of the plan's entries.
func (plan Plan) Week() WeekPlan {
	week := WeekPlan{}
	for _, entry := range plan.Entries {
		week.Set(entry.Day, entry.Category, entry.MealName)
	}
	return week
}

// WeekPlan is the nested day -> category -> meal name view of a plan.
type WeekPlan map[Day]map[Category]string

// Set records a meal name for a slot, creating the day map when needed.
func (plan WeekPlan) Set(day Day, category Category, mealName string) {
	if plan[day] == nil {
		plan[day] = make(map[Category]string)
	}
	plan[day][category] = mealName
}

func (plan WeekPlan) Get(day Day, category Category) (string, bool) {
	meals, ok := plan[day]
	if !ok {
		return "", false
	}
	name, ok := meals[category]
	return name, ok
}
