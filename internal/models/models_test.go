package models

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected Category
		wantErr  bool
	}{
		{input: "breakfast", expected: CategoryBreakfast},
		{input: "LUNCH", expected: CategoryLunch},
		{input: " Dinner ", expected: CategoryDinner},
		{input: "brunch", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.input, func(t *testing.T) {
			category, err := ParseCategory(testCase.input)
			if testCase.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", testCase.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if category != testCase.expected {
				t.Errorf("expected %s, got %s", testCase.expected, category)
			}
		})
	}
}

func TestSlots_Order(t *testing.T) {
	slots := Slots()
	if len(slots) != SlotCount {
		t.Fatalf("expected %d slots, got %d", SlotCount, len(slots))
	}
	if slots[0] != (Slot{Day: Monday, Category: CategoryBreakfast}) {
		t.Errorf("expected Monday breakfast first, got %s", slots[0])
	}
	if slots[2] != (Slot{Day: Monday, Category: CategoryDinner}) {
		t.Errorf("expected Monday dinner third, got %s", slots[2])
	}
	if slots[3] != (Slot{Day: Tuesday, Category: CategoryBreakfast}) {
		t.Errorf("expected Tuesday breakfast fourth, got %s", slots[3])
	}
	if slots[20] != (Slot{Day: Sunday, Category: CategoryDinner}) {
		t.Errorf("expected Sunday dinner last, got %s", slots[20])
	}
}

func TestWeekPlan_SetAndGet(t *testing.T) {
	plan := WeekPlan{}
	plan.Set(Friday, CategoryLunch, "Salad")

	name, ok := plan.Get(Friday, CategoryLunch)
	if !ok || name != "Salad" {
		t.Errorf("expected Salad, got %q (ok=%v)", name, ok)
	}
	if _, ok := plan.Get(Friday, CategoryDinner); ok {
		t.Error("expected no dinner for Friday")
	}
	if _, ok := plan.Get(Monday, CategoryLunch); ok {
		t.Error("expected no entries for Monday")
	}
}

func TestCategory_Title(t *testing.T) {
	if CategoryBreakfast.Title() != "Breakfast" {
		t.Errorf("expected Breakfast, got %s", CategoryBreakfast.Title())
	}
}
