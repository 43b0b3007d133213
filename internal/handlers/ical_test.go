package handlers

import (
	"net/http"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/testutil"
)

func TestICalHandler_Feed(t *testing.T) {
	api := newTestAPI(t)
	testutil.SeedBasicMeals(t, api.catalog)

	recorder := api.do(t, http.MethodPost, "/api/plan", fullWeek(basicSelections))
	if recorder.Code != http.StatusCreated {
		t.Fatalf("planning week: %d %s", recorder.Code, recorder.Body.String())
	}

	recorder = api.do(t, http.MethodGet, "/api/plan.ics", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if contentType := recorder.Header().Get("Content-Type"); !strings.HasPrefix(contentType, "text/calendar") {
		t.Errorf("expected text/calendar, got %q", contentType)
	}

	calendar, err := ical.ParseCalendar(recorder.Body)
	if err != nil {
		t.Fatalf("parsing calendar: %v", err)
	}

	events := calendar.Events()
	if len(events) != models.SlotCount {
		t.Fatalf("expected %d events, got %d", models.SlotCount, len(events))
	}

	found := false
	for _, event := range events {
		summary := event.GetProperty(ical.ComponentPropertySummary)
		if summary == nil || summary.Value != "[Breakfast] Pancakes" {
			continue
		}
		rrule := event.GetProperty(ical.ComponentPropertyRrule)
		if rrule == nil || !strings.HasPrefix(rrule.Value, "FREQ=WEEKLY;BYDAY=") {
			t.Errorf("expected a weekly rule, got %v", rrule)
			continue
		}
		if rrule.Value != "FREQ=WEEKLY;BYDAY=MO" {
			continue
		}
		found = true

		start, err := event.GetAllDayStartAt()
		if err != nil {
			t.Fatalf("reading start: %v", err)
		}
		if start.Weekday() != time.Monday {
			t.Errorf("expected Monday event to start on a Monday, got %s", start.Weekday())
		}
	}
	if !found {
		t.Error("expected a Monday breakfast event")
	}
}

func TestICalHandler_Feed_EmptyWithoutPlan(t *testing.T) {
	api := newTestAPI(t)

	recorder := api.do(t, http.MethodGet, "/api/plan.ics", nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	calendar, err := ical.ParseCalendar(recorder.Body)
	if err != nil {
		t.Fatalf("parsing calendar: %v", err)
	}
	if len(calendar.Events()) != 0 {
		t.Errorf("expected no events, got %d", len(calendar.Events()))
	}
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name     string
		moment   time.Time
		expected time.Time
	}{
		{name: "monday", moment: time.Date(2026, 10, 12, 15, 0, 0, 0, time.UTC), expected: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{name: "sunday", moment: time.Date(2026, 10, 18, 23, 59, 0, 0, time.UTC), expected: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)},
		{name: "across month", moment: time.Date(2026, 11, 1, 8, 0, 0, 0, time.UTC), expected: time.Date(2026, 10, 26, 0, 0, 0, 0, time.UTC)},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := startOfWeek(testCase.moment); !got.Equal(testCase.expected) {
				t.Errorf("expected %s, got %s", testCase.expected, got)
			}
		})
	}
}
