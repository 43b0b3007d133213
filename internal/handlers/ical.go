package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

var weekdayCodes = map[models.Day]string{
	models.Monday:    "MO",
	models.Tuesday:   "TU",
	models.Wednesday: "WE",
	models.Thursday:  "TH",
	models.Friday:    "FR",
	models.Saturday:  "SA",
	models.Sunday:    "SU",
}

type ICalHandler struct {
	planner *services.WeeklyPlanner
}

func NewICalHandler(planner *services.WeeklyPlanner) *ICalHandler {
	return &ICalHandler{planner: planner}
}

// Feed publishes the committed plan as one weekly all-day event per slot,
// starting in the week the plan was committed. Without a plan the calendar
// is empty.
func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	plan, err := handler.planner.LatestPlan(r.Context())
	if err != nil && !errors.Is(err, services.ErrNoPlan) {
		slog.Error("finding plan for ical", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	calendar := buildCalendar(plan)

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=meal-plan.ics")
	if err := calendar.SerializeTo(w); err != nil {
		slog.Error("writing ical feed", "error", err)
	}
}

func buildCalendar(plan models.Plan) *ical.Calendar {
	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//Meal Planner//Meal Planner//EN")
	calendar.SetXWRCalName("Meal Planner")

	monday := startOfWeek(plan.CommittedAt)
	for _, entry := range plan.Entries {
		date := monday.AddDate(0, 0, dayOffset(entry.Day))

		event := calendar.AddEvent(fmt.Sprintf("meal-%s-%s-%s@meal-planner", plan.ID, entry.Day, entry.Category))
		event.SetSummary(fmt.Sprintf("[%s] %s", entry.Category.Title(), entry.MealName))
		event.SetDtStampTime(plan.CommittedAt)
		event.SetAllDayStartAt(date)
		event.SetAllDayEndAt(date.AddDate(0, 0, 1))
		event.AddRrule("FREQ=WEEKLY;BYDAY=" + weekdayCodes[entry.Day])
	}
	return calendar
}

func startOfWeek(moment time.Time) time.Time {
	moment = moment.UTC()
	offset := (int(moment.Weekday()) + 6) % 7
	return time.Date(moment.Year(), moment.Month(), moment.Day()-offset, 0, 0, 0, 0, time.UTC)
}

func dayOffset(day models.Day) int {
	for index, candidate := range models.Days {
		if candidate == day {
			return index
		}
	}
	return 0
}
