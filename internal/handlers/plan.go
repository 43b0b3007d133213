package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

type PlanHandler struct {
	planner *services.WeeklyPlanner
}

func NewPlanHandler(planner *services.WeeklyPlanner) *PlanHandler {
	return &PlanHandler{planner: planner}
}

type planResponse struct {
	ID          string          `json:"id,omitempty"`
	CommittedAt *time.Time      `json:"committed_at,omitempty"`
	Week        models.WeekPlan `json:"week"`
}

type assignRequest struct {
	Meal string `json:"meal"`
}

// Current returns the committed week. Before the first commit the week is
// empty and the revision fields are omitted.
func (handler *PlanHandler) Current(w http.ResponseWriter, r *http.Request) {
	plan, err := handler.planner.LatestPlan(r.Context())
	if errors.Is(err, services.ErrNoPlan) {
		writeJSON(w, http.StatusOK, planResponse{Week: models.WeekPlan{}})
		return
	}
	if err != nil {
		writeServiceError(w, "loading plan", err)
		return
	}

	committedAt := plan.CommittedAt
	writeJSON(w, http.StatusOK, planResponse{
		ID:          plan.ID,
		CommittedAt: &committedAt,
		Week:        plan.Week(),
	})
}

func (handler *PlanHandler) Status(w http.ResponseWriter, r *http.Request) {
	canPlan, err := handler.planner.CanPlan(r.Context())
	if err != nil {
		writeServiceError(w, "checking plan status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"can_plan": canPlan})
}

func (handler *PlanHandler) Options(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	options, err := handler.planner.Options(r.Context(), category)
	if err != nil {
		writeServiceError(w, "listing options", err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

// Replace plans the whole week from a {"Monday": {"breakfast": "..."}} body.
func (handler *PlanHandler) Replace(w http.ResponseWriter, r *http.Request) {
	var body map[string]map[string]string
	if err := decodeJSON(w, r, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	selections, err := parseWeekPlan(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	plan, err := handler.planner.PlanWeek(r.Context(), selections)
	if err != nil {
		writeServiceError(w, "planning week", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func (handler *PlanHandler) BeginDraft(w http.ResponseWriter, r *http.Request) {
	if err := handler.planner.BeginPlan(r.Context()); err != nil {
		writeServiceError(w, "starting plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, handler.planner.Draft())
}

func (handler *PlanHandler) Draft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, handler.planner.Draft())
}

// AssignSlot sets one slot of the draft from {"meal": "..."}.
func (handler *PlanHandler) AssignSlot(w http.ResponseWriter, r *http.Request) {
	day, err := models.ParseDay(chi.URLParam(r, "day"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	category, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	var request assignRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	if err := handler.planner.Assign(r.Context(), day, category, request.Meal); err != nil {
		writeServiceError(w, "assigning meal", err)
		return
	}
	writeJSON(w, http.StatusOK, handler.planner.Draft())
}

func (handler *PlanHandler) CommitDraft(w http.ResponseWriter, r *http.Request) {
	plan, err := handler.planner.Commit(r.Context())
	if err != nil {
		writeServiceError(w, "committing plan", err)
		return
	}
	writeJSON(w, http.StatusCreated, plan)
}

func parseWeekPlan(body map[string]map[string]string) (models.WeekPlan, error) {
	selections := models.WeekPlan{}
	for dayName, meals := range body {
		day, err := models.ParseDay(dayName)
		if err != nil {
			return nil, err
		}
		for categoryName, mealName := range meals {
			category, err := models.ParseCategory(categoryName)
			if err != nil {
				return nil, err
			}
			selections.Set(day, category, mealName)
		}
	}
	return selections, nil
}
