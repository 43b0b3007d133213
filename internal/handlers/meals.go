package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/zgrigoryan/Meal-Planner/internal/models"
	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

type MealHandler struct {
	catalog *services.MealCatalog
}

func NewMealHandler(catalog *services.MealCatalog) *MealHandler {
	return &MealHandler{catalog: catalog}
}

type createMealRequest struct {
	Category    string   `json:"category"`
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
}

func (handler *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	meals, err := handler.catalog.MealsByCategory(ctx, category)
	if err != nil {
		writeServiceError(w, "listing meals", err)
		return
	}
	if meals == nil {
		meals = []models.Meal{}
	}
	writeJSON(w, http.StatusOK, meals)
}

func (handler *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid meal id"})
		return
	}

	meal, err := handler.catalog.Meal(r.Context(), id)
	if errors.Is(err, services.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	if err != nil {
		writeServiceError(w, "loading meal", err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (handler *MealHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var request createMealRequest
	if err := decodeJSON(w, r, &request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	meal, err := handler.catalog.AddMeal(ctx, request.Category, request.Name, request.Ingredients)
	if err != nil {
		writeServiceError(w, "adding meal", err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}
