package handlers

import (
	"net/http"

	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

type ShoppingHandler struct {
	shopping *services.ShoppingService
}

func NewShoppingHandler(shopping *services.ShoppingService) *ShoppingHandler {
	return &ShoppingHandler{shopping: shopping}
}

type shoppingListResponse struct {
	Items services.ShoppingList `json:"items"`
	Lines []string              `json:"lines"`
}

func (handler *ShoppingHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := handler.shopping.Build(r.Context())
	if err != nil {
		writeServiceError(w, "building shopping list", err)
		return
	}
	writeJSON(w, http.StatusOK, shoppingListResponse{Items: list, Lines: list.Lines()})
}
