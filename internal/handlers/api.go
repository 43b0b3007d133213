package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zgrigoryan/Meal-Planner/internal/services"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads a request body of at most maxBodyBytes into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(target)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeServiceError maps planner and catalog errors onto HTTP statuses.
// Anything unrecognised is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, action string, err error) {
	body := map[string]interface{}{"error": err.Error()}

	var incomplete *services.IncompletePlanError
	switch {
	case errors.As(err, &incomplete):
		missing := make([]string, 0, len(incomplete.Missing))
		for _, slot := range incomplete.Missing {
			missing = append(missing, slot.String())
		}
		body["missing"] = missing
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrInvalidSelection):
		writeJSON(w, http.StatusBadRequest, body)
	case errors.Is(err, services.ErrCannotPlan), errors.Is(err, services.ErrNotPlanning),
		errors.Is(err, services.ErrNoPlan), errors.Is(err, services.ErrNotFound):
		writeJSON(w, http.StatusConflict, body)
	default:
		slog.Error(action, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed " + action})
	}
}
