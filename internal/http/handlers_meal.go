package http

import (
	"errors"
	"log/slog"
	"net/http"

	"mealtrack/internal/core"
	"mealtrack/internal/ledger"
	"mealtrack/internal/services"
)

// parseDay extracts and validates the {date} path segment, writing the error
// response itself when the key is malformed.
func parseDay(w http.ResponseWriter, r *http.Request) (core.Day, bool) {
	day, err := core.ParseDay(r.PathValue("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return day, true
}

func mealInputFromBody(r *http.Request) (core.MealInput, error) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		return core.MealInput{}, err
	}
	return core.MealInput{
		Name:          p.Get("name"),
		Calories:      p.Get("calories"),
		Protein:       p.Get("protein"),
		Carbs:         p.Get("carbs"),
		Fat:           p.Get("fat"),
		Slot:          p.Get("type"),
		AutoCalculate: p.GetBool("autoCalculate"),
	}, nil
}

func (s *Server) handleAddMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}

	input, err := mealInputFromBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	rec, err := s.svc.AddMeal(r.Context(), day, input)
	if err != nil {
		writeMealError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleUpsertMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	input, err := mealInputFromBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	rec, err := core.NewMeal(input)
	if err != nil {
		writeMealError(w, err)
		return
	}

	// Full replacement under the caller's id. An edit of an existing record
	// keeps its creation timestamp; an unknown id inserts a new record.
	rec.ID = id
	if prev, exists := s.svc.Meal(day, id); exists {
		rec.CreatedAt = prev.CreatedAt
	}

	if err := s.svc.UpsertMeal(r.Context(), day, rec); err != nil {
		if errors.Is(err, ledger.ErrDuplicateID) {
			writeError(w, http.StatusConflict, "meal id already in use on another day")
			return
		}
		writeMealError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDuplicateMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}
	id := r.PathValue("id")

	clone, err := s.svc.DuplicateMeal(r.Context(), day, id)
	if err != nil {
		if errors.Is(err, services.ErrMealNotFound) {
			writeError(w, http.StatusNotFound, "meal not found")
			return
		}
		slog.ErrorContext(r.Context(), "Duplicate meal failed", "error", err, "day", day, "id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, clone)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}

	// Deleting an absent id is a no-op by contract, so delete is always 204.
	s.svc.DeleteMeal(r.Context(), day, r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}
