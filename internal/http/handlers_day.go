package http

import (
	"errors"
	"net/http"
	"strconv"

	"mealtrack/internal/core"
	"mealtrack/internal/ledger"
)

// daySummary is the per-render payload the presentation layer reads: totals,
// remaining calories, macro progress and the slot grouping, all recomputed
// on every request.
type daySummary struct {
	Date      core.Day                        `json:"date"`
	Goal      int                             `json:"goal"`
	Totals    core.DayTotals                  `json:"totals"`
	Remaining float64                         `json:"remaining"`
	Macros    map[string]macroProgress        `json:"macros"`
	Slots     map[core.Slot][]core.MealRecord `json:"slots"`
}

type macroProgress struct {
	Grams   float64 `json:"grams"`
	Goal    float64 `json:"goal"`
	Percent float64 `json:"percent"`
}

func (s *Server) handleDaySummary(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}

	totals := s.svc.Totals(day)
	goal := s.svc.Goal()

	writeJSON(w, http.StatusOK, daySummary{
		Date:      day,
		Goal:      goal,
		Totals:    totals,
		Remaining: core.Remaining(totals, goal),
		Macros: map[string]macroProgress{
			"protein": {Grams: totals.Protein, Goal: core.ProteinGoalGrams, Percent: core.MacroPercent(totals.Protein, core.ProteinGoalGrams)},
			"carbs":   {Grams: totals.Carbs, Goal: core.CarbsGoalGrams, Percent: core.MacroPercent(totals.Carbs, core.CarbsGoalGrams)},
			"fat":     {Grams: totals.Fat, Goal: core.FatGoalGrams, Percent: core.MacroPercent(totals.Fat, core.FatGoalGrams)},
		},
		Slots: s.svc.GroupBySlot(day),
	})
}

func (s *Server) handleClearDay(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}

	// The caller is responsible for confirming this destructive action.
	s.svc.ClearDay(r.Context(), day)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleCopyPreviousDay(w http.ResponseWriter, r *http.Request) {
	day, ok := parseDay(w, r)
	if !ok {
		return
	}

	copied, err := s.svc.CopyFromPreviousDay(r.Context(), day)
	if err != nil {
		if errors.Is(err, ledger.ErrNothingToCopy) {
			writeError(w, http.StatusConflict, "nothing to copy from the previous day")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"copied": copied})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"goal": s.svc.Goal()})
}

func (s *Server) handleSetGoal(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	goal, err := strconv.Atoi(p.Get("goal"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "goal must be an integer")
		return
	}

	s.svc.SetGoal(r.Context(), goal)
	writeJSON(w, http.StatusOK, map[string]int{"goal": s.svc.Goal()})
}
