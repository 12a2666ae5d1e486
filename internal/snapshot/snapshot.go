// Package snapshot produces and consumes the portable backup document
// holding the entire ledger and the calorie goal.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"mealtrack/internal/core"
)

// ErrInvalidDocument marks a snapshot that cannot be imported. Import is
// all-or-nothing: a document that fails validation leaves the ledger
// untouched.
var ErrInvalidDocument = errors.New("invalid snapshot document")

// Document is the export format: exactly two top-level fields.
type Document struct {
	MealsByDate map[core.Day][]core.MealRecord `json:"mealsByDate"`
	Goal        int                            `json:"goal"`
}

// Imported is the result of parsing a snapshot. Either part may be absent
// from the document; the flags tell the caller what to keep from its prior
// state.
type Imported struct {
	MealsByDate map[core.Day][]core.MealRecord
	HasMeals    bool
	Goal        int
	HasGoal     bool
}

// Export serializes the ledger and goal into a standalone document suitable
// for download as a file.
func Export(meals map[core.Day][]core.MealRecord, goal int) ([]byte, error) {
	if meals == nil {
		meals = map[core.Day][]core.MealRecord{}
	}
	data, err := json.MarshalIndent(Document{MealsByDate: meals, Goal: goal}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Import parses and validates a snapshot document. Malformed JSON, unknown
// slots, broken date keys, non-finite numbers or duplicate meal ids reject
// the whole document.
func Import(data []byte) (Imported, error) {
	var doc struct {
		MealsByDate *map[string][]core.MealRecord `json:"mealsByDate"`
		Goal        *int                          `json:"goal"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return Imported{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var imp Imported
	if doc.MealsByDate != nil {
		meals, err := validateLedger(*doc.MealsByDate)
		if err != nil {
			return Imported{}, err
		}
		imp.MealsByDate = meals
		imp.HasMeals = true
	}
	if doc.Goal != nil {
		if *doc.Goal < 0 {
			return Imported{}, fmt.Errorf("%w: negative goal", ErrInvalidDocument)
		}
		imp.Goal = *doc.Goal
		imp.HasGoal = true
	}
	return imp, nil
}

func validateLedger(raw map[string][]core.MealRecord) (map[core.Day][]core.MealRecord, error) {
	out := make(map[core.Day][]core.MealRecord, len(raw))
	seen := make(map[string]struct{})
	for key, meals := range raw {
		day, err := core.ParseDay(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		for _, m := range meals {
			if err := m.Validate(); err != nil {
				return nil, fmt.Errorf("%w: meal %q on %s: %v", ErrInvalidDocument, m.ID, day, err)
			}
			if _, dup := seen[m.ID]; dup {
				return nil, fmt.Errorf("%w: duplicate meal id %q", ErrInvalidDocument, m.ID)
			}
			seen[m.ID] = struct{}{}
		}
		if meals == nil {
			meals = []core.MealRecord{}
		}
		out[day] = meals
	}
	return out, nil
}
