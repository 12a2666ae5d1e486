// Package persist defines the ports for durable ledger storage.
package persist

import (
	"context"

	"mealtrack/internal/core"
)

// State is the pair of values kept in durable storage: the whole ledger and
// the calorie goal.
type State struct {
	MealsByDate map[core.Day][]core.MealRecord
	Goal        int
}

// DefaultState is the valid cold-start state used whenever durable storage
// is missing or unreadable.
func DefaultState() State {
	return State{
		MealsByDate: map[core.Day][]core.MealRecord{},
		Goal:        core.DefaultGoal,
	}
}

type (
	// Loader reads persisted state. Implementations never fail the caller:
	// on any read or parse problem they log and return DefaultState, since
	// the in-memory ledger is the authoritative state for the session.
	Loader interface {
		Load(ctx context.Context) State
	}

	// Saver writes the full state. Errors are reported so the flush worker
	// can log them, but a failed save is never fatal.
	Saver interface {
		Save(ctx context.Context, st State) error
	}

	// Store is a full persistence adapter.
	Store interface {
		Loader
		Saver
	}
)
