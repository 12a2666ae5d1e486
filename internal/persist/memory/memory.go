// Package memory provides an in-memory persistence adapter, used as a test
// double and as the ephemeral backend when durability is switched off.
package memory

import (
	"context"
	"sync"

	"mealtrack/internal/core"
	"mealtrack/internal/persist"
)

type Store struct {
	mu    sync.Mutex
	state persist.State
	saves int
}

func New() *Store {
	return &Store{state: persist.DefaultState()}
}

// Seed replaces the stored state, for tests that need a warm start.
func (s *Store) Seed(st persist.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = clone(st)
}

// Load returns a copy of the stored state.
func (s *Store) Load(_ context.Context) persist.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.state)
}

// Save stores a copy of the given state.
func (s *Store) Save(_ context.Context, st persist.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = clone(st)
	s.saves++
	return nil
}

// Saves reports how many times Save has been called.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

func clone(st persist.State) persist.State {
	out := persist.State{
		MealsByDate: make(map[core.Day][]core.MealRecord, len(st.MealsByDate)),
		Goal:        st.Goal,
	}
	for day, meals := range st.MealsByDate {
		out.MealsByDate[day] = append([]core.MealRecord{}, meals...)
	}
	return out
}
