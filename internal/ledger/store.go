package ledger

import (
	"errors"
	"fmt"
	"sync"

	"mealtrack/internal/core"
)

// ErrNothingToCopy is returned by CopyFromPreviousDay when the previous day
// holds no meals.
var ErrNothingToCopy = errors.New("nothing to copy")

// ErrDuplicateID is returned by UpsertMeal when an insert would reuse an id
// that already lives on another day. Ids are unique across the whole ledger.
var ErrDuplicateID = errors.New("meal id already in use")

// Store owns the date-keyed meal ledger and the calorie goal. It is the only
// writer of that state; every mutation runs to completion under the lock, so
// no operation can observe a partially-mutated ledger.
//
// The store itself is persistence-agnostic: callers (the service layer)
// request a flush after each mutation.
type Store struct {
	mu    sync.RWMutex
	meals map[core.Day][]core.MealRecord
	goal  int
}

func NewStore() *Store {
	return &Store{
		meals: make(map[core.Day][]core.MealRecord),
		goal:  core.DefaultGoal,
	}
}

// Reset replaces the whole ledger and goal, cloning the input. Used when
// loading persisted state at startup.
func (s *Store) Reset(meals map[core.Day][]core.MealRecord, goal int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals = cloneLedger(meals)
	s.goal = clampGoal(goal)
}

// AddMeal inserts the record at the head of the day's sequence, creating the
// day entry if absent.
func (s *Store) AddMeal(day core.Day, m core.MealRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals[day] = append([]core.MealRecord{m}, s.meals[day]...)
}

// DeleteMeal removes the record with the given id from the day. It reports
// whether a record was removed; deleting an unknown id is a no-op. A day
// emptied by deletion is dropped from the ledger (only an explicit ClearDay
// stores an empty sequence).
func (s *Store) DeleteMeal(day core.Day, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	meals, ok := s.meals[day]
	if !ok {
		return false
	}
	for i, m := range meals {
		if m.ID == id {
			meals = append(meals[:i], meals[i+1:]...)
			if len(meals) == 0 {
				delete(s.meals, day)
			} else {
				s.meals[day] = meals
			}
			return true
		}
	}
	return false
}

// UpsertMeal replaces the record with a matching id in place, preserving its
// position; when no record matches it inserts at the head. It reports whether
// an existing record was replaced. Edits reuse the original id; duplicates
// always carry a fresh id and therefore insert.
//
// Ids are unique across the whole ledger: an insert whose id already lives on
// a different day is rejected with ErrDuplicateID, leaving the ledger
// untouched.
func (s *Store) UpsertMeal(day core.Day, m core.MealRecord) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meals := s.meals[day]
	for i := range meals {
		if meals[i].ID == m.ID {
			meals[i] = m
			return true, nil
		}
	}
	for other, records := range s.meals {
		if other == day {
			continue
		}
		for _, r := range records {
			if r.ID == m.ID {
				return false, fmt.Errorf("insert %q on %s: id belongs to %s: %w", m.ID, day, other, ErrDuplicateID)
			}
		}
	}
	s.meals[day] = append([]core.MealRecord{m}, meals...)
	return false, nil
}

// ClearDay destroys all records for the day, storing an explicit empty
// sequence so the cleared day survives persistence.
func (s *Store) ClearDay(day core.Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meals[day] = []core.MealRecord{}
}

// CopyFromPreviousDay clones every meal of the preceding calendar day and
// prepends the clones, in their original order, to the given day. Records
// already present on the day are preserved. Returns the number of copied
// meals, or ErrNothingToCopy without mutating anything when the previous day
// is empty.
func (s *Store) CopyFromPreviousDay(day core.Day) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.meals[day.Prev()]
	if len(src) == 0 {
		return 0, ErrNothingToCopy
	}
	clones := make([]core.MealRecord, len(src))
	for i, m := range src {
		clones[i] = core.Duplicate(m)
	}
	s.meals[day] = append(clones, s.meals[day]...)
	return len(clones), nil
}

// SetGoal replaces the calorie goal, clamping negatives to zero.
func (s *Store) SetGoal(v int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = clampGoal(v)
}

func (s *Store) Goal() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.goal
}

// Meals returns a copy of the day's ordered sequence.
func (s *Store) Meals(day core.Day) []core.MealRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.MealRecord(nil), s.meals[day]...)
}

// Meal looks up a single record on the given day.
func (s *Store) Meal(day core.Day, id string) (core.MealRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, m := range s.meals[day] {
		if m.ID == id {
			return m, true
		}
	}
	return core.MealRecord{}, false
}

// Snapshot returns a deep copy of the ledger and the goal, safe to hand to
// the persistence layer while mutations continue.
func (s *Store) Snapshot() (map[core.Day][]core.MealRecord, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneLedger(s.meals), s.goal
}

// Import replaces the ledger and/or goal from a snapshot document. Either
// part may be absent from the document, in which case the prior value is
// kept.
func (s *Store) Import(meals map[core.Day][]core.MealRecord, hasMeals bool, goal int, hasGoal bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if hasMeals {
		s.meals = cloneLedger(meals)
	}
	if hasGoal {
		s.goal = clampGoal(goal)
	}
}

func cloneLedger(in map[core.Day][]core.MealRecord) map[core.Day][]core.MealRecord {
	out := make(map[core.Day][]core.MealRecord, len(in))
	for day, meals := range in {
		out[day] = append([]core.MealRecord{}, meals...)
	}
	return out
}

func clampGoal(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
