package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"mealtrack/internal/core"
	"mealtrack/internal/ledger"
	"mealtrack/internal/snapshot"
)

// ErrMealNotFound is returned when a duplicate request names an unknown id.
var ErrMealNotFound = errors.New("meal not found")

// FlushRequester is the hook every mutation pulls after the in-memory state
// has changed. Implementations must not block.
type FlushRequester interface {
	Request()
}

// MealService orchestrates ledger mutations: validate, mutate the store
// synchronously, then request an asynchronous persistence flush. The flush
// never fails the operation; the ledger in memory is the source of truth.
type MealService struct {
	store   *ledger.Store
	flusher FlushRequester
}

func NewMealService(store *ledger.Store, flusher FlushRequester) *MealService {
	return &MealService{
		store:   store,
		flusher: flusher,
	}
}

// AddMeal builds a record from raw input and inserts it at the head of the
// day. Invalid input rejects the add before any mutation.
func (s *MealService) AddMeal(ctx context.Context, day core.Day, in core.MealInput) (core.MealRecord, error) {
	rec, err := core.NewMeal(in)
	if err != nil {
		return core.MealRecord{}, fmt.Errorf("create meal: %w", err)
	}

	s.store.AddMeal(day, rec)
	s.requestFlush(ctx)

	slog.InfoContext(ctx, "Meal added",
		"id", rec.ID,
		"day", day,
		"name", rec.Name,
		"slot", rec.Slot,
		"calories", rec.Calories)
	return rec, nil
}

// DeleteMeal removes a record by id; deleting an unknown id is a no-op.
func (s *MealService) DeleteMeal(ctx context.Context, day core.Day, id string) {
	if removed := s.store.DeleteMeal(day, id); !removed {
		slog.DebugContext(ctx, "Delete skipped, meal not present", "id", id, "day", day)
		return
	}
	s.requestFlush(ctx)
	slog.InfoContext(ctx, "Meal deleted", "id", id, "day", day)
}

// UpsertMeal replaces the record with a matching id in place, or inserts at
// the head when the id is new. The record must already be factory-shaped.
// An insert reusing an id from another day is rejected before any mutation.
func (s *MealService) UpsertMeal(ctx context.Context, day core.Day, rec core.MealRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("upsert meal: %w", err)
	}

	replaced, err := s.store.UpsertMeal(day, rec)
	if err != nil {
		return fmt.Errorf("upsert meal: %w", err)
	}
	s.requestFlush(ctx)

	slog.InfoContext(ctx, "Meal upserted", "id", rec.ID, "day", day, "replaced", replaced)
	return nil
}

// DuplicateMeal clones an existing record under a fresh id and inserts the
// clone at the head of the same day.
func (s *MealService) DuplicateMeal(ctx context.Context, day core.Day, id string) (core.MealRecord, error) {
	src, ok := s.store.Meal(day, id)
	if !ok {
		return core.MealRecord{}, fmt.Errorf("duplicate meal %q on %s: %w", id, day, ErrMealNotFound)
	}

	clone := core.Duplicate(src)
	if _, err := s.store.UpsertMeal(day, clone); err != nil {
		return core.MealRecord{}, fmt.Errorf("duplicate meal: %w", err)
	}
	s.requestFlush(ctx)

	slog.InfoContext(ctx, "Meal duplicated", "source_id", id, "id", clone.ID, "day", day)
	return clone, nil
}

// ClearDay destroys all records for the date. Confirmation is the caller's
// responsibility.
func (s *MealService) ClearDay(ctx context.Context, day core.Day) {
	s.store.ClearDay(day)
	s.requestFlush(ctx)
	slog.InfoContext(ctx, "Day cleared", "day", day)
}

// CopyFromPreviousDay clones the previous day's meals onto the given day.
func (s *MealService) CopyFromPreviousDay(ctx context.Context, day core.Day) (int, error) {
	copied, err := s.store.CopyFromPreviousDay(day)
	if err != nil {
		return 0, err
	}
	s.requestFlush(ctx)
	slog.InfoContext(ctx, "Previous day copied", "day", day, "copied", copied)
	return copied, nil
}

// SetGoal replaces the calorie goal, clamping negatives to zero.
func (s *MealService) SetGoal(ctx context.Context, goal int) {
	s.store.SetGoal(goal)
	s.requestFlush(ctx)
	slog.InfoContext(ctx, "Goal updated", "goal", s.store.Goal())
}

func (s *MealService) Goal() int {
	return s.store.Goal()
}

// Meals returns the day's ordered sequence, most recent first.
func (s *MealService) Meals(day core.Day) []core.MealRecord {
	return s.store.Meals(day)
}

// Meal looks up a single record on the given day.
func (s *MealService) Meal(day core.Day, id string) (core.MealRecord, bool) {
	return s.store.Meal(day, id)
}

// Totals recomputes the day's summary on every call.
func (s *MealService) Totals(day core.Day) core.DayTotals {
	return core.Totals(s.store.Meals(day))
}

// GroupBySlot partitions the day's meals into the four fixed slots.
func (s *MealService) GroupBySlot(day core.Day) map[core.Slot][]core.MealRecord {
	return core.GroupBySlot(s.store.Meals(day))
}

// ExportSnapshot produces the portable backup document.
func (s *MealService) ExportSnapshot() ([]byte, error) {
	meals, goal := s.store.Snapshot()
	return snapshot.Export(meals, goal)
}

// ImportSnapshot parses and applies a backup document atomically. A field
// missing from the document keeps its prior value; an invalid document
// mutates nothing.
func (s *MealService) ImportSnapshot(ctx context.Context, data []byte) error {
	imp, err := snapshot.Import(data)
	if err != nil {
		return err
	}

	s.store.Import(imp.MealsByDate, imp.HasMeals, imp.Goal, imp.HasGoal)
	s.requestFlush(ctx)

	slog.InfoContext(ctx, "Snapshot imported",
		"days", len(imp.MealsByDate),
		"has_meals", imp.HasMeals,
		"has_goal", imp.HasGoal)
	return nil
}

func (s *MealService) requestFlush(ctx context.Context) {
	if s.flusher == nil {
		slog.WarnContext(ctx, "No flusher configured, skipping persistence flush")
		return
	}
	s.flusher.Request()
}
