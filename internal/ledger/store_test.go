package ledger

import (
	"errors"
	"testing"

	"mealtrack/internal/core"
	"mealtrack/internal/snapshot"
)

func mustMeal(t *testing.T, name, slot string) core.MealRecord {
	t.Helper()
	m, err := core.NewMeal(core.MealInput{Name: name, Calories: "100", Slot: slot})
	if err != nil {
		t.Fatalf("meal %q: %v", name, err)
	}
	return m
}

const day = core.Day("2024-01-05")

func TestAddMealInsertsAtHead(t *testing.T) {
	s := NewStore()
	first := mustMeal(t, "first", "breakfast")
	second := mustMeal(t, "second", "lunch")

	s.AddMeal(day, first)
	s.AddMeal(day, second)

	meals := s.Meals(day)
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].Name != "second" || meals[1].Name != "first" {
		t.Errorf("order = [%s %s], want most-recent-first", meals[0].Name, meals[1].Name)
	}
}

func TestDeleteMeal(t *testing.T) {
	s := NewStore()
	m := mustMeal(t, "oats", "breakfast")
	other := mustMeal(t, "shake", "snack")
	s.AddMeal(day, m)
	s.AddMeal(day, other)

	if !s.DeleteMeal(day, m.ID) {
		t.Fatal("expected deletion")
	}
	if got := s.Meals(day); len(got) != 1 || got[0].ID != other.ID {
		t.Fatalf("unexpected remainder: %+v", got)
	}

	// Unknown id and unknown day are no-ops.
	if s.DeleteMeal(day, "missing") {
		t.Error("deleting unknown id must be a no-op")
	}
	if s.DeleteMeal("2030-01-01", m.ID) {
		t.Error("deleting on unknown day must be a no-op")
	}
}

func TestDeleteLastMealDropsDay(t *testing.T) {
	s := NewStore()
	m := mustMeal(t, "oats", "breakfast")
	s.AddMeal(day, m)
	s.DeleteMeal(day, m.ID)

	meals, _ := s.Snapshot()
	if _, present := meals[day]; present {
		t.Error("day emptied by deletion should be absent from the ledger")
	}
}

func TestUpsertMealReplacesInPlace(t *testing.T) {
	s := NewStore()
	a := mustMeal(t, "a", "breakfast")
	b := mustMeal(t, "b", "lunch")
	c := mustMeal(t, "c", "dinner")
	for _, m := range []core.MealRecord{a, b, c} {
		s.AddMeal(day, m)
	}
	// Order is now c, b, a.

	edited := b
	edited.Name = "b edited"
	edited.Calories = 250
	replaced, err := s.UpsertMeal(day, edited)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if !replaced {
		t.Fatal("expected in-place replacement")
	}

	meals := s.Meals(day)
	if meals[1].Name != "b edited" || meals[1].Calories != 250 {
		t.Errorf("edit did not replace in place: %+v", meals)
	}
	if meals[0].ID != c.ID || meals[2].ID != a.ID {
		t.Errorf("edit disturbed neighbors: %+v", meals)
	}
}

func TestUpsertMealNewIDInsertsAtHead(t *testing.T) {
	s := NewStore()
	orig := mustMeal(t, "oats", "breakfast")
	s.AddMeal(day, orig)

	clone := core.Duplicate(orig)
	replaced, err := s.UpsertMeal(day, clone)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if replaced {
		t.Fatal("fresh id must insert, not replace")
	}

	meals := s.Meals(day)
	if len(meals) != 2 {
		t.Fatalf("expected 2 meals, got %d", len(meals))
	}
	if meals[0].ID != clone.ID || meals[1].ID != orig.ID {
		t.Errorf("clone should sit at the head: %+v", meals)
	}
}

func TestUpsertMealRejectsIDFromAnotherDay(t *testing.T) {
	s := NewStore()
	otherDay := core.Day("2024-01-06")
	m := mustMeal(t, "oats", "breakfast")
	s.AddMeal(day, m)

	stray := m
	stray.Name = "stray"
	if _, err := s.UpsertMeal(otherDay, stray); !errors.Is(err, ErrDuplicateID) {
		t.Fatalf("expected ErrDuplicateID, got %v", err)
	}
	if got := s.Meals(otherDay); len(got) != 0 {
		t.Errorf("rejected insert must not mutate: %+v", got)
	}
	if got := s.Meals(day); len(got) != 1 || got[0].Name != "oats" {
		t.Errorf("original record touched: %+v", got)
	}

	// Every reachable ledger state keeps ids globally unique, so its own
	// export always re-imports.
	meals, goal := s.Snapshot()
	data, err := snapshot.Export(meals, goal)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := snapshot.Import(data); err != nil {
		t.Fatalf("export of a live ledger must re-import, got %v", err)
	}
}

func TestClearDay(t *testing.T) {
	s := NewStore()
	otherDay := core.Day("2024-01-06")
	s.AddMeal(day, mustMeal(t, "oats", "breakfast"))
	s.AddMeal(otherDay, mustMeal(t, "shake", "snack"))

	s.ClearDay(day)

	if got := s.Meals(day); len(got) != 0 {
		t.Fatalf("cleared day still has %d meals", len(got))
	}
	if got := s.Meals(otherDay); len(got) != 1 {
		t.Fatalf("other day touched by clear: %+v", got)
	}

	// A cleared day is stored as an explicit empty sequence, not dropped.
	meals, _ := s.Snapshot()
	if seq, present := meals[day]; !present || seq == nil || len(seq) != 0 {
		t.Errorf("cleared day should persist as an empty sequence, got %v (present=%v)", seq, present)
	}
}

func TestCopyFromPreviousDay(t *testing.T) {
	s := NewStore()
	prev := day.Prev()
	oats := mustMeal(t, "oats", "breakfast")
	shake := mustMeal(t, "shake", "snack")
	s.AddMeal(prev, oats)
	s.AddMeal(prev, shake) // prev order: shake, oats

	existing := mustMeal(t, "existing", "dinner")
	s.AddMeal(day, existing)

	copied, err := s.CopyFromPreviousDay(day)
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if copied != 2 {
		t.Fatalf("copied = %d, want 2", copied)
	}

	meals := s.Meals(day)
	if len(meals) != 3 {
		t.Fatalf("expected 3 meals, got %d", len(meals))
	}
	// Clones keep their original relative order and sit before existing
	// records.
	if meals[0].Name != "shake" || meals[1].Name != "oats" || meals[2].Name != "existing" {
		t.Errorf("unexpected order: [%s %s %s]", meals[0].Name, meals[1].Name, meals[2].Name)
	}
	// Clones carry fresh ids; the source day is untouched.
	if meals[0].ID == shake.ID || meals[1].ID == oats.ID {
		t.Error("copied meals must have fresh ids")
	}
	if got := s.Meals(prev); len(got) != 2 {
		t.Errorf("source day mutated: %+v", got)
	}
}

func TestCopyFromPreviousDayNothingToCopy(t *testing.T) {
	s := NewStore()
	s.AddMeal(day, mustMeal(t, "existing", "dinner"))

	_, err := s.CopyFromPreviousDay(day)
	if !errors.Is(err, ErrNothingToCopy) {
		t.Fatalf("expected ErrNothingToCopy, got %v", err)
	}
	if got := s.Meals(day); len(got) != 1 {
		t.Errorf("failed copy must not mutate: %+v", got)
	}

	// An explicitly cleared previous day is also empty.
	s.ClearDay(day.Prev())
	if _, err := s.CopyFromPreviousDay(day); !errors.Is(err, ErrNothingToCopy) {
		t.Fatalf("expected ErrNothingToCopy after clear, got %v", err)
	}
}

func TestSetGoal(t *testing.T) {
	s := NewStore()
	if got := s.Goal(); got != core.DefaultGoal {
		t.Fatalf("default goal = %d, want %d", got, core.DefaultGoal)
	}

	s.SetGoal(1800)
	if got := s.Goal(); got != 1800 {
		t.Errorf("goal = %d, want 1800", got)
	}

	s.SetGoal(-50)
	if got := s.Goal(); got != 0 {
		t.Errorf("negative goal should clamp to 0, got %d", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	s.AddMeal(day, mustMeal(t, "oats", "breakfast"))

	meals, _ := s.Snapshot()
	meals[day][0].Name = "tampered"
	delete(meals, day)

	if got := s.Meals(day); len(got) != 1 || got[0].Name != "oats" {
		t.Errorf("snapshot mutation leaked into the store: %+v", got)
	}
}

func TestImport(t *testing.T) {
	s := NewStore()
	s.AddMeal(day, mustMeal(t, "old", "breakfast"))
	s.SetGoal(2000)

	imported := map[core.Day][]core.MealRecord{
		"2024-02-01": {mustMeal(t, "new", "lunch")},
	}

	// Meals only: goal keeps its prior value.
	s.Import(imported, true, 0, false)
	if got := s.Meals("2024-02-01"); len(got) != 1 || got[0].Name != "new" {
		t.Fatalf("import did not replace ledger: %+v", got)
	}
	if got := s.Meals(day); len(got) != 0 {
		t.Fatalf("prior ledger should be gone: %+v", got)
	}
	if got := s.Goal(); got != 2000 {
		t.Errorf("goal = %d, want prior 2000", got)
	}

	// Goal only: ledger keeps its value.
	s.Import(nil, false, 1750, true)
	if got := s.Goal(); got != 1750 {
		t.Errorf("goal = %d, want 1750", got)
	}
	if got := s.Meals("2024-02-01"); len(got) != 1 {
		t.Errorf("ledger should be untouched: %+v", got)
	}
}
