package core

import "testing"

func sampleMeals(t *testing.T) []MealRecord {
	t.Helper()
	oats, err := NewMeal(MealInput{Name: "Oats", Calories: "350", Protein: "12", Carbs: "60", Fat: "6", Slot: "breakfast"})
	if err != nil {
		t.Fatalf("oats: %v", err)
	}
	shake, err := NewMeal(MealInput{Name: "Shake", Calories: "180", Protein: "30", Carbs: "6", Fat: "3", Slot: "snack"})
	if err != nil {
		t.Fatalf("shake: %v", err)
	}
	// Head insertion order: most recent first.
	return []MealRecord{shake, oats}
}

func TestTotals(t *testing.T) {
	got := Totals(sampleMeals(t))
	want := DayTotals{Calories: 530, Protein: 42, Carbs: 66, Fat: 9, Count: 2}
	if got != want {
		t.Fatalf("Totals() = %+v, want %+v", got, want)
	}
}

func TestTotalsEmpty(t *testing.T) {
	if got := Totals(nil); got != (DayTotals{}) {
		t.Fatalf("Totals(nil) = %+v, want all zeros", got)
	}
}

func TestGroupBySlot(t *testing.T) {
	meals := sampleMeals(t)
	grouped := GroupBySlot(meals)

	if len(grouped) != len(Slots) {
		t.Fatalf("expected %d slots, got %d", len(Slots), len(grouped))
	}
	for _, s := range Slots {
		if _, ok := grouped[s]; !ok {
			t.Errorf("slot %q absent; empty slots must be present", s)
		}
	}
	if n := len(grouped[Lunch]) + len(grouped[Dinner]); n != 0 {
		t.Errorf("expected empty lunch/dinner, got %d records", n)
	}

	// The concatenation in slot order is a permutation of the input with
	// relative order preserved.
	var flat []MealRecord
	for _, s := range Slots {
		flat = append(flat, grouped[s]...)
	}
	if len(flat) != len(meals) {
		t.Fatalf("partition lost records: %d vs %d", len(flat), len(meals))
	}
	if flat[0].Name != "Oats" || flat[1].Name != "Shake" {
		t.Errorf("slot order broken: %q, %q", flat[0].Name, flat[1].Name)
	}
}

func TestGroupBySlotPreservesOrderWithinSlot(t *testing.T) {
	var meals []MealRecord
	for _, name := range []string{"third", "second", "first"} {
		m, err := NewMeal(MealInput{Name: name, Calories: "100", Slot: "snack"})
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		meals = append([]MealRecord{m}, meals...)
	}

	snacks := GroupBySlot(meals)[Snack]
	if len(snacks) != 3 {
		t.Fatalf("expected 3 snacks, got %d", len(snacks))
	}
	for i, want := range []string{"first", "second", "third"} {
		if snacks[i].Name != want {
			t.Errorf("snacks[%d] = %q, want %q", i, snacks[i].Name, want)
		}
	}
}

func TestRemaining(t *testing.T) {
	cases := []struct {
		calories float64
		goal     int
		want     float64
	}{
		{530, 2200, 1670},
		{2200, 2200, 0},
		{2500, 2200, 0}, // never negative
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Remaining(DayTotals{Calories: tc.calories}, tc.goal); got != tc.want {
			t.Errorf("Remaining(%v, %d) = %v, want %v", tc.calories, tc.goal, got, tc.want)
		}
	}
}

func TestMacroPercent(t *testing.T) {
	cases := []struct {
		value, goal, want float64
	}{
		{70, 140, 50},
		{140, 140, 100},
		{300, 140, 100}, // clamped on overshoot
		{0, 140, 0},
		{50, 0, 0}, // degenerate goal
	}
	for _, tc := range cases {
		if got := MacroPercent(tc.value, tc.goal); got != tc.want {
			t.Errorf("MacroPercent(%v, %v) = %v, want %v", tc.value, tc.goal, got, tc.want)
		}
	}
}
