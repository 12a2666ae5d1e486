package core

// Fixed macro sub-goals in grams, independent of the calorie goal.
const (
	ProteinGoalGrams = 140
	CarbsGoalGrams   = 250
	FatGoalGrams     = 70
)

// DayTotals is the derived summary for one day's meals.
type DayTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Count    int     `json:"count"`
}

// Totals sums each nutrient field across the given meals. Day sizes are
// small, so totals are recomputed on every query instead of cached.
func Totals(meals []MealRecord) DayTotals {
	var t DayTotals
	for _, m := range meals {
		t.Calories += m.Calories
		t.Protein += m.Protein
		t.Carbs += m.Carbs
		t.Fat += m.Fat
		t.Count++
	}
	return t
}

// GroupBySlot partitions meals into the four fixed slots, preserving each
// record's relative order. Every slot is present even when empty, so callers
// can render all four sections.
func GroupBySlot(meals []MealRecord) map[Slot][]MealRecord {
	grouped := make(map[Slot][]MealRecord, len(Slots))
	for _, s := range Slots {
		grouped[s] = []MealRecord{}
	}
	for _, m := range meals {
		grouped[m.Slot] = append(grouped[m.Slot], m)
	}
	return grouped
}

// Remaining returns the calories left before the goal, never negative.
func Remaining(t DayTotals, goal int) float64 {
	r := float64(goal) - t.Calories
	if r < 0 {
		return 0
	}
	return r
}

// MacroPercent returns value as a percentage of macroGoal for progress bars,
// clamped at 100 regardless of overshoot.
func MacroPercent(value, macroGoal float64) float64 {
	if macroGoal <= 0 {
		return 0
	}
	p := value / macroGoal * 100
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}
