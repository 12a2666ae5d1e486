package core

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Atwater kcal-per-gram factors used by auto-calculate mode.
const (
	KcalPerGramProtein = 4
	KcalPerGramCarbs   = 4
	KcalPerGramFat     = 9
)

// MealInput is the raw user input for a meal. Numeric fields arrive as text
// (form or JSON) and are coerced; anything unparseable counts as zero.
type MealInput struct {
	Name          string
	Calories      string
	Protein       string
	Carbs         string
	Fat           string
	Slot          string
	AutoCalculate bool
}

// NewMeal builds a validated MealRecord from raw input.
//
// The input is rejected when the name is empty or, outside auto-calculate
// mode, when no calorie value was supplied at all. With auto-calculate on,
// calories are derived from the macros and any supplied value is ignored.
func NewMeal(in MealInput) (MealRecord, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return MealRecord{}, ErrEmptyName
	}
	if !in.AutoCalculate && strings.TrimSpace(in.Calories) == "" {
		return MealRecord{}, ErrNoCalories
	}
	slot, err := ParseSlot(in.Slot)
	if err != nil {
		return MealRecord{}, err
	}

	protein := coerce(in.Protein)
	carbs := coerce(in.Carbs)
	fat := coerce(in.Fat)
	calories := coerce(in.Calories)
	if in.AutoCalculate {
		calories = protein*KcalPerGramProtein + carbs*KcalPerGramCarbs + fat*KcalPerGramFat
	}

	return MealRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Calories:  calories,
		Protein:   protein,
		Carbs:     carbs,
		Fat:       fat,
		Slot:      slot,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Duplicate clones a record under a fresh id and creation timestamp.
func Duplicate(m MealRecord) MealRecord {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
	return m
}

// coerce normalizes raw numeric text: unparseable, negative or non-finite
// input becomes 0, so partial meal data is still recorded.
func coerce(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
