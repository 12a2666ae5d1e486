package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

const (
	Breakfast Slot = "breakfast"
	Lunch     Slot = "lunch"
	Dinner    Slot = "dinner"
	Snack     Slot = "snack"
)

// DefaultGoal is the calorie goal used until the user sets their own.
const DefaultGoal = 2200

type (
	// Slot is one of the four fixed meal categories.
	Slot string

	// MealRecord is a single logged meal. Records are immutable once created;
	// edits go through full replacement in the ledger store.
	MealRecord struct {
		ID        string    `json:"id"`
		Name      string    `json:"name"`
		Calories  float64   `json:"calories"`
		Protein   float64   `json:"protein"`
		Carbs     float64   `json:"carbs"`
		Fat       float64   `json:"fat"`
		Slot      Slot      `json:"type"`
		CreatedAt time.Time `json:"createdAt"`
	}
)

var (
	ErrEmptyName   = errors.New("empty meal name")
	ErrNoCalories  = errors.New("no calorie value")
	ErrUnknownSlot = errors.New("unknown meal slot")
	ErrEmptyID     = errors.New("empty meal id")
)

// Slots lists the fixed slots in presentation order.
var Slots = []Slot{Breakfast, Lunch, Dinner, Snack}

// ParseSlot validates a raw slot value against the fixed enumeration.
func ParseSlot(s string) (Slot, error) {
	switch Slot(strings.TrimSpace(s)) {
	case Breakfast:
		return Breakfast, nil
	case Lunch:
		return Lunch, nil
	case Dinner:
		return Dinner, nil
	case Snack:
		return Snack, nil
	}
	return "", ErrUnknownSlot
}

func (s Slot) Valid() bool {
	_, err := ParseSlot(string(s))
	return err == nil
}

func (m MealRecord) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if !m.Slot.Valid() {
		return ErrUnknownSlot
	}
	for _, v := range []float64{m.Calories, m.Protein, m.Carbs, m.Fat} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.New("nutrient value must be a finite non-negative number")
		}
	}
	return nil
}
