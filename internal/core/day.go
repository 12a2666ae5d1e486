package core

import (
	"fmt"
	"time"
)

// DayFormat is the ISO calendar-date layout used for ledger keys.
const DayFormat = "2006-01-02"

// Day is a ledger date key in YYYY-MM-DD form.
type Day string

// ParseDay validates a raw date key.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q want format %q: %w", s, DayFormat, err)
	}
	// Round-trip to reject normalized-but-different inputs like 2024-1-05.
	if t.Format(DayFormat) != s {
		return "", fmt.Errorf("invalid date %q want format %q", s, DayFormat)
	}
	return Day(s), nil
}

// Today returns the current local date key.
func Today() Day {
	return Day(time.Now().Format(DayFormat))
}

// Prev returns the calendar day before d.
func (d Day) Prev() Day {
	t, err := time.Parse(DayFormat, string(d))
	if err != nil {
		return d
	}
	return Day(t.AddDate(0, 0, -1).Format(DayFormat))
}

func (d Day) String() string { return string(d) }
