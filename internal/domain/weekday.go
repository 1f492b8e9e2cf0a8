package domain

import "time"

// Weekday is the canonical day-of-week index used across storage, API and
// slot computation: Monday=0 .. Sunday=6.
//
// Go's time.Weekday is Sunday-first (Sunday=0). The remap happens here and
// only here; nothing else in the codebase converts weekday numbering.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// WeekdayFromTime converts a native time.Weekday (Sunday=0) into the
// Monday-first convention.
func WeekdayFromTime(d time.Weekday) Weekday {
	if d == time.Sunday {
		return Sunday
	}
	return Weekday(int(d) - 1)
}

// WeekdayOfDate returns the canonical weekday of a calendar date.
func WeekdayOfDate(date time.Time) Weekday {
	return WeekdayFromTime(date.Weekday())
}

// IsValid returns true if the value is within Monday..Sunday.
func (w Weekday) IsValid() bool {
	return w >= Monday && w <= Sunday
}

// ToTime converts back to the native Sunday-first time.Weekday.
func (w Weekday) ToTime() time.Weekday {
	if w == Sunday {
		return time.Sunday
	}
	return time.Weekday(int(w) + 1)
}

// String returns the English day name.
func (w Weekday) String() string {
	if !w.IsValid() {
		return "invalid"
	}
	return w.ToTime().String()
}
