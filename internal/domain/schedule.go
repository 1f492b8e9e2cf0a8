package domain

import (
	"time"

	"github.com/slotline/availability-service/pkg/types"
)

// BusinessDay is the open/close window for one weekday.
// A tenant has at most one BusinessDay per weekday; absence means closed.
type BusinessDay struct {
	ID        int64
	TenantID  int64
	Weekday   Weekday
	OpenTime  types.TimeString
	CloseTime types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasHours returns true if both bounds are present and the window is not inverted.
func (d *BusinessDay) HasHours() bool {
	return !d.OpenTime.IsZero() && !d.CloseTime.IsZero() && d.OpenTime.IsBefore(d.CloseTime)
}

// BreakWindow is a recurring unavailable sub-interval within a business day,
// e.g. a lunch break. Multiple breaks per weekday are allowed.
type BreakWindow struct {
	ID        int64
	TenantID  int64
	Weekday   Weekday
	StartTime types.TimeString
	EndTime   types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TimeOffWindow is an absolute-dated unavailable interval (vacation,
// holiday closure), independent of weekday.
type TimeOffWindow struct {
	ID        int64
	TenantID  int64
	StartsAt  time.Time
	EndsAt    time.Time
	Reason    *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WeekSchedule is a tenant's full recurring schedule: business hours and
// breaks for every configured weekday.
type WeekSchedule struct {
	TenantID int64
	Days     []BusinessDay
	Breaks   []BreakWindow
}

// DayFor returns the business day for the given weekday, or nil if the
// tenant is closed on that day.
func (s *WeekSchedule) DayFor(weekday Weekday) *BusinessDay {
	for i := range s.Days {
		if s.Days[i].Weekday == weekday {
			return &s.Days[i]
		}
	}
	return nil
}

// BreaksFor returns the breaks configured for the given weekday.
func (s *WeekSchedule) BreaksFor(weekday Weekday) []BreakWindow {
	breaks := make([]BreakWindow, 0)
	for _, b := range s.Breaks {
		if b.Weekday == weekday {
			breaks = append(breaks, b)
		}
	}
	return breaks
}
