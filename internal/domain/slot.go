package domain

import "time"

// SlotCandidate is a bookable time interval of fixed service duration,
// produced by the availability generator. Intervals are half-open:
// [StartsAt, EndsAt).
type SlotCandidate struct {
	StartsAt time.Time
	EndsAt   time.Time
	Label    string // localized HH:MM display label
}

// Duration returns the slot length.
func (s *SlotCandidate) Duration() time.Duration {
	return s.EndsAt.Sub(s.StartsAt)
}

// StartsBefore returns true if the slot starts strictly before the given instant.
func (s *SlotCandidate) StartsBefore(t time.Time) bool {
	return s.StartsAt.Before(t)
}
