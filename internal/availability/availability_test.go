package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/pkg/types"
)

// 2025-10-16 is a Thursday
var testDate = time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2025, 10, 16, hour, min, 0, 0, time.UTC)
}

func businessDay(weekday domain.Weekday, open, close string) *domain.BusinessDay {
	return &domain.BusinessDay{
		TenantID:  1,
		Weekday:   weekday,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
}

func defaultParams() Params {
	return Params{
		Date:            testDate,
		DurationMinutes: 30,
		Day:             businessDay(domain.Thursday, "09:00", "18:00"),
	}
}

func TestGenerateSlots_FullOpenDay(t *testing.T) {
	slots := GenerateSlots(defaultParams())

	require.Len(t, slots, 18)
	assert.Equal(t, at(9, 0), slots[0].StartsAt)
	assert.Equal(t, at(9, 30), slots[0].EndsAt)
	assert.Equal(t, "09:00", slots[0].Label)
	assert.Equal(t, at(17, 30), slots[17].StartsAt)
	assert.Equal(t, at(18, 0), slots[17].EndsAt)
}

func TestGenerateSlots_SlotMayEndExactlyAtClose(t *testing.T) {
	p := defaultParams()
	p.Day = businessDay(domain.Thursday, "17:00", "18:00")

	slots := GenerateSlots(p)

	require.Len(t, slots, 2)
	assert.Equal(t, at(18, 0), slots[1].EndsAt)
}

func TestGenerateSlots_DurationDoesNotFit(t *testing.T) {
	p := defaultParams()
	p.Day = businessDay(domain.Thursday, "09:00", "09:20")

	assert.Empty(t, GenerateSlots(p))
}

func TestGenerateSlots_BusyIntervalExcludesOverlappingCandidates(t *testing.T) {
	p := defaultParams()
	p.Busy = []Interval{{Start: at(12, 0), End: at(13, 0)}}

	slots := GenerateSlots(p)

	// 18 кандидатов минус 12:00 и 12:30; граничащие 11:30-12:00 и
	// 13:00-13:30 остаются
	require.Len(t, slots, 16)

	starts := make(map[string]bool)
	for _, s := range slots {
		starts[s.Label] = true
	}
	assert.True(t, starts["11:30"])
	assert.True(t, starts["13:00"])
	assert.False(t, starts["12:00"])
	assert.False(t, starts["12:30"])
}

func TestGenerateSlots_TouchingIntervalsDoNotOverlap(t *testing.T) {
	p := defaultParams()
	// Занятость заканчивается ровно в 09:30 - слот 09:30 должен остаться
	p.Busy = []Interval{{Start: at(9, 0), End: at(9, 30)}}

	slots := GenerateSlots(p)

	require.NotEmpty(t, slots)
	assert.Equal(t, at(9, 30), slots[0].StartsAt)
}

func TestGenerateSlots_BreakAppliesOnlyToMatchingWeekday(t *testing.T) {
	lunchBreak := func(weekday domain.Weekday) []domain.BreakWindow {
		return []domain.BreakWindow{{
			Weekday:   weekday,
			StartTime: "12:00",
			EndTime:   "13:00",
		}}
	}

	p := defaultParams()
	p.Breaks = lunchBreak(domain.Wednesday)
	assert.Len(t, GenerateSlots(p), 18, "break for another weekday must have no effect")

	p.Breaks = lunchBreak(domain.Thursday)
	assert.Len(t, GenerateSlots(p), 16, "break for the date's weekday must exclude overlapping candidates")
}

func TestGenerateSlots_TimeOffCoveringFullDay(t *testing.T) {
	p := defaultParams()
	p.TimeOff = []domain.TimeOffWindow{{StartsAt: at(9, 0), EndsAt: at(18, 0)}}

	assert.Empty(t, GenerateSlots(p))
}

func TestGenerateSlots_TimeOffPartial(t *testing.T) {
	p := defaultParams()
	p.TimeOff = []domain.TimeOffWindow{{StartsAt: at(9, 0), EndsAt: at(12, 0)}}

	slots := GenerateSlots(p)

	require.Len(t, slots, 12)
	assert.Equal(t, at(12, 0), slots[0].StartsAt)
}

func TestGenerateSlots_BlockPastSlots(t *testing.T) {
	now := at(14, 0)

	p := defaultParams()
	p.BlockPastSlots = true
	p.Now = now

	slots := GenerateSlots(p)

	require.Len(t, slots, 8)
	assert.Equal(t, at(14, 0), slots[0].StartsAt)

	// Админка видит весь день
	p.BlockPastSlots = false
	assert.Len(t, GenerateSlots(p), 18)
}

func TestGenerateSlots_InvalidInputsFailOpenToEmpty(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"no business day", func(p *Params) { p.Day = nil }},
		{"zero duration", func(p *Params) { p.DurationMinutes = 0 }},
		{"negative duration", func(p *Params) { p.DurationMinutes = -15 }},
		{"close before open", func(p *Params) { p.Day = businessDay(domain.Thursday, "10:00", "09:00") }},
		{"missing open time", func(p *Params) { p.Day = businessDay(domain.Thursday, "", "18:00") }},
		{"missing close time", func(p *Params) { p.Day = businessDay(domain.Thursday, "09:00", "") }},
		{"business day for another weekday", func(p *Params) { p.Day = businessDay(domain.Wednesday, "09:00", "18:00") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := defaultParams()
			tt.mutate(&p)
			assert.Empty(t, GenerateSlots(p))
		})
	}
}

func TestGenerateSlots_CustomStepProducesOverlappingCandidates(t *testing.T) {
	p := defaultParams()
	p.Day = businessDay(domain.Thursday, "09:00", "10:00")
	p.StepMinutes = 15

	slots := GenerateSlots(p)

	// 09:00, 09:15, 09:30 - кандидаты могут пересекаться между собой
	require.Len(t, slots, 3)
	assert.Equal(t, "09:15", slots[1].Label)
}

func TestGenerateSlots_StepBelowFloorIsRaised(t *testing.T) {
	p := defaultParams()
	p.Day = businessDay(domain.Thursday, "09:00", "10:00")
	p.StepMinutes = 1

	slots := GenerateSlots(p)

	// Шаг поднимается до 5 минут: 09:00, 09:05, ..., 09:30
	require.Len(t, slots, 7)
	assert.Equal(t, "09:05", slots[1].Label)
}

func TestGenerateSlots_Properties(t *testing.T) {
	p := defaultParams()
	p.StepMinutes = 15
	p.Breaks = []domain.BreakWindow{{Weekday: domain.Thursday, StartTime: "13:00", EndTime: "14:00"}}
	p.TimeOff = []domain.TimeOffWindow{{StartsAt: at(9, 0), EndsAt: at(10, 0)}}
	p.Busy = []Interval{
		{Start: at(11, 0), End: at(11, 30)},
		{Start: at(16, 45), End: at(17, 15)},
	}

	slots := GenerateSlots(p)
	require.NotEmpty(t, slots)

	dayStart := at(9, 0)
	dayEnd := at(18, 0)
	duration := 30 * time.Minute

	blocked := append([]Interval{
		{Start: at(13, 0), End: at(14, 0)},
		{Start: at(9, 0), End: at(10, 0)},
	}, p.Busy...)

	for i, s := range slots {
		assert.Equal(t, duration, s.Duration(), "slot %d duration", i)
		assert.False(t, s.StartsAt.Before(dayStart), "slot %d starts before open", i)
		assert.False(t, s.EndsAt.After(dayEnd), "slot %d ends after close", i)

		if i > 0 {
			assert.True(t, slots[i-1].StartsAt.Before(s.StartsAt), "slots must be in ascending order")
		}

		slot := Interval{Start: s.StartsAt, End: s.EndsAt}
		for _, b := range blocked {
			assert.False(t, slot.Overlaps(b), "slot %s overlaps blocked %v", s.Label, b)
		}
	}
}

func TestGenerateSlots_DateTimeOfDayIgnored(t *testing.T) {
	p := defaultParams()
	p.Date = at(15, 42) // компонент времени не должен влиять на результат

	slots := GenerateSlots(p)

	require.Len(t, slots, 18)
	assert.Equal(t, at(9, 0), slots[0].StartsAt)
}

func TestIntervalOverlaps(t *testing.T) {
	slot := Interval{Start: at(11, 30), End: at(12, 0)}

	assert.True(t, slot.Overlaps(Interval{Start: at(11, 20), End: at(11, 40)}))
	assert.True(t, slot.Overlaps(Interval{Start: at(11, 0), End: at(13, 0)}))
	assert.False(t, slot.Overlaps(Interval{Start: at(11, 0), End: at(11, 30)}), "touching start boundary")
	assert.False(t, slot.Overlaps(Interval{Start: at(12, 0), End: at(12, 30)}), "touching end boundary")
}

func TestBlockedIntervals_FiltersBreaksByWeekday(t *testing.T) {
	breaks := []domain.BreakWindow{
		{Weekday: domain.Thursday, StartTime: "12:00", EndTime: "13:00"},
		{Weekday: domain.Friday, StartTime: "12:00", EndTime: "13:00"},
	}

	blocked := BlockedIntervals(testDate, breaks, nil, nil)

	require.Len(t, blocked, 1)
	assert.Equal(t, at(12, 0), blocked[0].Start)
	assert.Equal(t, at(13, 0), blocked[0].End)
}
