package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekScheduleDayFor(t *testing.T) {
	schedule := &WeekSchedule{
		TenantID: 1,
		Days: []BusinessDay{
			{Weekday: Monday, OpenTime: "09:00", CloseTime: "18:00"},
			{Weekday: Saturday, OpenTime: "10:00", CloseTime: "14:00"},
		},
	}

	day := schedule.DayFor(Saturday)
	require.NotNil(t, day)
	assert.Equal(t, "10:00", day.OpenTime.String())

	assert.Nil(t, schedule.DayFor(Sunday), "day without hours means closed")
}

func TestWeekScheduleBreaksFor(t *testing.T) {
	schedule := &WeekSchedule{
		TenantID: 1,
		Breaks: []BreakWindow{
			{Weekday: Monday, StartTime: "12:00", EndTime: "13:00"},
			{Weekday: Monday, StartTime: "16:00", EndTime: "16:15"},
			{Weekday: Friday, StartTime: "12:00", EndTime: "13:00"},
		},
	}

	assert.Len(t, schedule.BreaksFor(Monday), 2)
	assert.Len(t, schedule.BreaksFor(Friday), 1)
	assert.Empty(t, schedule.BreaksFor(Sunday))
}

func TestBusinessDayHasHours(t *testing.T) {
	tests := []struct {
		name     string
		day      BusinessDay
		expected bool
	}{
		{"valid window", BusinessDay{OpenTime: "09:00", CloseTime: "18:00"}, true},
		{"missing open", BusinessDay{CloseTime: "18:00"}, false},
		{"missing close", BusinessDay{OpenTime: "09:00"}, false},
		{"inverted window", BusinessDay{OpenTime: "18:00", CloseTime: "09:00"}, false},
		{"zero-length window", BusinessDay{OpenTime: "09:00", CloseTime: "09:00"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.day.HasHours())
		})
	}
}
