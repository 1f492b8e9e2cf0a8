package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayFromTime(t *testing.T) {
	tests := []struct {
		native   time.Weekday
		expected Weekday
	}{
		{time.Monday, Monday},
		{time.Tuesday, Tuesday},
		{time.Wednesday, Wednesday},
		{time.Thursday, Thursday},
		{time.Friday, Friday},
		{time.Saturday, Saturday},
		{time.Sunday, Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.native.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, WeekdayFromTime(tt.native))
		})
	}
}

func TestWeekdayFromTime_SundayRemap(t *testing.T) {
	// time.Sunday = 0 в нативной нумерации, у нас воскресенье последнее
	assert.Equal(t, Sunday, WeekdayFromTime(time.Sunday))
	assert.Equal(t, 6, int(Sunday))
	assert.Equal(t, 0, int(Monday))
}

func TestWeekdayOfDate(t *testing.T) {
	// 2025-10-13 понедельник, 2025-10-19 воскресенье
	monday := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		date := monday.AddDate(0, 0, i)
		assert.Equal(t, Weekday(i), WeekdayOfDate(date), date.Format("2006-01-02"))
	}
}

func TestWeekdayRoundTrip(t *testing.T) {
	for w := Monday; w <= Sunday; w++ {
		assert.Equal(t, w, WeekdayFromTime(w.ToTime()))
	}
}

func TestWeekdayIsValid(t *testing.T) {
	assert.True(t, Monday.IsValid())
	assert.True(t, Sunday.IsValid())
	assert.False(t, Weekday(-1).IsValid())
	assert.False(t, Weekday(7).IsValid())
}
