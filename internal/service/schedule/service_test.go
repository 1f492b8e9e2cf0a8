package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/slotline/availability-service/internal/domain"
	"github.com/slotline/availability-service/pkg/types"
)

func day(weekday domain.Weekday, open, close string) domain.BusinessDay {
	return domain.BusinessDay{
		TenantID:  1,
		Weekday:   weekday,
		OpenTime:  types.TimeString(open),
		CloseTime: types.TimeString(close),
	}
}

func breakWindow(weekday domain.Weekday, start, end string) domain.BreakWindow {
	return domain.BreakWindow{
		TenantID:  1,
		Weekday:   weekday,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func TestValidateSchedule_Valid(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "09:00", "18:00"),
		day(domain.Tuesday, "10:00", "16:00"),
	}
	breaks := []domain.BreakWindow{
		breakWindow(domain.Monday, "13:00", "14:00"),
	}

	assert.NoError(t, validateSchedule(days, breaks))
}

func TestValidateSchedule_DuplicateWeekday(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "09:00", "18:00"),
		day(domain.Monday, "10:00", "16:00"),
	}

	err := validateSchedule(days, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateSchedule_InvertedBusinessDay(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "18:00", "09:00"),
	}

	err := validateSchedule(days, nil)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestValidateSchedule_InvalidWeekday(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Weekday(9), "09:00", "18:00"),
	}

	err := validateSchedule(days, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateSchedule_BreakOutsideBusinessHours(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "09:00", "18:00"),
	}
	breaks := []domain.BreakWindow{
		breakWindow(domain.Monday, "08:00", "09:30"),
	}

	err := validateSchedule(days, breaks)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestValidateSchedule_BreakOnClosedDay(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "09:00", "18:00"),
	}
	breaks := []domain.BreakWindow{
		breakWindow(domain.Sunday, "13:00", "14:00"),
	}

	err := validateSchedule(days, breaks)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestValidateSchedule_BreakSpanningFullDayIsAllowed(t *testing.T) {
	days := []domain.BusinessDay{
		day(domain.Monday, "09:00", "18:00"),
	}
	breaks := []domain.BreakWindow{
		breakWindow(domain.Monday, "09:00", "18:00"),
	}

	assert.NoError(t, validateSchedule(days, breaks))
}
