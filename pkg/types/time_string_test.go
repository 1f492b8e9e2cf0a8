package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, invalid := range []string{"9:30am", "25:00", "09:61", "morning", ""} {
		_, err := NewTimeStringFromString(invalid)
		assert.ErrorIs(t, err, ErrInvalidTimeString, invalid)
	}
}

func TestTimeStringAddMinutes(t *testing.T) {
	ts := TimeString("09:30")

	result, err := ts.AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), result)

	result, err = ts.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), result)
}

func TestTimeStringComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:01"))
	assert.False(t, TimeString("09:00").IsBefore("09:00"))
	assert.True(t, TimeString("18:00").IsAfter("09:00"))
	assert.False(t, TimeString("09:00").IsAfter("09:00"))
}

func TestTimeStringOnDate(t *testing.T) {
	date := time.Date(2025, 10, 16, 23, 59, 0, 0, time.UTC)

	result, err := TimeString("09:30").OnDate(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 16, 9, 30, 0, 0, time.UTC), result)
}

func TestTimeStringScan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как HH:MM:SS
	require.NoError(t, ts.Scan("09:30:00"))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:45:00")))
	assert.Equal(t, TimeString("18:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}

func TestTimeStringValue(t *testing.T) {
	v, err := TimeString("09:30").Value()
	require.NoError(t, err)
	assert.Equal(t, "09:30", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("garbage").Value()
	assert.Error(t, err)
}

func TestTimeStringMinutes(t *testing.T) {
	minutes, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)
}
