package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2025-10-03")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2025, time.October, 3), date)
	assert.Equal(t, "2025-10-03", date.String())
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("03/10/2025")
	assert.Error(t, err)
}

func TestDate_Weekday(t *testing.T) {
	// 2025-10-03 is a Friday
	assert.Equal(t, time.Friday, NewDate(2025, time.October, 3).Weekday())
	assert.Equal(t, time.Saturday, NewDate(2025, time.October, 4).Weekday())
}

func TestDate_AddDays(t *testing.T) {
	date := NewDate(2025, time.October, 31)
	assert.Equal(t, NewDate(2025, time.November, 1), date.AddDays(1))
	assert.Equal(t, NewDate(2025, time.October, 30), date.AddDays(-1))
}

func TestDate_DaysUntil(t *testing.T) {
	first := NewDate(2025, time.October, 3)
	second := NewDate(2025, time.October, 7)
	assert.Equal(t, 4, first.DaysUntil(second))
	assert.Equal(t, -4, second.DaysUntil(first))
	assert.Equal(t, 0, first.DaysUntil(first))
}

func TestDate_Before(t *testing.T) {
	first := NewDate(2025, time.September, 30)
	second := NewDate(2025, time.October, 1)
	assert.True(t, first.Before(second))
	assert.False(t, second.Before(first))
	assert.False(t, first.Before(first))
}

func TestDate_IsWeekend(t *testing.T) {
	assert.False(t, NewDate(2025, time.October, 3).IsWeekend()) // Friday
	assert.True(t, NewDate(2025, time.October, 4).IsWeekend())  // Saturday
	assert.True(t, NewDate(2025, time.October, 5).IsWeekend())  // Sunday
	assert.False(t, NewDate(2025, time.October, 6).IsWeekend()) // Monday
}

func TestPreferenceMap_Get(t *testing.T) {
	date := NewDate(2025, time.October, 15)
	prefs := PreferenceMap{
		{Worker: "W1", Date: date, Shift: ShiftNight}: PreferenceForbidden,
	}

	assert.Equal(t, PreferenceForbidden, prefs.Get("W1", date, ShiftNight))
	// Absence means Available
	assert.Equal(t, PreferenceAvailable, prefs.Get("W1", date, ShiftDay))
	assert.Equal(t, PreferenceAvailable, prefs.Get("W2", date, ShiftNight))
}

func TestCapMap_Get(t *testing.T) {
	caps := CapMap{
		{Worker: "W1", Hospital: "H1"}: 5,
	}

	cap, ok := caps.Get("W1", "H1")
	assert.True(t, ok)
	assert.Equal(t, 5, cap)

	_, ok = caps.Get("W1", "H2")
	assert.False(t, ok)
}

func TestVarKey_Point(t *testing.T) {
	key := VarKey{Hospital: "H1", Worker: "W1", Date: NewDate(2025, time.October, 3), Shift: ShiftNight}
	assert.Equal(t, CoveragePoint{Hospital: "H1", Date: key.Date, Shift: ShiftNight}, key.Point())
}
