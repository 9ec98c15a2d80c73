// Package calendar produces the ordered day sequence for a target month and
// classifies each date by weekday and holiday status.
package calendar

import (
	"fmt"
	"time"

	"github.com/radiol/optiroster/pkg/core/model"
)

// Day is one date of the target month with its classification.
type Day struct {
	// Date of this day.
	Date model.Date

	// Weekday of this day.
	Weekday time.Weekday

	// IsHoliday is true for Saturdays, Sundays and listed public holidays.
	IsHoliday bool

	// IsLastOfHolidayRun is true when this day is a holiday and the next
	// calendar day is not. The following day may fall outside the month;
	// it is classified the same way.
	IsLastOfHolidayRun bool
}

// HolidaySet is the externally provided public holiday table.
type HolidaySet map[model.Date]bool

// IsHoliday reports whether a date counts as a holiday: a Saturday, a
// Sunday, or a listed public holiday.
func (s HolidaySet) IsHoliday(d model.Date) bool {
	return d.IsWeekend() || s[d]
}

// Merge returns a new set containing the receiver's holidays plus extras.
// The receiver is not modified.
func (s HolidaySet) Merge(extras []model.Date) HolidaySet {
	merged := make(HolidaySet, len(s)+len(extras))
	for d := range s {
		merged[d] = true
	}
	for _, d := range extras {
		merged[d] = true
	}
	return merged
}

// Month returns the inclusive list of days for (year, month) in ascending
// order, each annotated with its weekday and holiday classification.
func Month(year int, month time.Month, holidays HolidaySet) ([]Day, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	if year < 1 {
		return nil, fmt.Errorf("invalid year %d", year)
	}

	first := model.NewDate(year, month, 1)
	days := make([]Day, 0, 31)

	for d := first; d.Month == month; d = d.AddDays(1) {
		isHoliday := holidays.IsHoliday(d)
		days = append(days, Day{
			Date:               d,
			Weekday:            d.Weekday(),
			IsHoliday:          isHoliday,
			IsLastOfHolidayRun: isHoliday && !holidays.IsHoliday(d.AddDays(1)),
		})
	}

	return days, nil
}

// Lookup builds a date index over a day slice for constraint evaluation.
func Lookup(days []Day) map[model.Date]Day {
	index := make(map[model.Date]Day, len(days))
	for _, day := range days {
		index[day.Date] = day
	}
	return index
}
