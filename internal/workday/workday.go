// Package workday answers whether a calendar day is a working day under
// the South Korean public-holiday calendar. Only listed holidays are
// non-working; weekends are ordinary days here, and any weekend handling
// is left to callers.
package workday

import (
	"time"

	"github.com/rickar/cal/v2"
)

// Calendar classifies days as working or non-working.
type Calendar struct {
	cal *cal.Calendar
}

// NewKoreanCalendar returns a calendar loaded with the South Korean
// public holidays.
func NewKoreanCalendar() *Calendar {
	c := &cal.Calendar{Name: "South Korea"}
	c.AddHoliday(holidays...)
	return &Calendar{cal: c}
}

// IsWorkingDay reports whether the given day is a working day, meaning
// not a public holiday.
func (c *Calendar) IsWorkingDay(t time.Time) bool {
	actual, observed, _ := c.cal.IsHoliday(t)
	return !actual && !observed
}
