package workday

import (
	"time"

	"github.com/rickar/cal/v2"
)

// fixed builds a public holiday that falls on the same Gregorian date
// every year.
func fixed(name string, month time.Month, day int) *cal.Holiday {
	return &cal.Holiday{
		Name:  name,
		Type:  cal.ObservancePublic,
		Month: month,
		Day:   day,
		Func:  cal.CalcDayOfMonth,
	}
}

type monthDay struct {
	month time.Month
	day   int
}

// Gregorian dates of the lunar-calendar holidays. There is no
// closed-form rule for these; the tables cover 2023 through 2030, and
// years outside them carry no lunar holidays.
var (
	seollalDates = map[int]monthDay{
		2023: {time.January, 22},
		2024: {time.February, 10},
		2025: {time.January, 29},
		2026: {time.February, 17},
		2027: {time.February, 6},
		2028: {time.January, 26},
		2029: {time.February, 13},
		2030: {time.February, 3},
	}

	buddhasBirthdayDates = map[int]monthDay{
		2023: {time.May, 27},
		2024: {time.May, 15},
		2025: {time.May, 5},
		2026: {time.May, 24},
		2027: {time.May, 13},
		2028: {time.May, 2},
		2029: {time.May, 20},
		2030: {time.May, 9},
	}

	chuseokDates = map[int]monthDay{
		2023: {time.September, 29},
		2024: {time.September, 17},
		2025: {time.October, 6},
		2026: {time.September, 25},
		2027: {time.September, 15},
		2028: {time.October, 3},
		2029: {time.September, 22},
		2030: {time.September, 12},
	}
)

// lunar builds a public holiday at a day offset from a table of per-year
// Gregorian dates. Seollal and Chuseok each span the day before and
// after the main day.
func lunar(name string, dates map[int]monthDay, offset int) *cal.Holiday {
	return &cal.Holiday{
		Name: name,
		Type: cal.ObservancePublic,
		Func: func(_ *cal.Holiday, year int) time.Time {
			md, ok := dates[year]
			if !ok {
				return time.Time{}
			}
			return time.Date(year, md.month, md.day+offset, 0, 0, 0, 0, time.UTC)
		},
	}
}

// holidays is the South Korean public-holiday set. Substitute-holiday
// rules for holidays colliding with weekends are not modeled.
var holidays = []*cal.Holiday{
	fixed("New Year's Day", time.January, 1),
	fixed("Independence Movement Day", time.March, 1),
	fixed("Children's Day", time.May, 5),
	fixed("Memorial Day", time.June, 6),
	fixed("Liberation Day", time.August, 15),
	fixed("National Foundation Day", time.October, 3),
	fixed("Hangul Day", time.October, 9),
	fixed("Christmas Day", time.December, 25),

	lunar("Seollal Eve", seollalDates, -1),
	lunar("Seollal", seollalDates, 0),
	lunar("Seollal Holiday", seollalDates, 1),
	lunar("Buddha's Birthday", buddhasBirthdayDates, 0),
	lunar("Chuseok Eve", chuseokDates, -1),
	lunar("Chuseok", chuseokDates, 0),
	lunar("Chuseok Holiday", chuseokDates, 1),
}
