package bank

import (
	"time"

	"cloud.google.com/go/civil"
)

func daysBetween(from, to civil.Date) int64 {
	return int64(to.DaysSince(from))
}

// monthsBetween counts whole months from one date to another, a partial
// trailing month is not counted.
func monthsBetween(from, to civil.Date) int {
	months := (to.Year-from.Year)*12 + int(to.Month) - int(from.Month)
	if months > 0 && to.Day < from.Day {
		months--
	}
	if months < 0 && to.Day > from.Day {
		months++
	}
	return months
}

func firstOfMonth(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: 1}
}

// laterOf returns the later of two dates.
func laterOf(a, b civil.Date) civil.Date {
	if a.After(b) {
		return a
	}
	return b
}

// addMonths moves d by n calendar months, clamping to the last day of the
// target month instead of overflowing into the next one.
func addMonths(d civil.Date, n int) civil.Date {
	target := monthStart(d, n)
	last := monthStart(d, n+1).AddDays(-1).Day
	if d.Day < last {
		target.Day = d.Day
	} else {
		target.Day = last
	}
	return target
}

// monthStart is the first day of the month n months after d's month.
func monthStart(d civil.Date, n int) civil.Date {
	months := d.Year*12 + int(d.Month) - 1 + n
	return civil.Date{Year: months / 12, Month: time.Month(months%12 + 1), Day: 1}
}
