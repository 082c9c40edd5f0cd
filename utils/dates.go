package utils

import (
	"time"
)

// DaysInYear is the denominator used when mapping a calendar date to a
// year offset on the curve's time axis. The axis is deliberately a plain
// ACT/365 measure regardless of the day count a curve compounds with.
const DaysInYear = 365.0

// Days returns the number of calendar days from start to end.
func Days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

// YearOffset returns the year offset of d from anchor on the calendar axis.
// Negative when d precedes anchor.
func YearOffset(anchor, d time.Time) float64 {
	return Days(anchor, d) / DaysInYear
}

// MonthInt returns the numeric month.
func MonthInt(t time.Time) int {
	return int(t.Month())
}

// AddMonth behaves like Excel's EDATE, avoiding Go's month normalization surprises.
func AddMonth(t time.Time, months int) time.Time {
	target := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, months, 0)
	if target.Month() == t.AddDate(0, months, 0).Month() {
		return t.AddDate(0, months, 0)
	}

	d := t.AddDate(0, months, 0)
	origMonth := MonthInt(d)
	for MonthInt(d) == origMonth {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// IsNonDecreasing reports whether xs is sorted in non-decreasing order.
// Equal neighbors are allowed.
func IsNonDecreasing(xs []float64) bool {
	for i := 1; i < len(xs); i++ {
		if xs[i] < xs[i-1] {
			return false
		}
	}
	return true
}
