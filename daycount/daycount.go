package daycount

import (
	"errors"
	"fmt"
	"time"
)

// Convention selects a day count rule for converting a date pair into a
// year fraction.
type Convention string

const (
	ActActISDA Convention = "ACT/ACT"
	Act360     Convention = "ACT/360"
	Act365F    Convention = "ACT/365F"
	Thirty360  Convention = "30/360"
	ThirtyE360 Convention = "30E/360"
)

// ErrUnknownConvention is returned for a convention outside the supported set.
var ErrUnknownConvention = errors.New("unknown day count convention")

// Validate reports whether c is a supported convention.
func (c Convention) Validate() error {
	switch c {
	case ActActISDA, Act360, Act365F, Thirty360, ThirtyE360:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConvention, string(c))
	}
}

// YearFraction computes the year fraction between two dates under the given
// day count convention. Supported conventions: ACT/ACT (ISDA), ACT/360,
// ACT/365F, 30/360 (bond basis), 30E/360. Unknown conventions are rejected.
// If end precedes start the result is the negated fraction of the swapped pair.
func YearFraction(start, end time.Time, c Convention) (float64, error) {
	if end.Before(start) {
		f, err := YearFraction(end, start, c)
		return -f, err
	}

	switch c {
	case ActActISDA:
		return actActISDA(start, end), nil
	case Act360:
		return days(start, end) / 360.0, nil
	case Act365F:
		return days(start, end) / 365.0, nil
	case Thirty360:
		// Bond basis: D1 capped at 30, D2 capped only when D1 was.
		d1 := start.Day()
		if d1 == 31 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 == 31 && d1 == 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2), nil
	case ThirtyE360:
		// Eurobond basis: D1 and D2 both capped at 30.
		d1 := start.Day()
		if d1 > 30 {
			d1 = 30
		}
		d2 := end.Day()
		if d2 > 30 {
			d2 = 30
		}
		return thirty360(start, end, d1, d2), nil
	default:
		return 0, fmt.Errorf("YearFraction: %w: %q", ErrUnknownConvention, string(c))
	}
}

func days(start, end time.Time) float64 {
	return end.Sub(start).Hours() / 24
}

func thirty360(start, end time.Time, d1, d2 int) float64 {
	y1, m1 := start.Year(), int(start.Month())
	y2, m2 := end.Year(), int(end.Month())
	return float64(360*(y2-y1)+30*(m2-m1)+(d2-d1)) / 360.0
}

// actActISDA splits the period at calendar year boundaries, dividing the
// actual days in each year by that year's actual length.
func actActISDA(start, end time.Time) float64 {
	if start.Year() == end.Year() {
		return days(start, end) / daysInYear(start.Year())
	}

	startNextJan1 := time.Date(start.Year()+1, time.January, 1, 0, 0, 0, 0, time.UTC)
	endJan1 := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	frac := days(start, startNextJan1) / daysInYear(start.Year())
	frac += float64(end.Year() - start.Year() - 1)
	frac += days(endJan1, end) / daysInYear(end.Year())
	return frac
}

func daysInYear(year int) float64 {
	if isLeapYear(year) {
		return 366.0
	}
	return 365.0
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
