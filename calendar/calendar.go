package calendar

import "time"

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	TARGET CalendarID = "TARGET"
	JPN    CalendarID = "JPN"
	USD    CalendarID = "USD"
	GBP    CalendarID = "GBP"
	KRW    CalendarID = "KRW"
)

const dateLayout = "2006-01-02"

// holidays maps each calendar to its registered holiday dates. Weekends are
// handled separately. Calendars start empty; feed them via RegisterHolidays.
var holidays = map[CalendarID]map[string]struct{}{
	TARGET: {},
	JPN:    {},
	USD:    {},
	GBP:    {},
	KRW:    {},
}

// RegisterHolidays adds YYYY-MM-DD holiday dates to a calendar. Meant for
// startup wiring; not safe to call concurrently with queries.
func RegisterHolidays(cal CalendarID, dates ...string) {
	set, ok := holidays[cal]
	if !ok {
		set = make(map[string]struct{}, len(dates))
		holidays[cal] = set
	}
	for _, d := range dates {
		set[d] = struct{}{}
	}
}

func isHoliday(cal CalendarID, t time.Time) bool {
	set, ok := holidays[cal]
	if !ok {
		return false
	}
	_, ok = set[t.Format(dateLayout)]
	return ok
}

// IsBusinessDay checks weekends and the registered holiday set.
func IsBusinessDay(cal CalendarID, t time.Time) bool {
	if t.Weekday() == time.Saturday || t.Weekday() == time.Sunday {
		return false
	}
	return !isHoliday(cal, t)
}

// Adjust applies Modified Following.
func Adjust(cal CalendarID, t time.Time) time.Time {
	origMonth := t.Month()
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	if t.Month() != origMonth {
		t = t.AddDate(0, 0, -1)
		for !IsBusinessDay(cal, t) {
			t = t.AddDate(0, 0, -1)
		}
	}
	return t
}

// AdjustFollowing applies a simple Following convention (no month preservation).
func AdjustFollowing(cal CalendarID, t time.Time) time.Time {
	for !IsBusinessDay(cal, t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// AddBusinessDays advances n business days (n can be negative).
func AddBusinessDays(cal CalendarID, t time.Time, n int) time.Time {
	step := 1
	if n < 0 {
		step = -1
	}
	for n != 0 {
		t = t.AddDate(0, 0, step)
		if IsBusinessDay(cal, t) {
			n -= step
		}
	}
	return t
}
