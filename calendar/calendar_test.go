package calendar_test

import (
	"testing"
	"time"

	"github.com/meenmo/curvelib/calendar"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsBusinessDay(t *testing.T) {
	t.Parallel()

	if calendar.IsBusinessDay(calendar.TARGET, date(2024, time.June, 8)) {
		t.Fatalf("Saturday reported as business day")
	}
	if calendar.IsBusinessDay(calendar.TARGET, date(2024, time.June, 9)) {
		t.Fatalf("Sunday reported as business day")
	}
	if !calendar.IsBusinessDay(calendar.TARGET, date(2024, time.June, 10)) {
		t.Fatalf("Monday not a business day")
	}
}

func TestRegisterHolidays(t *testing.T) {
	cal := calendar.CalendarID("TEST")
	calendar.RegisterHolidays(cal, "2024-12-25", "2024-12-26")

	if calendar.IsBusinessDay(cal, date(2024, time.December, 25)) {
		t.Fatalf("registered holiday reported as business day")
	}
	if !calendar.IsBusinessDay(cal, date(2024, time.December, 24)) {
		t.Fatalf("plain Tuesday not a business day")
	}
	// Unregistered calendars fall back to weekend-only.
	if !calendar.IsBusinessDay(calendar.CalendarID("OTHER"), date(2024, time.December, 25)) {
		t.Fatalf("unregistered calendar picked up a holiday")
	}
}

func TestAdjustModifiedFollowing(t *testing.T) {
	t.Parallel()

	// Saturday mid-month rolls forward to Monday.
	got := calendar.Adjust(calendar.TARGET, date(2024, time.June, 8))
	if want := date(2024, time.June, 10); !got.Equal(want) {
		t.Fatalf("mid-month: got %v want %v", got, want)
	}

	// Month-end Sunday rolls backward to Friday instead of crossing months.
	got = calendar.Adjust(calendar.TARGET, date(2024, time.June, 30))
	if want := date(2024, time.June, 28); !got.Equal(want) {
		t.Fatalf("month-end: got %v want %v", got, want)
	}
}

func TestAdjustFollowingCrossesMonth(t *testing.T) {
	t.Parallel()

	got := calendar.AdjustFollowing(calendar.TARGET, date(2024, time.June, 30))
	if want := date(2024, time.July, 1); !got.Equal(want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestAddBusinessDays(t *testing.T) {
	t.Parallel()

	// Friday plus two business days lands on Tuesday.
	got := calendar.AddBusinessDays(calendar.TARGET, date(2024, time.June, 7), 2)
	if want := date(2024, time.June, 11); !got.Equal(want) {
		t.Fatalf("forward: got %v want %v", got, want)
	}

	// Monday minus one business day lands on Friday.
	got = calendar.AddBusinessDays(calendar.TARGET, date(2024, time.June, 10), -1)
	if want := date(2024, time.June, 7); !got.Equal(want) {
		t.Fatalf("backward: got %v want %v", got, want)
	}
}
