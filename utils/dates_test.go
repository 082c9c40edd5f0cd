package utils_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/curvelib/utils"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearOffset(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.January, 2)

	got := utils.YearOffset(anchor, date(2025, time.January, 2))
	want := 366.0 / 365.0 // 2024 is a leap year
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("YearOffset one year: got %.12f want %.12f", got, want)
	}

	if got := utils.YearOffset(anchor, anchor); got != 0 {
		t.Fatalf("YearOffset at anchor: got %v want 0", got)
	}

	if got := utils.YearOffset(anchor, date(2023, time.December, 31)); got >= 0 {
		t.Fatalf("YearOffset before anchor: got %v want negative", got)
	}
}

func TestAddMonthEndOfMonth(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{"regular", date(2024, time.March, 15), 3, date(2024, time.June, 15)},
		{"jan31 to feb leap", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"jan31 to feb", date(2023, time.January, 31), 1, date(2023, time.February, 28)},
		{"oct31 back to sep", date(2024, time.October, 31), -1, date(2024, time.September, 30)},
		{"year roll", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := utils.AddMonth(tc.start, tc.months); !got.Equal(tc.want) {
				t.Fatalf("AddMonth(%v, %d): got %v want %v", tc.start, tc.months, got, tc.want)
			}
		})
	}
}

func TestIsNonDecreasing(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		xs   []float64
		want bool
	}{
		{"empty", nil, true},
		{"single", []float64{1.0}, true},
		{"increasing", []float64{0, 0.5, 1.0, 5.0}, true},
		{"duplicates", []float64{0, 1.0, 1.0, 2.0}, true},
		{"decreasing", []float64{1.0, 0.5}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := utils.IsNonDecreasing(tc.xs); got != tc.want {
				t.Fatalf("IsNonDecreasing(%v): got %v want %v", tc.xs, got, tc.want)
			}
		})
	}
}
