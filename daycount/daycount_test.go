package daycount_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/meenmo/curvelib/daycount"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestYearFraction(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		conv  daycount.Convention
		want  float64
	}{
		{"act360 half year", date(2024, time.January, 2), date(2024, time.July, 2), daycount.Act360, 182.0 / 360.0},
		{"act365f half year", date(2024, time.January, 2), date(2024, time.July, 2), daycount.Act365F, 182.0 / 365.0},
		{"actact same leap year", date(2024, time.January, 1), date(2024, time.July, 1), daycount.ActActISDA, 182.0 / 366.0},
		{"actact across years", date(2023, time.July, 1), date(2025, time.July, 1), daycount.ActActISDA, 184.0/365.0 + 1 + 181.0/365.0},
		{"actact year boundary", date(2023, time.December, 31), date(2024, time.January, 2), daycount.ActActISDA, 1.0/365.0 + 1.0/366.0},
		{"30/360 month ends", date(2024, time.January, 31), date(2024, time.March, 31), daycount.Thirty360, 60.0 / 360.0},
		{"30/360 keeps d2 31", date(2024, time.January, 15), date(2024, time.March, 31), daycount.Thirty360, 76.0 / 360.0},
		{"30e/360 caps d2", date(2024, time.January, 15), date(2024, time.March, 31), daycount.ThirtyE360, 75.0 / 360.0},
		{"same date", date(2024, time.June, 28), date(2024, time.June, 28), daycount.Act360, 0},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := daycount.YearFraction(tc.start, tc.end, tc.conv)
			if err != nil {
				t.Fatalf("YearFraction: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("YearFraction(%s): got %.12f want %.12f", tc.conv, got, tc.want)
			}
		})
	}
}

func TestYearFractionReversed(t *testing.T) {
	t.Parallel()

	start := date(2024, time.January, 2)
	end := date(2024, time.July, 2)

	fwd, err := daycount.YearFraction(start, end, daycount.Act365F)
	if err != nil {
		t.Fatalf("YearFraction: %v", err)
	}
	rev, err := daycount.YearFraction(end, start, daycount.Act365F)
	if err != nil {
		t.Fatalf("YearFraction reversed: %v", err)
	}
	if math.Abs(fwd+rev) > 1e-12 {
		t.Fatalf("reversed pair not negated: %v vs %v", fwd, rev)
	}
}

func TestYearFractionUnknownConvention(t *testing.T) {
	t.Parallel()

	_, err := daycount.YearFraction(date(2024, time.January, 2), date(2024, time.July, 2), "ACT/252")
	if !errors.Is(err, daycount.ErrUnknownConvention) {
		t.Fatalf("got %v, want ErrUnknownConvention", err)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	for _, c := range []daycount.Convention{
		daycount.ActActISDA, daycount.Act360, daycount.Act365F,
		daycount.Thirty360, daycount.ThirtyE360,
	} {
		if err := c.Validate(); err != nil {
			t.Fatalf("Validate(%s): %v", c, err)
		}
	}

	if err := daycount.Convention("BUS/252").Validate(); !errors.Is(err, daycount.ErrUnknownConvention) {
		t.Fatalf("Validate unknown: got %v, want ErrUnknownConvention", err)
	}
}
