package curve_test

import (
	"errors"
	"testing"

	"github.com/meenmo/curvelib/curve"
)

func TestPeriodsPerYear(t *testing.T) {
	t.Parallel()

	cases := []struct {
		freq curve.Frequency
		want float64
	}{
		{curve.Simple, 0},
		{curve.Annual, 1},
		{curve.SemiAnnual, 2},
		{curve.Quarterly, 4},
		{curve.Monthly, 12},
		{curve.Continuous, curve.ContinuousComp},
	}

	for _, tc := range cases {
		got, err := tc.freq.PeriodsPerYear()
		if err != nil {
			t.Fatalf("PeriodsPerYear(%s): %v", tc.freq, err)
		}
		if got != tc.want {
			t.Fatalf("PeriodsPerYear(%s): got %v want %v", tc.freq, got, tc.want)
		}
	}

	if _, err := curve.Frequency(42).PeriodsPerYear(); !errors.Is(err, curve.ErrUnknownFrequency) {
		t.Fatalf("got %v, want ErrUnknownFrequency", err)
	}
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	for _, f := range []curve.Frequency{
		curve.Simple, curve.Annual, curve.SemiAnnual,
		curve.Quarterly, curve.Monthly, curve.Continuous,
	} {
		got, err := curve.ParseFrequency(f.String())
		if err != nil {
			t.Fatalf("ParseFrequency(%s): %v", f, err)
		}
		if got != f {
			t.Fatalf("ParseFrequency(%s): got %s", f, got)
		}
	}

	if _, err := curve.ParseFrequency("WEEKLY"); !errors.Is(err, curve.ErrUnknownFrequency) {
		t.Fatalf("got %v, want ErrUnknownFrequency", err)
	}
}
