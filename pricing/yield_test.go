package pricing_test

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/meenmo/curvelib/pricing"
)

func TestImpliedYieldRecoversFlatYield(t *testing.T) {
	t.Parallel()

	const y = 0.034
	asOf := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	cashflows := []pricing.Cashflow{
		{Date: asOf.AddDate(0, 0, 365), Coupon: 4},
		{Date: asOf.AddDate(0, 0, 730), Coupon: 4},
		{Date: asOf.AddDate(0, 0, 1095), Coupon: 4, Principal: 100},
	}

	// Price the schedule at a known flat yield, then invert.
	var target float64
	for i, tt := range []float64{1.0, 2.0, 3.0} {
		target += cashflows[i].Amount() * math.Pow(1.0+y, -tt)
	}

	got, err := pricing.ImpliedYield(target, asOf, cashflows)
	if err != nil {
		t.Fatalf("ImpliedYield: %v", err)
	}
	if math.Abs(got-y) > 1e-10 {
		t.Fatalf("got %.12f want %.12f", got, y)
	}
}

func TestImpliedYieldSkipsPastFlows(t *testing.T) {
	t.Parallel()

	const y = 0.025
	asOf := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)

	future := pricing.Cashflow{Date: asOf.AddDate(0, 0, 365), Coupon: 3, Principal: 100}
	target := future.Amount() * math.Pow(1.0+y, -1.0)

	// A stale flow before asOf must not affect the solve.
	cashflows := []pricing.Cashflow{
		{Date: asOf.AddDate(0, 0, -200), Coupon: 3},
		future,
	}

	got, err := pricing.ImpliedYield(target, asOf, cashflows)
	if err != nil {
		t.Fatalf("ImpliedYield: %v", err)
	}
	if math.Abs(got-y) > 1e-10 {
		t.Fatalf("got %.12f want %.12f", got, y)
	}
}

func TestImpliedYieldValidation(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)
	live := []pricing.Cashflow{{Date: asOf.AddDate(1, 0, 0), Principal: 100}}

	if _, err := pricing.ImpliedYield(99.0, asOf, nil); err == nil || !strings.Contains(err.Error(), "Cashflows are required") {
		t.Fatalf("empty cashflows: got %v", err)
	}
	if _, err := pricing.ImpliedYield(0, asOf, live); err == nil {
		t.Fatalf("zero target: want error")
	}
	if _, err := pricing.ImpliedYield(-5, asOf, live); err == nil {
		t.Fatalf("negative target: want error")
	}

	stale := []pricing.Cashflow{{Date: asOf.AddDate(-1, 0, 0), Principal: 100}}
	if _, err := pricing.ImpliedYield(99.0, asOf, stale); err == nil {
		t.Fatalf("all flows past: want error")
	}
}
