package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvelib/utils"
)

const (
	yieldTolerance = 1e-12
	yieldMaxIter   = 100
	yieldFloor     = -0.05
	yieldCeiling   = 0.50
)

// ImpliedYield solves for the flat annually compounded yield y such that the
// schedule discounted at y reprices to target:
//
//	target = Σ CF_k · (1+y)^(−t_k)
//
// with t_k the actual/365 year offset of each flow from asOf. Flows strictly
// before asOf are ignored, matching PresentValue. The yield is returned as a
// decimal.
//
// The solver is Newton-Raphson with the analytic first derivative, clamped to
// [-5%, +50%].
func ImpliedYield(target float64, asOf time.Time, cashflows []Cashflow) (float64, error) {
	const op = "ImpliedYield"

	if len(cashflows) == 0 {
		return 0, fmt.Errorf("%s: Cashflows are required", op)
	}
	if target <= 0 {
		return 0, fmt.Errorf("%s: target value must be positive, got %v", op, target)
	}

	var times, amounts []float64
	for _, cf := range cashflows {
		if cf.Date.Before(asOf) {
			continue
		}
		times = append(times, utils.YearOffset(asOf, cf.Date))
		amounts = append(amounts, cf.Amount())
	}
	if len(times) == 0 {
		return 0, fmt.Errorf("%s: no cashflows on or after the valuation date", op)
	}

	y := clamp(0.025, yieldFloor, yieldCeiling)

	for iter := 0; iter < yieldMaxIter; iter++ {
		price, dPdy := priceAndDeriv(y, times, amounts)
		f := price - target

		if math.Abs(f) < yieldTolerance {
			return y, nil
		}
		if math.Abs(dPdy) < 1e-15 {
			return y, fmt.Errorf("%s: derivative too small at iter %d", op, iter)
		}

		y = clamp(y-f/dPdy, yieldFloor, yieldCeiling)
	}

	return y, fmt.Errorf("%s: did not converge after %d iterations", op, yieldMaxIter)
}

// priceAndDeriv returns (price, dPrice/dy) at flat annually compounded y.
func priceAndDeriv(y float64, times, amounts []float64) (float64, float64) {
	var price, deriv float64
	for i, t := range times {
		price += amounts[i] * math.Pow(1.0+y, -t)
		deriv += -t * amounts[i] * math.Pow(1.0+y, -t-1.0)
	}
	return price, deriv
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
