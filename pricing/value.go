package pricing

import (
	"fmt"
	"time"

	"github.com/meenmo/curvelib/curve"
)

// parallelShift is the curve shift used for finite difference risk.
const parallelShift = 1e-4 // one basis point

// PresentValue discounts a cashflow schedule on crv. Flows before asOf are
// ignored; a flow landing on asOf discounts at par.
func PresentValue(crv DiscountCurve, asOf time.Time, cashflows []Cashflow) (float64, error) {
	if crv == nil {
		return 0, fmt.Errorf("PresentValue: %w", ErrNilCurve)
	}
	if len(cashflows) == 0 {
		return 0, fmt.Errorf("PresentValue: Cashflows are required")
	}

	pv := 0.0
	for _, cf := range cashflows {
		if cf.Date.Before(asOf) {
			continue
		}
		pv += cf.Amount() * crv.DFAt(cf.Date)
	}
	return pv, nil
}

// DV01 is the price value of one basis point: the present value change for a
// one basis point parallel drop of the continuously compounded zero curve,
// estimated by central difference over Bump(±1bp). Positive when the
// position gains as rates fall.
func DV01(crv *curve.ZeroCurve, asOf time.Time, cashflows []Cashflow) (float64, error) {
	if crv == nil {
		return 0, fmt.Errorf("DV01: %w", ErrNilCurve)
	}

	up, err := PresentValue(crv.Bump(parallelShift), asOf, cashflows)
	if err != nil {
		return 0, fmt.Errorf("DV01: %w", err)
	}
	down, err := PresentValue(crv.Bump(-parallelShift), asOf, cashflows)
	if err != nil {
		return 0, fmt.Errorf("DV01: %w", err)
	}
	return (down - up) / 2.0, nil
}
