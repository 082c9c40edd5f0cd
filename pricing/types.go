package pricing

import (
	"errors"
	"time"
)

// Cashflow is a single dated cash payment.
//
// Amounts are in currency units (e.g., EUR), not price-per-100.
type Cashflow struct {
	Date      time.Time
	Coupon    float64
	Principal float64
}

func (c Cashflow) Amount() float64 {
	return c.Coupon + c.Principal
}

// CashflowCents mirrors feeds that store coupon and principal as integer
// minor units (e.g., cents for EUR).
type CashflowCents struct {
	Date           time.Time
	CouponCents    int64
	PrincipalCents int64
}

func (c CashflowCents) ToCashflow() Cashflow {
	return Cashflow{
		Date:      c.Date,
		Coupon:    float64(c.CouponCents) / 100.0,
		Principal: float64(c.PrincipalCents) / 100.0,
	}
}

func ToCashflows(in []CashflowCents) []Cashflow {
	out := make([]Cashflow, 0, len(in))
	for _, cf := range in {
		out = append(out, cf.ToCashflow())
	}
	return out
}

// DiscountCurve is the minimal curve surface pricing needs.
type DiscountCurve interface {
	DFAt(d time.Time) float64
}

var ErrNilCurve = errors.New("nil curve")
