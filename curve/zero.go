package curve

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/interp"
	"github.com/meenmo/curvelib/utils"
)

const dateLayout = "2006-01-02"

// Sentinel errors surfaced by the constructors and the query surface.
var (
	ErrNoQuotes       = errors.New("no quotes")
	ErrLengthMismatch = errors.New("times and rates length mismatch")
	ErrNegativeTime   = errors.New("time before curve date")
	ErrNotMonotonic   = errors.New("times not in non-decreasing order")
	ErrDateOrder      = errors.New("dates out of order")
)

// ZeroCurve is a discount factor curve built from zero rate quotes.
//
// The curve is immutable once constructed: queries never modify it and Bump
// returns a fresh instance, so one curve can serve concurrent readers without
// locking. Times are year offsets from the curve date on a plain actual/365
// calendar axis; the discount factors embed the construction compounding
// convention.
type ZeroCurve struct {
	curveDate time.Time
	times     []float64
	dfs       []float64
	dayCount  daycount.Convention
	freq      Frequency
	method    interp.Method
}

// BuildFromOffsets constructs a curve from year offsets and zero rates.
//
// Rates are decimals (0.02 for 2%) quoted with freq compounding under dc.
// Offsets are years from curveDate; each must be non-negative and the
// sequence non-decreasing. The discount factor at offset t is exp(-r*t)
// under continuous compounding and (1+r/f)^(-f*t) otherwise.
func BuildFromOffsets(curveDate time.Time, offsets, rates []float64, freq Frequency, dc daycount.Convention, method interp.Method) (*ZeroCurve, error) {
	const op = "BuildFromOffsets"

	f, err := buildChecks(op, len(offsets), len(rates), freq, dc, method)
	if err != nil {
		return nil, err
	}

	times := make([]float64, len(offsets))
	dfs := make([]float64, len(offsets))
	for i, t := range offsets {
		if t < 0 {
			return nil, fmt.Errorf("%s: %w: offset %v at index %d", op, ErrNegativeTime, t, i)
		}
		times[i] = t
		dfs[i] = discountFromRate(rates[i], t, t, f)
	}
	if !utils.IsNonDecreasing(times) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotMonotonic)
	}

	return &ZeroCurve{
		curveDate: curveDate,
		times:     times,
		dfs:       dfs,
		dayCount:  dc,
		freq:      freq,
		method:    method,
	}, nil
}

// BuildFromDates constructs a curve from pillar dates and zero rates.
//
// Each pillar yields two measures: the calendar offset t (actual days / 365
// from curveDate) and the day count fraction alpha under dc. The stored time
// axis uses t while periodic compounding discounts on alpha. They differ
// whenever dc is not an actual/365 basis and both are kept that way: the day
// count governs compounding, the calendar offset governs interpolation
// position.
func BuildFromDates(curveDate time.Time, dates []time.Time, rates []float64, freq Frequency, dc daycount.Convention, method interp.Method) (*ZeroCurve, error) {
	const op = "BuildFromDates"

	f, err := buildChecks(op, len(dates), len(rates), freq, dc, method)
	if err != nil {
		return nil, err
	}

	times := make([]float64, len(dates))
	dfs := make([]float64, len(dates))
	for i, d := range dates {
		t := utils.YearOffset(curveDate, d)
		if t < 0 {
			return nil, fmt.Errorf("%s: %w: %s precedes curve date %s",
				op, ErrNegativeTime, d.Format(dateLayout), curveDate.Format(dateLayout))
		}
		alpha, err := daycount.YearFraction(curveDate, d, dc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		times[i] = t
		dfs[i] = discountFromRate(rates[i], t, alpha, f)
	}
	if !utils.IsNonDecreasing(times) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotMonotonic)
	}

	return &ZeroCurve{
		curveDate: curveDate,
		times:     times,
		dfs:       dfs,
		dayCount:  dc,
		freq:      freq,
		method:    method,
	}, nil
}

// NewFromDiscountFactors constructs a curve from already-known discount
// factors, bypassing the rate conversion. The input slices are copied. The
// curve reports Continuous and ACT/365F as its nominal conventions.
func NewFromDiscountFactors(curveDate time.Time, times, dfs []float64, method interp.Method) (*ZeroCurve, error) {
	const op = "NewFromDiscountFactors"

	if _, err := buildChecks(op, len(times), len(dfs), Continuous, daycount.Act365F, method); err != nil {
		return nil, err
	}

	ts := make([]float64, len(times))
	vs := make([]float64, len(dfs))
	for i, t := range times {
		if t < 0 {
			return nil, fmt.Errorf("%s: %w: offset %v at index %d", op, ErrNegativeTime, t, i)
		}
		ts[i] = t
		vs[i] = dfs[i]
	}
	if !utils.IsNonDecreasing(ts) {
		return nil, fmt.Errorf("%s: %w", op, ErrNotMonotonic)
	}

	return &ZeroCurve{
		curveDate: curveDate,
		times:     ts,
		dfs:       vs,
		dayCount:  daycount.Act365F,
		freq:      Continuous,
		method:    method,
	}, nil
}

// buildChecks runs the shared construction validation in a fixed order and
// resolves the compounding periods per year. Construction is all or nothing;
// no partial curve is ever returned.
func buildChecks(op string, nTimes, nRates int, freq Frequency, dc daycount.Convention, method interp.Method) (float64, error) {
	if nTimes == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNoQuotes)
	}
	if nTimes != nRates {
		return 0, fmt.Errorf("%s: %w: %d times, %d values", op, ErrLengthMismatch, nTimes, nRates)
	}
	f, err := freq.PeriodsPerYear()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := dc.Validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if err := method.Validate(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}

// discountFromRate converts a zero rate into a discount factor. Continuous
// compounding discounts on the calendar offset t; periodic compounding
// discounts on the day count fraction alpha. Simple frequency resolves to
// f == 0, where the power collapses to 1 under IEEE rules (Pow(x, ±0) = 1).
func discountFromRate(r, t, alpha, f float64) float64 {
	if f == ContinuousComp {
		return math.Exp(-r * t)
	}
	return math.Pow(1.0+r/f, -f*alpha)
}

// DF returns the discount factor at year offset t from the curve date.
// Queries outside the grid extrapolate per the curve's interpolation method;
// no bounds error is raised.
func (c *ZeroCurve) DF(t float64) float64 {
	return interp.Interpolate(t, c.times, c.dfs, c.method)
}

// DFAt returns the discount factor on date d.
func (c *ZeroCurve) DFAt(d time.Time) float64 {
	return c.DF(utils.YearOffset(c.curveDate, d))
}

// SurvivalProbability reads the curve as a credit survival curve: the value
// at t is the probability of no default by t. Mechanically identical to DF;
// a given curve should be used under one interpretation only.
func (c *ZeroCurve) SurvivalProbability(t float64) float64 {
	return interp.Interpolate(t, c.times, c.dfs, c.method)
}

// SurvivalProbabilityAt returns the survival probability on date d.
func (c *ZeroCurve) SurvivalProbabilityAt(d time.Time) float64 {
	return c.SurvivalProbability(utils.YearOffset(c.curveDate, d))
}

// ZeroRate recovers the zero rate implied by df(t) under the caller's
// compounding frequency, which may differ from the construction frequency.
//
// The branch order below is load-bearing: the continuous check's else arm is
// the periodic formula, so the Simple result is overwritten with f == 0 and
// comes out NaN. t == 0 is likewise unguarded; non-finite values propagate
// to the caller instead of being intercepted.
func (c *ZeroCurve) ZeroRate(t float64, freq Frequency) float64 {
	f, err := freq.PeriodsPerYear()
	if err != nil {
		return math.NaN()
	}
	df := c.DF(t)

	var r float64
	if f == 0 {
		r = (1.0/df - 1.0) / t
	}
	if f == ContinuousComp {
		r = -math.Log(df) / t
	} else {
		r = (math.Pow(df, -1.0/(t*f)) - 1.0) * f
	}
	return r
}

// ZeroRateAt recovers the zero rate on date d under freq compounding.
func (c *ZeroCurve) ZeroRateAt(d time.Time, freq Frequency) float64 {
	return c.ZeroRate(utils.YearOffset(c.curveDate, d), freq)
}

// forwardStep is the finite difference step for instantaneous forwards.
const forwardStep = 1e-6

// InstantaneousForward estimates the instantaneous forward rate at t by a
// one-sided finite difference over a fixed step. Accuracy tracks the
// smoothness of the interpolation method near t; inside a flat-forward
// segment the estimate equals that segment's forward rate.
func (c *ZeroCurve) InstantaneousForward(t float64) float64 {
	df1 := c.DF(t)
	df2 := c.DF(t + forwardStep)
	return math.Log(df1/df2) / forwardStep
}

// InstantaneousForwardAt estimates the instantaneous forward rate on date d.
func (c *ZeroCurve) InstantaneousForwardAt(d time.Time) float64 {
	return c.InstantaneousForward(utils.YearOffset(c.curveDate, d))
}

// ForwardRate returns the simple compounding forward rate between two dates
// under the caller's day count convention:
//
//	(df(d1)/df(d2) - 1) / yearFraction(d1, d2)
//
// Errors wrap ErrDateOrder when d1 precedes the curve date or d2 precedes d1.
func (c *ZeroCurve) ForwardRate(d1, d2 time.Time, dc daycount.Convention) (float64, error) {
	const op = "ForwardRate"

	if d1.Before(c.curveDate) {
		return 0, fmt.Errorf("%s: %w: start %s precedes curve date %s",
			op, ErrDateOrder, d1.Format(dateLayout), c.curveDate.Format(dateLayout))
	}
	if d2.Before(d1) {
		return 0, fmt.Errorf("%s: %w: end %s precedes start %s",
			op, ErrDateOrder, d2.Format(dateLayout), d1.Format(dateLayout))
	}
	yf, err := daycount.YearFraction(d1, d2, dc)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	df1 := c.DFAt(d1)
	df2 := c.DFAt(d2)
	return (df1/df2 - 1.0) / yf, nil
}

// Bump returns a new curve with every grid discount factor scaled by
// exp(-size*t), a parallel shift of the continuously compounded zero curve
// by size. The receiver is untouched; grid, anchor date, conventions and
// interpolation method carry over and no storage is shared.
func (c *ZeroCurve) Bump(size float64) *ZeroCurve {
	times := make([]float64, len(c.times))
	dfs := make([]float64, len(c.dfs))
	for i := range c.times {
		times[i] = c.times[i]
		dfs[i] = c.dfs[i] * math.Exp(-size*c.times[i])
	}
	return &ZeroCurve{
		curveDate: c.curveDate,
		times:     times,
		dfs:       dfs,
		dayCount:  c.dayCount,
		freq:      c.freq,
		method:    c.method,
	}
}

// String renders the grid as a two column report. Diagnostic output, not a
// parse format.
func (c *ZeroCurve) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%12s  %18s\n", "TIME", "DISCOUNT FACTOR")
	for i := range c.times {
		fmt.Fprintf(&b, "%12.6f  %18.12f\n", c.times[i], c.dfs[i])
	}
	return b.String()
}

// CurveDate returns the anchor date.
func (c *ZeroCurve) CurveDate() time.Time {
	return c.curveDate
}

// Times returns a copy of the grid year offsets.
func (c *ZeroCurve) Times() []float64 {
	out := make([]float64, len(c.times))
	copy(out, c.times)
	return out
}

// DiscountFactors returns a copy of the grid discount factors.
func (c *ZeroCurve) DiscountFactors() []float64 {
	out := make([]float64, len(c.dfs))
	copy(out, c.dfs)
	return out
}

// DayCount returns the construction day count convention.
func (c *ZeroCurve) DayCount() daycount.Convention {
	return c.dayCount
}

// Frequency returns the construction compounding frequency.
func (c *ZeroCurve) Frequency() Frequency {
	return c.freq
}

// Method returns the interpolation method fixed at construction.
func (c *ZeroCurve) Method() interp.Method {
	return c.method
}
