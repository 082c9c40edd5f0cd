package marketdata

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meenmo/curvelib/calendar"
	"github.com/meenmo/curvelib/curve"
	"github.com/meenmo/curvelib/daycount"
	"github.com/meenmo/curvelib/interp"
	"github.com/meenmo/curvelib/utils"
)

const dateLayout = "2006-01-02"

var (
	ErrUnsupportedPillar = errors.New("pillar is neither a year offset, a date, nor a tenor")
	ErrMixedPillars      = errors.New("quotes mix offset and date pillars")
	ErrBadTenor          = errors.New("malformed tenor")
	ErrNoStoredQuotes    = errors.New("no stored quotes")
)

// Quote is a single zero rate observation. Rate is in percent, screen style;
// the conversion to a decimal rate happens exactly once, in BuildCurve.
// Pillar is a year offset ("1.5"), an ISO date ("2026-06-30"), or a tenor
// ("18M", "10Y").
type Quote struct {
	Pillar string          `json:"pillar"`
	Rate   decimal.Decimal `json:"rate"`
}

// QuoteSet is a dated collection of zero rate quotes for one curve.
type QuoteSet struct {
	Name      string    `json:"name"`
	CurveDate time.Time `json:"curve_date"`
	Quotes    []Quote   `json:"quotes"`
}

// PillarMode says how a quote set anchors its pillars.
type PillarMode int

const (
	PillarOffsets PillarMode = iota
	PillarDates
)

// BuildCurve constructs the zero curve described by the quote set.
//
// The pillar mode is inferred once, from the first quote: year offsets stay
// offsets, dates and tenors resolve to pillar dates on cal. Later quotes
// must stick to the first quote's mode; mixing fails with ErrMixedPillars.
func (q QuoteSet) BuildCurve(freq curve.Frequency, dc daycount.Convention, method interp.Method, cal calendar.CalendarID) (*curve.ZeroCurve, error) {
	const op = "BuildCurve"

	if len(q.Quotes) == 0 {
		return nil, fmt.Errorf("%s: %w", op, curve.ErrNoQuotes)
	}

	rates := make([]float64, len(q.Quotes))
	for i, qt := range q.Quotes {
		rates[i] = qt.Rate.InexactFloat64() / 100.0
	}

	mode, offset, pillarDate, err := classifyPillar(q.CurveDate, q.Quotes[0].Pillar, cal)
	if err != nil {
		return nil, fmt.Errorf("%s: quote 0: %w", op, err)
	}

	switch mode {
	case PillarOffsets:
		offsets := make([]float64, len(q.Quotes))
		offsets[0] = offset
		for i := 1; i < len(q.Quotes); i++ {
			m, off, _, err := classifyPillar(q.CurveDate, q.Quotes[i].Pillar, cal)
			if err != nil {
				return nil, fmt.Errorf("%s: quote %d: %w", op, i, err)
			}
			if m != PillarOffsets {
				return nil, fmt.Errorf("%s: quote %d (%q): %w", op, i, q.Quotes[i].Pillar, ErrMixedPillars)
			}
			offsets[i] = off
		}
		return curve.BuildFromOffsets(q.CurveDate, offsets, rates, freq, dc, method)

	case PillarDates:
		dates := make([]time.Time, len(q.Quotes))
		dates[0] = pillarDate
		for i := 1; i < len(q.Quotes); i++ {
			m, _, d, err := classifyPillar(q.CurveDate, q.Quotes[i].Pillar, cal)
			if err != nil {
				return nil, fmt.Errorf("%s: quote %d: %w", op, i, err)
			}
			if m != PillarDates {
				return nil, fmt.Errorf("%s: quote %d (%q): %w", op, i, q.Quotes[i].Pillar, ErrMixedPillars)
			}
			dates[i] = d
		}
		return curve.BuildFromDates(q.CurveDate, dates, rates, freq, dc, method)

	default:
		return nil, fmt.Errorf("%s: %w: mode %d", op, ErrUnsupportedPillar, mode)
	}
}

// classifyPillar parses one pillar string: a bare number is a year offset,
// an ISO date is a pillar date, anything else is tried as a tenor.
func classifyPillar(curveDate time.Time, pillar string, cal calendar.CalendarID) (PillarMode, float64, time.Time, error) {
	s := strings.TrimSpace(pillar)

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return PillarOffsets, v, time.Time{}, nil
	}
	if d, err := time.Parse(dateLayout, s); err == nil {
		return PillarDates, 0, d, nil
	}
	if d, err := PillarDate(curveDate, s, cal); err == nil {
		return PillarDates, 0, d, nil
	}
	return 0, 0, time.Time{}, fmt.Errorf("%w: %q", ErrUnsupportedPillar, pillar)
}

// TenorToYears converts tenor strings like "1W", "3M", "10Y" to year
// fractions. A bare number parses as years.
func TenorToYears(tenor string) (float64, error) {
	const op = "TenorToYears"

	s := strings.TrimSpace(strings.ToUpper(tenor))
	if strings.HasSuffix(s, "D") {
		v, err := strconv.Atoi(strings.TrimSuffix(s, "D"))
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
		}
		return float64(v) / 365.0, nil
	}
	if strings.HasSuffix(s, "W") {
		v, err := strconv.Atoi(strings.TrimSuffix(s, "W"))
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
		}
		return float64(v) * 7.0 / 365.0, nil
	}
	if strings.HasSuffix(s, "M") {
		v, err := strconv.Atoi(strings.TrimSuffix(s, "M"))
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
		}
		return float64(v) / 12.0, nil
	}
	if strings.HasSuffix(s, "Y") {
		v, err := strconv.Atoi(strings.TrimSuffix(s, "Y"))
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
		}
		return float64(v), nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, nil
	}
	return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
}

// PillarDate resolves a tenor to its pillar date. Month and year tenors add
// EDATE months then adjust modified following on cal; day and week tenors
// add calendar days with a following adjustment.
func PillarDate(curveDate time.Time, tenor string, cal calendar.CalendarID) (time.Time, error) {
	const op = "PillarDate"

	s := strings.TrimSpace(strings.ToUpper(tenor))
	numPart := func(suffix string) (int, error) {
		n, err := strconv.Atoi(strings.TrimSuffix(s, suffix))
		if err != nil {
			return 0, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
		}
		return n, nil
	}

	switch {
	case strings.HasSuffix(s, "D"):
		n, err := numPart("D")
		if err != nil {
			return time.Time{}, err
		}
		return calendar.AdjustFollowing(cal, curveDate.AddDate(0, 0, n)), nil
	case strings.HasSuffix(s, "W"):
		n, err := numPart("W")
		if err != nil {
			return time.Time{}, err
		}
		return calendar.AdjustFollowing(cal, curveDate.AddDate(0, 0, 7*n)), nil
	case strings.HasSuffix(s, "M"):
		n, err := numPart("M")
		if err != nil {
			return time.Time{}, err
		}
		return calendar.Adjust(cal, utils.AddMonth(curveDate, n)), nil
	case strings.HasSuffix(s, "Y"):
		n, err := numPart("Y")
		if err != nil {
			return time.Time{}, err
		}
		return calendar.Adjust(cal, utils.AddMonth(curveDate, 12*n)), nil
	default:
		return time.Time{}, fmt.Errorf("%s: %w: %q", op, ErrBadTenor, tenor)
	}
}
