package interp

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownMethod is returned for a method outside the supported set.
var ErrUnknownMethod = errors.New("unknown interpolation method")

// Method selects the scheme used to interpolate a discount factor grid.
type Method int

const (
	// FlatForward holds the instantaneous forward rate constant between
	// grid nodes (log-linear in the discount factor).
	FlatForward Method = iota
	// LinearZeroRate interpolates the continuously compounded zero rate
	// linearly in time.
	LinearZeroRate
	// LinearDiscount interpolates the discount factor linearly in time.
	LinearDiscount
)

func (m Method) String() string {
	switch m {
	case FlatForward:
		return "FLAT_FORWARD"
	case LinearZeroRate:
		return "LINEAR_ZERO_RATE"
	case LinearDiscount:
		return "LINEAR_DISCOUNT"
	default:
		return "UNKNOWN"
	}
}

// Validate reports whether m is one of the supported methods.
func (m Method) Validate() error {
	switch m {
	case FlatForward, LinearZeroRate, LinearDiscount:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownMethod, int(m))
	}
}

// ParseMethod maps a configuration spelling back to its Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "FLAT_FORWARD":
		return FlatForward, nil
	case "LINEAR_ZERO_RATE":
		return LinearZeroRate, nil
	case "LINEAR_DISCOUNT":
		return LinearDiscount, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Interpolate returns the grid value at time t under method m.
//
// times must be sorted in non-decreasing order with one value per node.
// Exact grid nodes return the stored value unchanged. Queries outside the
// grid extrapolate along the nearest boundary segment, so flat-forward
// queries past the last node continue the final forward rate. A single-node
// grid returns its value for every t; an empty grid or an unknown method
// returns NaN.
func Interpolate(t float64, times, values []float64, m Method) float64 {
	if len(times) == 0 || len(times) != len(values) {
		return math.NaN()
	}
	if len(times) == 1 {
		return values[0]
	}

	// Exact nodes short-circuit so grid values survive round trips untouched.
	idx := sort.SearchFloat64s(times, t)
	if idx < len(times) && times[idx] == t {
		return values[idx]
	}

	i1, i2 := findBracketOrBoundary(times, t)
	t1, t2 := times[i1], times[i2]
	v1, v2 := values[i1], values[i2]

	if t2 == t1 {
		return v1
	}

	switch m {
	case FlatForward:
		forwardRate := math.Log(v1/v2) / (t2 - t1)
		return v1 * math.Exp(-forwardRate*(t-t1))
	case LinearZeroRate:
		z2 := -math.Log(v2) / t2
		z1 := z2
		if t1 > 0 {
			z1 = -math.Log(v1) / t1
		}
		z := z1 + (z2-z1)*(t-t1)/(t2-t1)
		return math.Exp(-z * t)
	case LinearDiscount:
		return v1 + (v2-v1)*(t-t1)/(t2-t1)
	default:
		return math.NaN()
	}
}

// findBracketOrBoundary finds two adjacent grid indices that bracket the target.
// If the target is outside the range, returns the nearest boundary pair.
//
// This is useful for extrapolation where we still want the two nearest nodes.
func findBracketOrBoundary(times []float64, target float64) (i1, i2 int) {
	// Binary search for first node >= target.
	idx := sort.SearchFloat64s(times, target)

	if idx <= 0 {
		// target is before or equal to the first node
		return 0, 1
	}

	if idx >= len(times) {
		// target is after all nodes
		return len(times) - 2, len(times) - 1
	}

	// Normal case: times[idx-1] < target <= times[idx]
	return idx - 1, idx
}
