package curve

import (
	"errors"
	"fmt"
)

// Frequency is the compounding convention a zero rate is quoted with.
type Frequency int

const (
	// Simple denotes simple (non-compounded) interest.
	Simple Frequency = iota
	Annual
	SemiAnnual
	Quarterly
	Monthly
	// Continuous denotes continuous compounding.
	Continuous
)

// ContinuousComp is the periods-per-year sentinel for continuous compounding.
const ContinuousComp = -1.0

// ErrUnknownFrequency is returned for a frequency outside the supported set.
var ErrUnknownFrequency = errors.New("unknown compounding frequency")

// PeriodsPerYear returns the compounding periods per year: 0 for Simple,
// ContinuousComp for Continuous, otherwise the period count.
func (f Frequency) PeriodsPerYear() (float64, error) {
	switch f {
	case Simple:
		return 0, nil
	case Annual:
		return 1, nil
	case SemiAnnual:
		return 2, nil
	case Quarterly:
		return 4, nil
	case Monthly:
		return 12, nil
	case Continuous:
		return ContinuousComp, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnknownFrequency, int(f))
	}
}

func (f Frequency) String() string {
	switch f {
	case Simple:
		return "SIMPLE"
	case Annual:
		return "ANNUAL"
	case SemiAnnual:
		return "SEMI_ANNUAL"
	case Quarterly:
		return "QUARTERLY"
	case Monthly:
		return "MONTHLY"
	case Continuous:
		return "CONTINUOUS"
	default:
		return fmt.Sprintf("FREQUENCY(%d)", int(f))
	}
}

// ParseFrequency maps a quote-file or CLI spelling to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch s {
	case "SIMPLE":
		return Simple, nil
	case "ANNUAL":
		return Annual, nil
	case "SEMI_ANNUAL":
		return SemiAnnual, nil
	case "QUARTERLY":
		return Quarterly, nil
	case "MONTHLY":
		return Monthly, nil
	case "CONTINUOUS":
		return Continuous, nil
	default:
		return 0, fmt.Errorf("ParseFrequency: %w: %q", ErrUnknownFrequency, s)
	}
}
