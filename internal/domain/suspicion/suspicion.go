// Package suspicion decides whether a rank history looks like a smurf account.
package suspicion

import (
	"fmt"
)

// Default thresholds: peak at least Diamond, current at most Gold, six tiers apart.
const (
	DefaultMinPeakTier    = 18
	DefaultMaxCurrentTier = 12
	DefaultMinGap         = 6
	DefaultActs           = 3
)

// Rules are the tunables of Evaluate.
type Rules struct {
	MinPeakTier    int
	MaxCurrentTier int
	MinGap         int
	// Acts is only used to phrase the reason when the peak is missing.
	Acts int
}

// DefaultRules returns the stock thresholds.
func DefaultRules() Rules {
	return Rules{
		MinPeakTier:    DefaultMinPeakTier,
		MaxCurrentTier: DefaultMaxCurrentTier,
		MinGap:         DefaultMinGap,
		Acts:           DefaultActs,
	}
}

// Verdict is the outcome of Evaluate. Reason is always set and is shown to users.
type Verdict struct {
	Suspicious bool
	Reason     string
	// Gap is peak minus current; zero when either input is missing.
	Gap int
}

// Evaluate flags an account whose recent peak is high, whose current tier is
// low, and whose gap between the two reaches MinGap.
func (r Rules) Evaluate(peak, current *int) Verdict {
	if peak == nil {
		acts := r.Acts
		if acts <= 0 {
			acts = DefaultActs
		}
		return Verdict{Reason: fmt.Sprintf("insufficient data to compute peak over the last %d acts", acts)}
	}
	if current == nil {
		return Verdict{Reason: "insufficient data to estimate current rank"}
	}

	p, c := *peak, *current
	gap := p - c
	if p >= r.MinPeakTier && c <= r.MaxCurrentTier && gap >= r.MinGap {
		return Verdict{
			Suspicious: true,
			Gap:        gap,
			Reason:     fmt.Sprintf("high peak (tier %d) and low current (tier %d), gap %d", p, c, gap),
		}
	}
	return Verdict{
		Gap:    gap,
		Reason: fmt.Sprintf("no strong evidence: peak %d, current %d, gap %d", p, c, gap),
	}
}
