package engine

import (
	"fmt"
	"time"
)

// Default rule parameters.
const (
	DefaultMinNightGap     = 2
	DefaultSoftNightWindow = 7
)

// Default soft-rule weights.
const (
	DefaultWeightNightSpacing    = 5.0
	DefaultWeightNightPlusRemote = 3.0
	DefaultWeightNightDeviation  = 2.0
	DefaultWeightWeekdayBalance  = 1.0
	DefaultWeightDutyAfterNight  = 4.0
	DefaultWeightDesired         = 8.0
	DefaultWeightAvailable       = 1.0
)

// Weights holds the per-unit penalty weight of each soft rule.
type Weights struct {
	// NightSpacing is applied per day of gap shortfall between two night
	// assignments inside the soft window.
	NightSpacing float64

	// NightPlusRemote is applied when a worker has both a night shift and
	// a remote Day/PM shift on the same date.
	NightPlusRemote float64

	// NightDeviation is applied per unit of deviation from the average
	// night count per active worker.
	NightDeviation float64

	// WeekdayBalance is applied per unit of deviation from the per-weekday
	// mean of non-night assignments.
	WeekdayBalance float64

	// DutyAfterNight is applied when a worker has a Day or AM shift the
	// day after a night shift.
	DutyAfterNight float64

	// Desired is applied per Desired preference left unassigned.
	Desired float64

	// Available is applied per Available preference whose coverage point
	// went unstaffed.
	Available float64
}

// DefaultWeights returns the standard soft-rule weights.
func DefaultWeights() Weights {
	return Weights{
		NightSpacing:    DefaultWeightNightSpacing,
		NightPlusRemote: DefaultWeightNightPlusRemote,
		NightDeviation:  DefaultWeightNightDeviation,
		WeekdayBalance:  DefaultWeightWeekdayBalance,
		DutyAfterNight:  DefaultWeightDutyAfterNight,
		Desired:         DefaultWeightDesired,
		Available:       DefaultWeightAvailable,
	}
}

// Options configures one solve session.
type Options struct {
	// MinNightGap is the hard minimum number of days between two night
	// assignments of the same worker. Must be at least 1.
	MinNightGap int

	// SoftNightWindow is the window inside which closer night pairs are
	// penalized. Must be at least MinNightGap.
	SoftNightWindow int

	// Weights are the soft-rule penalty weights. All must be non-negative.
	Weights Weights

	// EnabledRules selects rules by name. Empty means all known rules.
	EnabledRules []string

	// SolverTimeLimit bounds the solver wall clock. Zero means unlimited.
	SolverTimeLimit time.Duration
}

// DefaultOptions returns options with every rule enabled and default
// parameters and weights.
func DefaultOptions() Options {
	return Options{
		MinNightGap:     DefaultMinNightGap,
		SoftNightWindow: DefaultSoftNightWindow,
		Weights:         DefaultWeights(),
	}
}

// Validate checks option invariants. Violations are ErrConfig.
func (o Options) Validate() error {
	if o.MinNightGap < 1 {
		return fmt.Errorf("%w: min night gap must be at least 1, got %d", ErrConfig, o.MinNightGap)
	}
	if o.SoftNightWindow < o.MinNightGap {
		return fmt.Errorf("%w: soft night window %d is below min night gap %d", ErrConfig, o.SoftNightWindow, o.MinNightGap)
	}
	weights := []struct {
		name  string
		value float64
	}{
		{"night spacing", o.Weights.NightSpacing},
		{"night plus remote", o.Weights.NightPlusRemote},
		{"night deviation", o.Weights.NightDeviation},
		{"weekday balance", o.Weights.WeekdayBalance},
		{"duty after night", o.Weights.DutyAfterNight},
		{"desired", o.Weights.Desired},
		{"available", o.Weights.Available},
	}
	for _, w := range weights {
		if w.value < 0 {
			return fmt.Errorf("%w: %s weight must be non-negative, got %v", ErrConfig, w.name, w.value)
		}
	}
	if o.SolverTimeLimit < 0 {
		return fmt.Errorf("%w: solver time limit must not be negative, got %v", ErrConfig, o.SolverTimeLimit)
	}
	for _, name := range o.EnabledRules {
		if !knownRuleNames[name] {
			return fmt.Errorf("%w: unknown rule %q", ErrConfig, name)
		}
	}
	return nil
}

// ruleEnabled reports whether the named rule participates in this session.
func (o Options) ruleEnabled(name string) bool {
	if len(o.EnabledRules) == 0 {
		return true
	}
	for _, enabled := range o.EnabledRules {
		if enabled == name {
			return true
		}
	}
	return false
}
