// Package engine is the roster optimization core: it materializes the
// feasible decision space for a target month, translates the scheduling
// rules into a mixed-integer linear program, solves it, and attributes the
// residual penalty mass back to named rules.
//
// The engine is single-threaded from the caller's perspective and holds no
// global state; callers wanting to solve several months concurrently run
// independent sessions.
package engine

import (
	"fmt"
	"time"

	"github.com/radiol/optiroster/pkg/core/calendar"
	"github.com/radiol/optiroster/pkg/core/model"
)

// Inputs bundles everything one solve consumes.
type Inputs struct {
	Year  int
	Month time.Month

	Hospitals     []model.Hospital
	Workers       []model.Worker
	SpecifiedDays []model.SpecifiedDay
	Preferences   model.PreferenceMap
	Caps          model.CapMap

	// Holidays is the externally provided public holiday table.
	Holidays calendar.HolidaySet

	Options Options
}

// Solve runs the full pipeline for one month: validation, calendar,
// variable building, rule application, solving and penalty resolution.
//
// Configuration and domain validation errors are returned before any solver
// work; infeasibility and solver failures after solver return.
func Solve(in Inputs) (*SolveResult, error) {
	if err := in.Options.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateInputs(in.Hospitals, in.Workers, in.SpecifiedDays, in.Preferences, in.Caps); err != nil {
		return nil, err
	}

	days, err := calendar.Month(in.Year, in.Month, in.Holidays)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}

	build := BuildVariables(days, in.Hospitals, in.Workers, in.SpecifiedDays, in.Holidays)

	overlays := make(map[string][]model.Date)
	for _, sd := range in.SpecifiedDays {
		if sd.TreatAsHoliday {
			overlays[sd.Hospital] = append(overlays[sd.Hospital], sd.Date)
		}
	}

	preferences := in.Preferences
	if preferences == nil {
		preferences = model.PreferenceMap{}
	}
	caps := in.Caps
	if caps == nil {
		caps = model.CapMap{}
	}

	ctx := &Context{
		Days:             days,
		Hospitals:        in.Hospitals,
		Workers:          in.Workers,
		RequiredCoverage: build.RequiredCoverage,
		Preferences:      preferences,
		Caps:             caps,
		Options:          in.Options,
		HolidayOverlays:  overlays,
		Holidays:         in.Holidays,
	}

	session, err := NewSession(ctx, build, Registry(in.Options))
	if err != nil {
		return nil, err
	}

	return session.Solve()
}
