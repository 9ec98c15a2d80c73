package services

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/radiol/optiroster/pkg/core/calendar"
	"github.com/radiol/optiroster/pkg/core/engine"
	"github.com/radiol/optiroster/pkg/core/model"
)

// ValidateScenarioResult summarizes a scenario without solving it.
type ValidateScenarioResult struct {
	Days              int
	Variables         int
	CoveragePoints    []model.CoveragePoint
	UncoverablePoints []model.CoveragePoint
}

// ValidateScenario runs the configuration and domain checks and builds the
// variable space, without invoking the solver. Uncoverable points are
// reported so operators can fix availability before a solve.
func ValidateScenario(logger *zap.Logger, in engine.Inputs) (*ValidateScenarioResult, error) {
	if err := in.Options.Validate(); err != nil {
		return nil, err
	}
	if err := engine.ValidateInputs(in.Hospitals, in.Workers, in.SpecifiedDays, in.Preferences, in.Caps); err != nil {
		return nil, err
	}

	days, err := calendar.Month(in.Year, in.Month, in.Holidays)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar: %w", err)
	}

	build := engine.BuildVariables(days, in.Hospitals, in.Workers, in.SpecifiedDays, in.Holidays)

	logger.Info("Scenario validated",
		zap.Int("days", len(days)),
		zap.Int("variables", len(build.Keys)),
		zap.Int("coverage_points", len(build.RequiredCoverage)),
		zap.Int("uncoverable_points", len(build.UncoverablePoints)))

	return &ValidateScenarioResult{
		Days:              len(days),
		Variables:         len(build.Keys),
		CoveragePoints:    build.RequiredCoverage,
		UncoverablePoints: build.UncoverablePoints,
	}, nil
}
