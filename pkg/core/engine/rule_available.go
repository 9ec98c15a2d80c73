package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// AvailableRule penalizes coverage points that go unstaffed although a
// worker explicitly marked themselves available.
//
// Penalties:
//   - For every explicit Available entry at (worker, date, shift) and every
//     hospital where that worker has a materialized variable on a required
//     coverage point of that slot, a binary slack equals 1 exactly when the
//     point is staffed by nobody; the slack is penalized with the
//     configured weight.
//   - With the coverage rule enabled every point is staffed, so this rule
//     only contributes penalty mass when coverage is relaxed.
type AvailableRule struct {
	weight float64
}

// NewAvailableRule creates the respect-available-preferences rule.
func NewAvailableRule(weight float64) *AvailableRule {
	return &AvailableRule{weight: weight}
}

func (r *AvailableRule) Name() string {
	return RuleAvailable
}

func (r *AvailableRule) Summary() string {
	return "Coverage points with available workers do not go unstaffed"
}

func (r *AvailableRule) Requires() []ContextKey {
	return []ContextKey{CtxPreferences, CtxRequiredCoverage, CtxOptions}
}

func (r *AvailableRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: available weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	covered := make(map[model.CoveragePoint]bool, len(s.ctx.RequiredCoverage))
	for _, point := range s.ctx.RequiredCoverage {
		covered[point] = true
	}

	for _, key := range sortedPreferenceKeys(s.ctx.Preferences) {
		if s.ctx.Preferences[key] != model.PreferenceAvailable {
			continue
		}
		for _, handle := range s.workerDateVars(key.Worker, key.Date, key.Shift) {
			point := handle.key.Point()
			if !covered[point] {
				continue
			}

			unstaffed := s.complementIndicator(s.pointVars(point))
			s.ledger.Append(PenaltyItem{
				Terms:  []Term{{Coef: 1.0, Var: unstaffed}},
				Weight: r.weight,
				Source: r.Name(),
				Meta: map[string]string{
					"worker":   key.Worker,
					"hospital": point.Hospital,
					"date":     key.Date.String(),
					"shift":    string(key.Shift),
				},
			})
		}
	}
	return nil
}
