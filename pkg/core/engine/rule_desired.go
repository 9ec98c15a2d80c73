package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// DesiredRule rewards honoring Desired preferences.
//
// Penalties:
//   - For every Desired entry at (worker, date, shift) with at least one
//     materialized variable, a binary slack equals 1 exactly when the
//     worker is left unassigned on that slot; the slack is penalized with
//     the configured weight.
//   - A Desired entry with no materialized variable cannot be acted on and
//     produces no penalty.
type DesiredRule struct {
	weight float64
}

// NewDesiredRule creates the respect-desired-preferences rule.
func NewDesiredRule(weight float64) *DesiredRule {
	return &DesiredRule{weight: weight}
}

func (r *DesiredRule) Name() string {
	return RuleDesired
}

func (r *DesiredRule) Summary() string {
	return "Desired preferences are honored where possible"
}

func (r *DesiredRule) Requires() []ContextKey {
	return []ContextKey{CtxPreferences, CtxOptions}
}

func (r *DesiredRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: desired weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	for _, key := range sortedPreferenceKeys(s.ctx.Preferences) {
		if s.ctx.Preferences[key] != model.PreferenceDesired {
			continue
		}
		handles := s.workerDateVars(key.Worker, key.Date, key.Shift)
		if len(handles) == 0 {
			continue
		}

		unassigned := s.complementIndicator(handles)
		s.ledger.Append(PenaltyItem{
			Terms:  []Term{{Coef: 1.0, Var: unassigned}},
			Weight: r.weight,
			Source: r.Name(),
			Meta: map[string]string{
				"worker": key.Worker,
				"date":   key.Date.String(),
				"shift":  string(key.Shift),
			},
		})
	}
	return nil
}
