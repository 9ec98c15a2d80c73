package engine

import (
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// ForbiddenRule enforces Forbidden preferences as hard exclusions.
//
// Constraints:
//   - For every explicit Forbidden entry at (worker, date, shift), every
//     materialized variable on that slot is forced to 0, regardless of
//     hospital.
type ForbiddenRule struct{}

// NewForbiddenRule creates the respect-forbidden-preferences rule.
func NewForbiddenRule() *ForbiddenRule {
	return &ForbiddenRule{}
}

func (r *ForbiddenRule) Name() string {
	return RuleForbidden
}

func (r *ForbiddenRule) Summary() string {
	return "Forbidden preferences are never violated"
}

func (r *ForbiddenRule) Requires() []ContextKey {
	return []ContextKey{CtxPreferences}
}

func (r *ForbiddenRule) Apply(s *Session) error {
	for _, key := range sortedPreferenceKeys(s.ctx.Preferences) {
		if s.ctx.Preferences[key] != model.PreferenceForbidden {
			continue
		}
		for _, handle := range s.workerDateVars(key.Worker, key.Date, key.Shift) {
			c := s.model.NewConstraint(mip.LessThanOrEqual, 0.0)
			c.NewTerm(1.0, handle.v)
		}
	}
	return nil
}

// sortedPreferenceKeys returns the explicit preference entries in
// deterministic order. Map iteration order must not leak into constraint
// numbering.
func sortedPreferenceKeys(prefs model.PreferenceMap) []model.PreferenceKey {
	keys := make([]model.PreferenceKey, 0, len(prefs))
	for key := range prefs {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Worker != b.Worker {
			return a.Worker < b.Worker
		}
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.Shift < b.Shift
	})
	return keys
}
