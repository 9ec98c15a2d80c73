package engine

import "github.com/nextmv-io/sdk/mip"

// CoverageRule is the central hard rule: every required coverage point is
// staffed by exactly one worker.
//
// Constraints:
//   - For every (hospital, date, shift) in the required coverage set, the
//     sum of the materialized variables over that point equals 1.
//   - A point with no materialized variables yields an unsatisfiable
//     equality; the builder's diagnostics name such points.
type CoverageRule struct{}

// NewCoverageRule creates the one-person-per-coverage-point rule.
func NewCoverageRule() *CoverageRule {
	return &CoverageRule{}
}

func (r *CoverageRule) Name() string {
	return RuleCoverage
}

func (r *CoverageRule) Summary() string {
	return "Every coverage point is staffed by exactly one worker"
}

func (r *CoverageRule) Requires() []ContextKey {
	return []ContextKey{CtxRequiredCoverage}
}

func (r *CoverageRule) Apply(s *Session) error {
	for _, point := range s.ctx.RequiredCoverage {
		c := s.model.NewConstraint(mip.Equal, 1.0)
		for _, handle := range s.pointVars(point) {
			c.NewTerm(1.0, handle.v)
		}
	}
	return nil
}
