package engine

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// OverlapRule prevents a worker from being in two places at the same time.
//
// Constraints, per worker and date:
//   - For each shift kind, the sum of that worker's variables over all
//     hospitals is at most 1.
//   - Day and AM overlap in time, as do Day and PM: the sum of all Day and
//     AM variables is at most 1, and the sum of all Day and PM variables is
//     at most 1. AM and PM together remain allowed.
type OverlapRule struct{}

// NewOverlapRule creates the no-overlap-same-time rule.
func NewOverlapRule() *OverlapRule {
	return &OverlapRule{}
}

func (r *OverlapRule) Name() string {
	return RuleOverlap
}

func (r *OverlapRule) Summary() string {
	return "No worker holds two overlapping assignments at the same time"
}

func (r *OverlapRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays}
}

func (r *OverlapRule) Apply(s *Session) error {
	for _, worker := range s.ctx.Workers {
		for _, day := range s.ctx.Days {
			for _, shift := range model.ShiftKinds {
				addAtMostOne(s, s.workerDateVars(worker.Name, day.Date, shift))
			}
			addAtMostOne(s, s.workerDateVars(worker.Name, day.Date, model.ShiftDay, model.ShiftAM))
			addAtMostOne(s, s.workerDateVars(worker.Name, day.Date, model.ShiftDay, model.ShiftPM))
		}
	}
	return nil
}

// addAtMostOne constrains the handle sum to at most 1. Sums with fewer than
// two variables are trivially satisfied and skipped.
func addAtMostOne(s *Session, handles []varHandle) {
	if len(handles) < 2 {
		return
	}
	c := s.model.NewConstraint(mip.LessThanOrEqual, 1.0)
	for _, handle := range handles {
		c.NewTerm(1.0, handle.v)
	}
}
