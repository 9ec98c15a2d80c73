package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// NightGapRule enforces the hard minimum spacing between night shifts.
//
// Constraints, per worker:
//   - For every date d, the sum of the worker's night variables over the
//     rolling window [d, d+minGap-1] is at most 1. Any two nights closer
//     than minGap days fall inside a common window, so the rolling form
//     covers all pairs.
type NightGapRule struct {
	minGap int
}

// NewNightGapRule creates the night-spacing-minimum rule.
func NewNightGapRule(minGap int) *NightGapRule {
	return &NightGapRule{minGap: minGap}
}

func (r *NightGapRule) Name() string {
	return RuleNightGap
}

func (r *NightGapRule) Summary() string {
	return "Night shifts of one worker are spaced a minimum number of days apart"
}

func (r *NightGapRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxOptions}
}

func (r *NightGapRule) Apply(s *Session) error {
	if r.minGap < 1 {
		return fmt.Errorf("%w: min night gap must be at least 1, got %d", ErrConfig, r.minGap)
	}

	for _, worker := range s.ctx.Workers {
		for i := range s.ctx.Days {
			var window []varHandle
			for j := i; j < len(s.ctx.Days) && j < i+r.minGap; j++ {
				window = append(window, s.workerDateVars(worker.Name, s.ctx.Days[j].Date, model.ShiftNight)...)
			}
			addAtMostOne(s, window)
		}
	}
	return nil
}
