package engine

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// RemoteAfterNightRule forbids remote duty the day after a night shift.
//
// Constraints, per worker and date with a following day in the month:
//   - For each variable at a remote hospital on the next day (any shift),
//     that variable plus the worker's night variables today sum to at most
//     1. The night sum is itself bounded by the overlap rule, so the
//     pairwise form never cuts a feasible combination.
type RemoteAfterNightRule struct{}

// NewRemoteAfterNightRule creates the forbid-remote-after-night rule.
func NewRemoteAfterNightRule() *RemoteAfterNightRule {
	return &RemoteAfterNightRule{}
}

func (r *RemoteAfterNightRule) Name() string {
	return RuleRemoteAfter
}

func (r *RemoteAfterNightRule) Summary() string {
	return "No remote duty on the day after a night shift"
}

func (r *RemoteAfterNightRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxHospitals}
}

func (r *RemoteAfterNightRule) Apply(s *Session) error {
	for _, worker := range s.ctx.Workers {
		for i := 0; i+1 < len(s.ctx.Days); i++ {
			nights := s.workerDateVars(worker.Name, s.ctx.Days[i].Date, model.ShiftNight)
			if len(nights) == 0 {
				continue
			}

			nextDate := s.ctx.Days[i+1].Date
			for _, handle := range s.workerDateVars(worker.Name, nextDate) {
				hospital, ok := s.ctx.Hospital(handle.key.Hospital)
				if !ok || !hospital.IsRemote {
					continue
				}
				c := s.model.NewConstraint(mip.LessThanOrEqual, 1.0)
				c.NewTerm(1.0, handle.v)
				for _, night := range nights {
					c.NewTerm(1.0, night.v)
				}
			}
		}
	}
	return nil
}
