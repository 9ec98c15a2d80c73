package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// NightPlusRemoteRule discourages a night shift combined with remote Day or
// PM duty on the same date.
//
// Penalties, per worker and date:
//   - A binary slack indicates the worker holds both a night variable and
//     a remote Day/PM variable on the date; each occurrence is penalized
//     with the configured weight.
type NightPlusRemoteRule struct {
	weight float64
}

// NewNightPlusRemoteRule creates the avoid-night-plus-remote-daypm-same-day
// rule.
func NewNightPlusRemoteRule(weight float64) *NightPlusRemoteRule {
	return &NightPlusRemoteRule{weight: weight}
}

func (r *NightPlusRemoteRule) Name() string {
	return RuleNightPlusRemote
}

func (r *NightPlusRemoteRule) Summary() string {
	return "Avoid a night shift plus remote day duty on the same date"
}

func (r *NightPlusRemoteRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxHospitals, CtxOptions}
}

func (r *NightPlusRemoteRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: night plus remote weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	for _, worker := range s.ctx.Workers {
		for _, day := range s.ctx.Days {
			nights := s.workerDateVars(worker.Name, day.Date, model.ShiftNight)
			if len(nights) == 0 {
				continue
			}

			var remoteDayPM []varHandle
			for _, handle := range s.workerDateVars(worker.Name, day.Date, model.ShiftDay, model.ShiftPM) {
				hospital, ok := s.ctx.Hospital(handle.key.Hospital)
				if ok && hospital.IsRemote {
					remoteDayPM = append(remoteDayPM, handle)
				}
			}
			if len(remoteDayPM) == 0 {
				continue
			}

			slack := s.andIndicator(nights, remoteDayPM)
			s.ledger.Append(PenaltyItem{
				Terms:  []Term{{Coef: 1.0, Var: slack}},
				Weight: r.weight,
				Source: r.Name(),
				Meta: map[string]string{
					"worker": worker.Name,
					"date":   day.Date.String(),
				},
			})
		}
	}
	return nil
}
