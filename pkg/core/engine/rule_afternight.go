package engine

import (
	"fmt"

	"github.com/radiol/optiroster/pkg/core/model"
)

// DutyAfterNightRule discourages Day or AM duty the morning after a night.
//
// Penalties, per worker and date with a following day in the month:
//   - A binary slack indicates the worker holds a night variable on the
//     date and a Day/AM variable on the next date; each occurrence is
//     penalized with the configured weight.
type DutyAfterNightRule struct {
	weight float64
}

// NewDutyAfterNightRule creates the no-duty-after-night rule.
func NewDutyAfterNightRule(weight float64) *DutyAfterNightRule {
	return &DutyAfterNightRule{weight: weight}
}

func (r *DutyAfterNightRule) Name() string {
	return RuleDutyAfterNight
}

func (r *DutyAfterNightRule) Summary() string {
	return "Avoid day duty the morning after a night shift"
}

func (r *DutyAfterNightRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxOptions}
}

func (r *DutyAfterNightRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: duty after night weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	for _, worker := range s.ctx.Workers {
		for i := 0; i+1 < len(s.ctx.Days); i++ {
			nights := s.workerDateVars(worker.Name, s.ctx.Days[i].Date, model.ShiftNight)
			if len(nights) == 0 {
				continue
			}
			morning := s.workerDateVars(worker.Name, s.ctx.Days[i+1].Date, model.ShiftDay, model.ShiftAM)
			if len(morning) == 0 {
				continue
			}

			slack := s.andIndicator(nights, morning)
			s.ledger.Append(PenaltyItem{
				Terms:  []Term{{Coef: 1.0, Var: slack}},
				Weight: r.weight,
				Source: r.Name(),
				Meta: map[string]string{
					"worker": worker.Name,
					"night":  s.ctx.Days[i].Date.String(),
					"next":   s.ctx.Days[i+1].Date.String(),
				},
			})
		}
	}
	return nil
}
