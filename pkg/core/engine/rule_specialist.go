package engine

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// SpecialistNightRule requires a specialist for university hospital nights
// closing a holiday run.
//
// Constraints:
//   - For every university hospital and date that is the last day of a
//     holiday run (in that hospital's calendar view) with a Night coverage
//     point, the sum of the non-specialist variables on that point is 0.
//   - A point whose only candidates are non-specialists becomes
//     unsatisfiable together with the coverage rule.
type SpecialistNightRule struct{}

// NewSpecialistNightRule creates the
// university-holiday-last-night-needs-specialist rule.
func NewSpecialistNightRule() *SpecialistNightRule {
	return &SpecialistNightRule{}
}

func (r *SpecialistNightRule) Name() string {
	return RuleSpecialistNight
}

func (r *SpecialistNightRule) Summary() string {
	return "University nights closing a holiday run are staffed by specialists"
}

func (r *SpecialistNightRule) Requires() []ContextKey {
	return []ContextKey{CtxHospitals, CtxWorkers, CtxDays, CtxRequiredCoverage}
}

func (r *SpecialistNightRule) Apply(s *Session) error {
	specialists := make(map[string]bool, len(s.ctx.Workers))
	for _, worker := range s.ctx.Workers {
		specialists[worker.Name] = worker.IsSpecialist
	}

	for _, hospital := range s.ctx.Hospitals {
		if !hospital.IsUniversity {
			continue
		}
		lastOfRun := make(map[model.Date]bool)
		for _, day := range s.ctx.DaysFor(hospital.Name) {
			if day.IsLastOfHolidayRun {
				lastOfRun[day.Date] = true
			}
		}

		for _, point := range s.ctx.RequiredCoverage {
			if point.Hospital != hospital.Name || point.Shift != model.ShiftNight || !lastOfRun[point.Date] {
				continue
			}
			var nonSpecialists []varHandle
			for _, handle := range s.pointVars(point) {
				if !specialists[handle.key.Worker] {
					nonSpecialists = append(nonSpecialists, handle)
				}
			}
			if len(nonSpecialists) == 0 {
				continue
			}
			c := s.model.NewConstraint(mip.Equal, 0.0)
			for _, handle := range nonSpecialists {
				c.NewTerm(1.0, handle.v)
			}
		}
	}
	return nil
}
