package engine

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// WeekdayBalanceRule spreads non-night duty evenly over workers per weekday.
//
// Penalties, per (worker, weekday):
//   - Let c be the worker's count of non-night variables selected on that
//     weekday, and mean the weekday's non-night coverage divided by the
//     number of active workers. Continuous slacks over and under satisfy
//     c - mean = over - under; over + under is penalized with the
//     configured weight.
type WeekdayBalanceRule struct {
	weight float64
}

// NewWeekdayBalanceRule creates the weekday-balance-non-night rule.
func NewWeekdayBalanceRule(weight float64) *WeekdayBalanceRule {
	return &WeekdayBalanceRule{weight: weight}
}

func (r *WeekdayBalanceRule) Name() string {
	return RuleWeekdayBalance
}

func (r *WeekdayBalanceRule) Summary() string {
	return "Non-night duty is balanced across workers per weekday"
}

func (r *WeekdayBalanceRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxRequiredCoverage, CtxOptions}
}

func (r *WeekdayBalanceRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: weekday balance weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	active := s.activeWorkers()
	if len(active) == 0 {
		return nil
	}

	// Non-night coverage per weekday, for the per-worker mean.
	pointsPerWeekday := make(map[time.Weekday]int)
	for _, point := range s.ctx.RequiredCoverage {
		if point.Shift != model.ShiftNight {
			pointsPerWeekday[point.Date.Weekday()]++
		}
	}

	weekdays := []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}

	bound := float64(len(s.ctx.Days))
	for _, weekday := range weekdays {
		total := pointsPerWeekday[weekday]
		if total == 0 {
			continue
		}
		mean := float64(total) / float64(len(active))

		for _, worker := range active {
			var nonNights []varHandle
			for _, handle := range s.workerVars(worker) {
				if handle.key.Shift != model.ShiftNight && handle.key.Date.Weekday() == weekday {
					nonNights = append(nonNights, handle)
				}
			}

			over := s.model.NewFloat(0, bound)
			under := s.model.NewFloat(0, bound)

			c := s.model.NewConstraint(mip.Equal, mean)
			for _, handle := range nonNights {
				c.NewTerm(1.0, handle.v)
			}
			c.NewTerm(-1.0, over)
			c.NewTerm(1.0, under)

			s.ledger.Append(PenaltyItem{
				Terms:  []Term{{Coef: 1.0, Var: over}, {Coef: 1.0, Var: under}},
				Weight: r.weight,
				Source: r.Name(),
				Meta: map[string]string{
					"worker":  worker,
					"weekday": weekday.String(),
				},
			})
		}
	}
	return nil
}
