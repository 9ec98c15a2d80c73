package engine

import (
	"fmt"
	"math"
	"strconv"

	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// NightDeviationRule balances night duty across workers.
//
// Penalties:
//   - The target is round(total night coverage points / active workers),
//     where active workers are those with at least one decision variable.
//   - Per worker, integer slacks over and under satisfy
//     nightCount - target = over - under; over + under is penalized with
//     the configured weight.
type NightDeviationRule struct {
	weight float64
}

// NewNightDeviationRule creates the night-deviation-band rule.
func NewNightDeviationRule(weight float64) *NightDeviationRule {
	return &NightDeviationRule{weight: weight}
}

func (r *NightDeviationRule) Name() string {
	return RuleNightDeviation
}

func (r *NightDeviationRule) Summary() string {
	return "Night counts stay close to the per-worker average"
}

func (r *NightDeviationRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxRequiredCoverage, CtxOptions}
}

func (r *NightDeviationRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: night deviation weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	totalNightPoints := 0
	for _, point := range s.ctx.RequiredCoverage {
		if point.Shift == model.ShiftNight {
			totalNightPoints++
		}
	}
	active := s.activeWorkers()
	if totalNightPoints == 0 || len(active) == 0 {
		return nil
	}
	target := math.Round(float64(totalNightPoints) / float64(len(active)))

	bound := int64(len(s.ctx.Days))
	for _, worker := range active {
		var nights []varHandle
		for _, handle := range s.workerVars(worker) {
			if handle.key.Shift == model.ShiftNight {
				nights = append(nights, handle)
			}
		}

		over := s.model.NewInt(0, bound)
		under := s.model.NewInt(0, bound)

		c := s.model.NewConstraint(mip.Equal, target)
		for _, handle := range nights {
			c.NewTerm(1.0, handle.v)
		}
		c.NewTerm(-1.0, over)
		c.NewTerm(1.0, under)

		s.ledger.Append(PenaltyItem{
			Terms:  []Term{{Coef: 1.0, Var: over}, {Coef: 1.0, Var: under}},
			Weight: r.weight,
			Source: r.Name(),
			Meta: map[string]string{
				"worker": worker,
				"target": strconv.Itoa(int(target)),
			},
		})
	}
	return nil
}
