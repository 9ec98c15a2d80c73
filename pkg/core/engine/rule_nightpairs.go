package engine

import (
	"fmt"
	"strconv"

	"github.com/radiol/optiroster/pkg/core/model"
)

// NightPairsRule encourages night gaps wider than the hard minimum.
//
// Penalties, per worker:
//   - For every pair of dates d1 < d2 with minGap <= gap < window on which
//     the worker could take nights, a binary slack indicates both nights
//     were taken; the penalty weight is weight * (window - gap).
//   - Pairs below minGap are excluded by the hard spacing rule, pairs at or
//     beyond the window carry no penalty.
type NightPairsRule struct {
	minGap int
	window int
	weight float64
}

// NewNightPairsRule creates the night-spacing-pairs rule.
func NewNightPairsRule(minGap, window int, weight float64) *NightPairsRule {
	return &NightPairsRule{minGap: minGap, window: window, weight: weight}
}

func (r *NightPairsRule) Name() string {
	return RuleNightPairs
}

func (r *NightPairsRule) Summary() string {
	return "Night shifts of one worker are preferably spread wide apart"
}

func (r *NightPairsRule) Requires() []ContextKey {
	return []ContextKey{CtxWorkers, CtxDays, CtxOptions}
}

func (r *NightPairsRule) Apply(s *Session) error {
	if r.weight < 0 {
		return fmt.Errorf("%w: night spacing weight must be non-negative, got %v", ErrConfig, r.weight)
	}

	for _, worker := range s.ctx.Workers {
		for i := 0; i < len(s.ctx.Days); i++ {
			first := s.workerDateVars(worker.Name, s.ctx.Days[i].Date, model.ShiftNight)
			if len(first) == 0 {
				continue
			}
			for j := i + 1; j < len(s.ctx.Days); j++ {
				gap := s.ctx.Days[i].Date.DaysUntil(s.ctx.Days[j].Date)
				if gap >= r.window {
					break
				}
				if gap < r.minGap {
					continue
				}
				second := s.workerDateVars(worker.Name, s.ctx.Days[j].Date, model.ShiftNight)
				if len(second) == 0 {
					continue
				}

				slack := s.andIndicator(first, second)
				s.ledger.Append(PenaltyItem{
					Terms:  []Term{{Coef: 1.0, Var: slack}},
					Weight: r.weight * float64(r.window-gap),
					Source: r.Name(),
					Meta: map[string]string{
						"worker": worker.Name,
						"first":  s.ctx.Days[i].Date.String(),
						"second": s.ctx.Days[j].Date.String(),
						"gap":    strconv.Itoa(gap),
					},
				})
			}
		}
	}
	return nil
}
