package engine

import (
	"fmt"
	"sort"

	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// CapsRule bounds how often a worker serves at each hospital.
//
// Constraints:
//   - For each (worker, hospital) with a configured cap, the sum of that
//     worker's variables at that hospital over all dates and shifts is at
//     most the cap.
//   - Pairs without a cap are unbounded.
//
// A negative cap is a fatal configuration error.
type CapsRule struct{}

// NewCapsRule creates the per-worker-per-hospital-cap rule.
func NewCapsRule() *CapsRule {
	return &CapsRule{}
}

func (r *CapsRule) Name() string {
	return RuleCaps
}

func (r *CapsRule) Summary() string {
	return "Workers stay within their per-hospital monthly caps"
}

func (r *CapsRule) Requires() []ContextKey {
	return []ContextKey{CtxCaps}
}

func (r *CapsRule) Apply(s *Session) error {
	keys := make([]model.CapKey, 0, len(s.ctx.Caps))
	for key := range s.ctx.Caps {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Worker != b.Worker {
			return a.Worker < b.Worker
		}
		return a.Hospital < b.Hospital
	})

	for _, key := range keys {
		cap := s.ctx.Caps[key]
		if cap < 0 {
			return fmt.Errorf("%w: cap for worker %q at hospital %q must be non-negative, got %d",
				ErrConfig, key.Worker, key.Hospital, cap)
		}

		var handles []varHandle
		for _, handle := range s.workerVars(key.Worker) {
			if handle.key.Hospital == key.Hospital {
				handles = append(handles, handle)
			}
		}
		if len(handles) == 0 {
			continue
		}

		c := s.model.NewConstraint(mip.LessThanOrEqual, float64(cap))
		for _, handle := range handles {
			c.NewTerm(1.0, handle.v)
		}
	}
	return nil
}
