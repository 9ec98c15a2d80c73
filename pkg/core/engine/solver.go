package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// Status is the outcome of one solver invocation, in precedence order.
type Status string

const (
	StatusOptimal     Status = "Optimal"
	StatusFeasible    Status = "Feasible"
	StatusInfeasible  Status = "Infeasible"
	StatusUnbounded   Status = "Unbounded"
	StatusTimeLimit   Status = "TimeLimit"
	StatusSolverError Status = "SolverError"
)

// ResolvedPenalty is a ledger entry with its expression evaluated against
// the solution.
type ResolvedPenalty struct {
	PenaltyItem

	// Value is the numeric value of the item's linear expression.
	Value float64
}

// Cost is the item's contribution to the objective: weight times value.
func (p ResolvedPenalty) Cost() float64 {
	return p.Weight * p.Value
}

// SolveResult is the outcome of one solve: the status, the integer
// assignment, the resolved penalty ledger, and the solve wall time.
type SolveResult struct {
	Status         Status
	ObjectiveValue float64

	// Assignment maps every materialized VarKey to 0 or 1. Populated only
	// for Optimal and Feasible results.
	Assignment map[model.VarKey]int

	// Penalties are the ledger entries in insertion order with resolved
	// values. Populated only for Optimal and Feasible results.
	Penalties []ResolvedPenalty

	// SolveTime is the wall clock measured around the solve call only.
	SolveTime time.Duration

	// Diagnostics lists the builder's binding coverage point candidates.
	// Populated for Infeasible results.
	Diagnostics []model.CoveragePoint

	// keysInOrder preserves the builder's deterministic key order for
	// Assignments; the map alone cannot.
	keysInOrder []model.VarKey
}

// Assignments returns the selected VarKeys in deterministic order.
func (r *SolveResult) Assignments() []model.VarKey {
	var selected []model.VarKey
	for _, key := range r.keysInOrder {
		if r.Assignment[key] == 1 {
			selected = append(selected, key)
		}
	}
	return selected
}

// unlimitedSolveDuration stands in for "no time limit"; the solver backend
// requires a concrete duration.
const unlimitedSolveDuration = 24 * time.Hour

// Solve invokes the MILP solver on the objective composed by NewSession and
// reads back the integer assignment. The session must not be reused
// afterwards.
func (s *Session) Solve() (*SolveResult, error) {
	solver, err := mip.NewSolver(mip.Highs, s.model)
	if err != nil {
		return nil, fmt.Errorf("%w: creating solver: %v", ErrSolverFailure, err)
	}

	duration := s.ctx.Options.SolverTimeLimit
	if duration <= 0 {
		duration = unlimitedSolveDuration
	}
	opts := mip.SolveOptions{
		Duration:  duration,
		Verbosity: mip.Off,
	}

	start := time.Now()
	solution, err := solver.Solve(opts)
	elapsed := time.Since(start)

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSolverFailure, err)
	}

	result := &SolveResult{SolveTime: elapsed}

	switch {
	case solution.IsInfeasible():
		result.Status = StatusInfeasible
		result.Diagnostics = s.build.Diagnostics()
		return result, &InfeasibleError{Diagnostics: result.Diagnostics}
	case solution.IsUnbounded():
		result.Status = StatusUnbounded
		return result, fmt.Errorf("%w: solver reported an unbounded model", ErrSolverFailure)
	case !solution.HasValues():
		if s.ctx.Options.SolverTimeLimit > 0 && elapsed >= s.ctx.Options.SolverTimeLimit {
			result.Status = StatusTimeLimit
			return result, fmt.Errorf("%w: time limit of %v reached without a solution", ErrSolverFailure, s.ctx.Options.SolverTimeLimit)
		}
		result.Status = StatusSolverError
		return result, fmt.Errorf("%w: solver returned no solution", ErrSolverFailure)
	case solution.IsOptimal():
		result.Status = StatusOptimal
	default:
		result.Status = StatusFeasible
	}

	result.ObjectiveValue = solution.ObjectiveValue()
	result.Assignment = make(map[model.VarKey]int, len(s.handles))
	result.keysInOrder = make([]model.VarKey, 0, len(s.handles))
	for _, handle := range s.handles {
		value := math.Round(solution.Value(handle.v))
		if value != 0 && value != 1 {
			return nil, fmt.Errorf("%w: variable %v resolved to non-binary value %v", ErrSolverFailure, handle.key, solution.Value(handle.v))
		}
		result.Assignment[handle.key] = int(value)
		result.keysInOrder = append(result.keysInOrder, handle.key)
	}

	for _, item := range s.ledger.Items() {
		value := 0.0
		for _, term := range item.Terms {
			value += term.Coef * solution.Value(term.Var)
		}
		result.Penalties = append(result.Penalties, ResolvedPenalty{PenaltyItem: item, Value: value})
	}

	return result, nil
}
