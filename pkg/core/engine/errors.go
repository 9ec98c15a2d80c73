package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/radiol/optiroster/pkg/core/model"
)

// Error kinds surfaced by the engine. Callers test with errors.Is.
var (
	// ErrConfig marks configuration errors: a missing context key for an
	// enabled rule, a negative weight, an out-of-range gap, or a reference
	// to an unknown hospital or worker.
	ErrConfig = errors.New("config error")

	// ErrDomainValidation marks invalid domain input: duplicate hospital
	// or worker names, or rules referencing unknown hospitals.
	ErrDomainValidation = errors.New("domain validation error")

	// ErrInfeasible marks a model the solver proved infeasible.
	ErrInfeasible = errors.New("infeasible model")

	// ErrSolverFailure marks a solver crash, timeout without a solution,
	// or an unbounded result.
	ErrSolverFailure = errors.New("solver failure")
)

// InfeasibleError carries the diagnostic coverage points computed by the
// variable builder: points with zero candidate workers, or — when every
// point has at least one candidate — the thinly covered points most likely
// to bind.
type InfeasibleError struct {
	Diagnostics []model.CoveragePoint
}

func (e *InfeasibleError) Error() string {
	if len(e.Diagnostics) == 0 {
		return "infeasible model"
	}
	points := make([]string, len(e.Diagnostics))
	for i, p := range e.Diagnostics {
		points[i] = p.String()
	}
	return fmt.Sprintf("infeasible model; binding coverage points: %s", strings.Join(points, ", "))
}

func (e *InfeasibleError) Unwrap() error {
	return ErrInfeasible
}
