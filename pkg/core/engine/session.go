package engine

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/radiol/optiroster/pkg/core/model"
)

// varHandle pairs a decision key with its solver variable. Rules reference
// variables through handles so that every rule sees the identical variable
// object the builder materialized.
type varHandle struct {
	key model.VarKey
	v   mip.Bool
}

type workerDate struct {
	worker string
	date   model.Date
}

// Session owns the MILP model, the variable map and the penalty ledger for
// the lifetime of one solve. Sessions are single-use.
type Session struct {
	ctx    *Context
	build  *BuildResult
	rules  []Rule
	model  mip.Model
	ledger *Ledger

	vars    map[model.VarKey]mip.Bool
	handles []varHandle

	byPoint      map[model.CoveragePoint][]varHandle
	byWorker     map[string][]varHandle
	byWorkerDate map[workerDate][]varHandle
}

// NewSession materializes the decision variables for a build result and
// applies every rule in registry order. The context must already be
// validated; rule requirement checks run here before any rule applies.
func NewSession(ctx *Context, build *BuildResult, rules []Rule) (*Session, error) {
	if err := validateRequirements(rules, ctx); err != nil {
		return nil, err
	}

	s := &Session{
		ctx:          ctx,
		build:        build,
		rules:        rules,
		model:        mip.NewModel(),
		ledger:       &Ledger{},
		vars:         make(map[model.VarKey]mip.Bool, len(build.Keys)),
		byPoint:      make(map[model.CoveragePoint][]varHandle),
		byWorker:     make(map[string][]varHandle),
		byWorkerDate: make(map[workerDate][]varHandle),
	}

	// Materialize one binary variable per surviving key. Keys arrive in
	// deterministic order from the builder, so variable numbering and
	// therefore constraint naming is reproducible.
	for _, key := range build.Keys {
		v := s.model.NewBool()
		s.vars[key] = v
		handle := varHandle{key: key, v: v}
		s.handles = append(s.handles, handle)
		s.byPoint[key.Point()] = append(s.byPoint[key.Point()], handle)
		s.byWorker[key.Worker] = append(s.byWorker[key.Worker], handle)
		wd := workerDate{worker: key.Worker, date: key.Date}
		s.byWorkerDate[wd] = append(s.byWorkerDate[wd], handle)
	}

	for _, rule := range rules {
		if err := rule.Apply(s); err != nil {
			return nil, err
		}
	}

	s.composeObjective()

	return s, nil
}

// Ledger exposes the session's penalty ledger.
func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// Variables returns the number of materialized decision variables.
func (s *Session) Variables() int {
	return len(s.handles)
}

// pointVars returns the handles covering one coverage point.
func (s *Session) pointVars(p model.CoveragePoint) []varHandle {
	return s.byPoint[p]
}

// workerVars returns all handles of one worker, in builder order.
func (s *Session) workerVars(worker string) []varHandle {
	return s.byWorker[worker]
}

// workerDateVars returns a worker's handles on one date, optionally
// filtered by shift kinds.
func (s *Session) workerDateVars(worker string, date model.Date, shifts ...model.ShiftKind) []varHandle {
	handles := s.byWorkerDate[workerDate{worker: worker, date: date}]
	if len(shifts) == 0 {
		return handles
	}
	var filtered []varHandle
	for _, h := range handles {
		for _, shift := range shifts {
			if h.key.Shift == shift {
				filtered = append(filtered, h)
				break
			}
		}
	}
	return filtered
}

// composeObjective builds maximize(sum of assignments minus the weighted
// penalty sum) from the variables and the ledger.
func (s *Session) composeObjective() {
	objective := s.model.Objective()
	objective.SetMaximize()
	for _, handle := range s.handles {
		objective.NewTerm(1.0, handle.v)
	}
	for _, item := range s.ledger.Items() {
		for _, term := range item.Terms {
			objective.NewTerm(-item.Weight*term.Coef, term.Var)
		}
	}
}
