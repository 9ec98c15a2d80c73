package engine

import "github.com/nextmv-io/sdk/mip"

// Linearization helpers for AND/OR of binary expressions. Several rules
// need an indicator for "both of these happened"; the algebra lives here
// once instead of being inlined per rule.
//
// Each input expression must itself be bounded above by 1 (a single binary
// variable, or a sum that another constraint keeps at most 1).

// andIndicator adds a binary y with
//
//	y >= a + b - 1
//	y <= a
//	y <= b
//
// so that y equals 1 exactly when both expressions equal 1.
func (s *Session) andIndicator(a, b []varHandle) mip.Bool {
	y := s.model.NewBool()

	lower := s.model.NewConstraint(mip.GreaterThanOrEqual, -1.0)
	lower.NewTerm(1.0, y)
	for _, h := range a {
		lower.NewTerm(-1.0, h.v)
	}
	for _, h := range b {
		lower.NewTerm(-1.0, h.v)
	}

	upperA := s.model.NewConstraint(mip.LessThanOrEqual, 0.0)
	upperA.NewTerm(1.0, y)
	for _, h := range a {
		upperA.NewTerm(-1.0, h.v)
	}

	upperB := s.model.NewConstraint(mip.LessThanOrEqual, 0.0)
	upperB.NewTerm(1.0, y)
	for _, h := range b {
		upperB.NewTerm(-1.0, h.v)
	}

	return y
}

// orIndicator adds a binary y with
//
//	y <= a + b
//	y >= a
//	y >= b
//
// so that y equals 1 exactly when at least one expression equals 1.
func (s *Session) orIndicator(a, b []varHandle) mip.Bool {
	y := s.model.NewBool()

	upper := s.model.NewConstraint(mip.LessThanOrEqual, 0.0)
	upper.NewTerm(1.0, y)
	for _, h := range a {
		upper.NewTerm(-1.0, h.v)
	}
	for _, h := range b {
		upper.NewTerm(-1.0, h.v)
	}

	lowerA := s.model.NewConstraint(mip.GreaterThanOrEqual, 0.0)
	lowerA.NewTerm(1.0, y)
	for _, h := range a {
		lowerA.NewTerm(-1.0, h.v)
	}

	lowerB := s.model.NewConstraint(mip.GreaterThanOrEqual, 0.0)
	lowerB.NewTerm(1.0, y)
	for _, h := range b {
		lowerB.NewTerm(-1.0, h.v)
	}

	return y
}

// complementIndicator adds a binary u with u + sum(handles) = 1, so that u
// equals 1 exactly when none of the handles is selected. The handle sum
// must be at most 1.
func (s *Session) complementIndicator(handles []varHandle) mip.Bool {
	u := s.model.NewBool()
	c := s.model.NewConstraint(mip.Equal, 1.0)
	c.NewTerm(1.0, u)
	for _, h := range handles {
		c.NewTerm(1.0, h.v)
	}
	return u
}
