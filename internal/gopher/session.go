// Package gopher adapts the crillab/gophersat solver to the sat.Session
// capability. It exists to prove the solver seam: validation results must
// not depend on which backend answers the satisfiability questions.
package gopher

import (
	"context"
	"fmt"

	"github.com/crillab/gophersat/solver"

	"github.com/spydir/spydirwebz/pkg/sat"
)

// Backend creates gophersat-backed sessions.
type Backend struct{}

func New() Backend {
	return Backend{}
}

func (Backend) Name() string {
	return "gophersat"
}

func (Backend) NewSession() sat.Session {
	return &session{vars: map[sat.Identifier]int{}}
}

// session numbers identifiers 1..n in input order. gophersat wants the
// whole problem up front, so clauses are staged until the first Check
// builds the solver; clauses arriving later (blocking clauses) are appended
// incrementally.
type session struct {
	inorder []sat.Identifier
	vars    map[sat.Identifier]int
	staged  [][]int
	s       *solver.Solver
}

func (s *session) Assert(f sat.Formula) error {
	for _, id := range f.Variables {
		if _, ok := s.vars[id]; ok {
			return sat.DuplicateIdentifier(id)
		}
		v := len(s.inorder) + 1
		s.vars[id] = v
		s.inorder = append(s.inorder, id)
		// Tautology registers the variable even if no clause mentions it.
		if err := s.addClause(sat.Clause{sat.Pos(id), sat.Neg(id)}); err != nil {
			return err
		}
	}
	for _, clause := range f.Clauses {
		if err := s.addClause(clause); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) addClause(clause sat.Clause) error {
	ints := make([]int, 0, len(clause))
	for _, lit := range clause {
		v, ok := s.vars[lit.ID]
		if !ok {
			return fmt.Errorf("variable %q referenced but not provided", lit.ID)
		}
		if lit.Negated {
			v = -v
		}
		ints = append(ints, v)
	}
	if s.s == nil {
		s.staged = append(s.staged, ints)
		return nil
	}
	lits := make([]solver.Lit, len(ints))
	for i, v := range ints {
		if v < 0 {
			lits[i] = solver.IntToLit(int32(-v)).Negation()
		} else {
			lits[i] = solver.IntToLit(int32(v))
		}
	}
	s.s.AppendClause(solver.NewClause(lits))
	return nil
}

func (s *session) Check(ctx context.Context) (sat.Assignment, bool, error) {
	// gophersat has no in-flight budget hook; the deadline is enforced at
	// the call boundary, which is where the prover's repeated checks land.
	if err := ctx.Err(); err != nil {
		return nil, false, sat.ErrTimeout
	}
	if s.s == nil {
		s.s = solver.New(solver.ParseSlice(s.staged))
		s.staged = nil
	}
	if s.s.Solve() != solver.Sat {
		return nil, false, nil
	}
	m := s.s.Model()
	model := make(sat.Assignment, len(s.inorder))
	for _, id := range s.inorder {
		model[id] = m[s.vars[id]-1]
	}
	return model, true, nil
}

func (s *session) Block(a sat.Assignment) error {
	return s.addClause(a.BlockingClause(s.inorder))
}
