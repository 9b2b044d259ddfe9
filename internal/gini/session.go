// Package gini adapts the go-air/gini solver to the sat.Session capability.
// It is the default backend: gini is sound and complete for propositional
// logic and supports the incremental clause addition the uniqueness prover
// relies on.
package gini

import (
	"context"
	"fmt"
	"time"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/spydir/spydirwebz/pkg/sat"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// Backend creates gini-backed sessions.
type Backend struct{}

func New() Backend {
	return Backend{}
}

func (Backend) Name() string {
	return "gini"
}

func (Backend) NewSession() sat.Session {
	return &session{
		g:    gini.New(),
		lits: map[sat.Identifier]z.Lit{},
	}
}

// session performs translation between formula identifiers and the literals
// that appear in gini's clause database.
type session struct {
	g       *gini.Gini
	inorder []sat.Identifier
	lits    map[sat.Identifier]z.Lit
}

func (s *session) Assert(f sat.Formula) error {
	for _, id := range f.Variables {
		if _, ok := s.lits[id]; ok {
			return sat.DuplicateIdentifier(id)
		}
		m := z.Var(len(s.inorder) + 1).Pos()
		s.lits[id] = m
		s.inorder = append(s.inorder, id)
		// Tautology grows the solver's dimensions so Value stays in range
		// for variables no clause mentions.
		s.g.Add(m)
		s.g.Add(m.Not())
		s.g.Add(z.LitNull)
	}
	for _, clause := range f.Clauses {
		if err := s.addClause(clause); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) addClause(clause sat.Clause) error {
	ms := make([]z.Lit, 0, len(clause))
	for _, lit := range clause {
		m, ok := s.lits[lit.ID]
		if !ok {
			return fmt.Errorf("variable %q referenced but not provided", lit.ID)
		}
		if lit.Negated {
			m = m.Not()
		}
		ms = append(ms, m)
	}
	for _, m := range ms {
		s.g.Add(m)
	}
	s.g.Add(z.LitNull)
	return nil
}

func (s *session) Check(ctx context.Context) (sat.Assignment, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, sat.ErrTimeout
	}

	var res int
	if deadline, ok := ctx.Deadline(); ok {
		budget := time.Until(deadline)
		if budget <= 0 {
			return nil, false, sat.ErrTimeout
		}
		res = s.g.GoSolve().Try(budget)
	} else {
		res = s.g.Solve()
	}

	switch res {
	case satisfiable:
		model := make(sat.Assignment, len(s.inorder))
		for _, id := range s.inorder {
			model[id] = s.g.Value(s.lits[id])
		}
		return model, true, nil
	case unsatisfiable:
		return nil, false, nil
	default:
		return nil, false, sat.ErrTimeout
	}
}

func (s *session) Block(a sat.Assignment) error {
	return s.addClause(a.BlockingClause(s.inorder))
}
