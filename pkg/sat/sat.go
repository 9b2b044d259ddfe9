// Package sat defines the boolean-satisfiability capability the validation
// engine consumes. The engine never talks to a solver library directly; it
// asserts a Formula into a Session, checks satisfiability, and blocks
// assignments to search for alternatives. Backends plug in behind the
// Session interface, so any sound and complete propositional solver can
// serve.
package sat

import (
	"context"
	"errors"
	"fmt"
)

// ErrTimeout reports that the backend exhausted its time budget before
// reaching a verdict. It is inconclusive and must never be conflated with
// unsatisfiability.
var ErrTimeout = errors.New("solver timed out")

// Identifier values uniquely identify decision variables within the input
// to a single Session.
type Identifier string

func (id Identifier) String() string {
	return string(id)
}

// Literal is an identifier or its negation.
type Literal struct {
	ID      Identifier
	Negated bool
}

// Pos returns the positive literal for id.
func Pos(id Identifier) Literal {
	return Literal{ID: id}
}

// Neg returns the negated literal for id.
func Neg(id Identifier) Literal {
	return Literal{ID: id, Negated: true}
}

// Not returns the literal with its polarity flipped.
func (l Literal) Not() Literal {
	return Literal{ID: l.ID, Negated: !l.Negated}
}

func (l Literal) String() string {
	if l.Negated {
		return "~" + string(l.ID)
	}
	return string(l.ID)
}

// Clause is a disjunction of literals.
type Clause []Literal

// Formula is a conjunction of clauses over a declared set of decision
// variables. Variables lists every decision variable in input order,
// including any that no clause mentions; backends register them all so an
// assignment always covers the full set.
type Formula struct {
	Variables []Identifier
	Clauses   []Clause
}

// Assignment maps every decision variable of a formula to its value in a
// satisfying model.
type Assignment map[Identifier]bool

// TrueVars returns the identifiers assigned true, in the order given.
func (a Assignment) TrueVars(order []Identifier) []Identifier {
	var out []Identifier
	for _, id := range order {
		if a[id] {
			out = append(out, id)
		}
	}
	return out
}

// BlockingClause returns the negation of the full assignment over the given
// decision variables: a clause satisfied by every assignment except this
// one.
func (a Assignment) BlockingClause(order []Identifier) Clause {
	clause := make(Clause, 0, len(order))
	for _, id := range order {
		if a[id] {
			clause = append(clause, Neg(id))
		} else {
			clause = append(clause, Pos(id))
		}
	}
	return clause
}

// Session is one solving session. Constraints accumulate for the life of
// the session; each validation run owns a fresh session end to end and
// sessions are not safe for concurrent use.
type Session interface {
	// Assert adds the formula's variables and clauses permanently.
	Assert(f Formula) error

	// Check decides satisfiability of everything asserted so far. It
	// returns (model, true, nil) when satisfiable and (nil, false, nil)
	// when not. A context deadline bounds the search; exceeding it returns
	// ErrTimeout.
	Check(ctx context.Context) (Assignment, bool, error)

	// Block asserts the negation of the given assignment over the decision
	// variables, excluding it from future checks.
	Block(a Assignment) error
}

// Backend creates fresh sessions for a particular solver library.
type Backend interface {
	Name() string
	NewSession() Session
}

// DuplicateIdentifier is returned when a formula declares the same decision
// variable twice.
type DuplicateIdentifier Identifier

func (e DuplicateIdentifier) Error() string {
	return fmt.Sprintf("duplicate identifier %q in input", Identifier(e))
}
