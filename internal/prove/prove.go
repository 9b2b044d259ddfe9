// Package prove decides whether an encoded puzzle has zero, one, or more
// satisfying triplets. Two solver checks suffice: one to find a solution,
// one after blocking it to look for a second. Nothing ever enumerates the
// whole solution space.
package prove

import (
	"context"
	"fmt"

	"github.com/spydir/spydirwebz/internal/encode"
	"github.com/spydir/spydirwebz/pkg/puzzle"
	"github.com/spydir/spydirwebz/pkg/sat"
)

// Result is the uniqueness verdict. Witnesses holds the found triplet when
// the formula is satisfiable, and a second distinct triplet when it is not
// unique.
type Result struct {
	Satisfiable bool
	Unique      bool
	Witnesses   []puzzle.Triplet
}

// Uniqueness loads the encoding into a fresh session and runs the
// two-check protocol. The session must be empty; it is consumed by the
// call and must not be reused afterwards.
func Uniqueness(ctx context.Context, session sat.Session, enc *encode.Encoding) (Result, error) {
	if err := session.Assert(enc.Formula); err != nil {
		return Result{}, fmt.Errorf("assert formula: %w", err)
	}

	first, ok, err := session.Check(ctx)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, nil
	}
	c1, err := enc.Decode(first)
	if err != nil {
		return Result{}, err
	}

	if err := session.Block(first); err != nil {
		return Result{}, fmt.Errorf("block assignment: %w", err)
	}
	second, ok, err := session.Check(ctx)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{Satisfiable: true, Unique: true, Witnesses: []puzzle.Triplet{c1}}, nil
	}
	c2, err := enc.Decode(second)
	if err != nil {
		return Result{}, err
	}
	return Result{Satisfiable: true, Witnesses: []puzzle.Triplet{c1, c2}}, nil
}
