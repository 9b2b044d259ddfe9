// Package validate classifies puzzles: valid, unsatisfiable, not uniquely
// solvable, or solved by a different triplet than the author declared. It
// composes the constraint encoder, a solver session, and the uniqueness
// prover into one deterministic, side-effect-free computation per puzzle.
package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/spydir/spydirwebz/internal/encode"
	"github.com/spydir/spydirwebz/internal/prove"
	"github.com/spydir/spydirwebz/pkg/puzzle"
	"github.com/spydir/spydirwebz/pkg/sat"
)

// Validator runs validations against a fixed solver backend. A fresh
// session is created per call, so one Validator may be shared across
// goroutines validating independent puzzles.
type Validator struct {
	backend sat.Backend
}

func New(backend sat.Backend) *Validator {
	return &Validator{backend: backend}
}

// Validate decides whether p is internally consistent, uniquely solvable,
// and solved by its declared solution.
//
// Structural violations return a *puzzle.MalformedError; a solver timeout
// returns sat.ErrTimeout. Both are errors, not verdicts: the caller must
// fix the input or raise the budget. Every logical outcome, including
// rejection, is a Result.
func (v *Validator) Validate(ctx context.Context, p *puzzle.Puzzle) (*puzzle.Result, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}

	enc := encode.New(p)
	res, err := prove.Uniqueness(ctx, v.backend.NewSession(), enc)
	if err != nil {
		return nil, err
	}

	if !res.Satisfiable {
		return &puzzle.Result{
			Status: puzzle.StatusUnsatisfiable,
			Explanation: fmt.Sprintf(
				"the %d clues are over-constrained: no (actor, vector, asset) triplet satisfies all of them",
				len(p.Clues)),
		}, nil
	}

	if !res.Unique {
		lines := lo.Map(res.Witnesses, func(t puzzle.Triplet, _ int) string {
			return t.String()
		})
		return &puzzle.Result{
			Status: puzzle.StatusNotUnique,
			Explanation: fmt.Sprintf(
				"the clues admit more than one triplet, e.g. %s; add clues until only one remains",
				strings.Join(lines, " and ")),
			Witnesses: res.Witnesses,
		}, nil
	}

	derived := res.Witnesses[0]
	declared := p.Solution.Triplet()
	if derived != declared {
		return &puzzle.Result{
			Status: puzzle.StatusSolutionMismatch,
			Explanation: fmt.Sprintf(
				"the clues pin down %s but the declared solution is %s",
				derived, declared),
			Declared: &declared,
			Derived:  &derived,
		}, nil
	}

	if result := checkStolenData(p, derived); result != nil {
		return result, nil
	}

	solution := p.Solution
	return &puzzle.Result{
		Status: puzzle.StatusValid,
		Explanation: fmt.Sprintf(
			"the puzzle is consistent and uniquely solvable: %s stole %s from the %s using %s",
			solution.Actor, solution.StolenData, solution.Asset, solution.Vector),
		Solution: &solution,
	}, nil
}

// checkStolenData evaluates the data-inference clues against the derived
// triplet. Each such clue reads "only attacks using vector V stole datum
// D": if V is the true vector the declared datum must be D, and if V is
// not the true vector the declared datum must not be D. When the puzzle
// carries data-inference clues but none names the true vector, the datum
// is unsupported and the puzzle is rejected. Puzzles with no data-inference
// clues leave the datum unconstrained.
func checkStolenData(p *puzzle.Puzzle, derived puzzle.Triplet) *puzzle.Result {
	inference := lo.Filter(p.Clues, func(c puzzle.Clue, _ int) bool {
		return c.Kind == puzzle.DataInference
	})
	if len(inference) == 0 {
		return nil
	}

	declared := p.Solution.StolenData
	mismatch := func(implied, reason string) *puzzle.Result {
		decl := p.Solution.Triplet()
		d := derived
		return &puzzle.Result{
			Status:        puzzle.StatusSolutionMismatch,
			Explanation:   reason,
			Declared:      &decl,
			Derived:       &d,
			DeclaredDatum: declared,
			ImpliedDatum:  implied,
		}
	}

	applicable := false
	for _, c := range inference {
		if c.Vector == derived.Vector {
			applicable = true
			if c.Data != declared {
				return mismatch(c.Data, fmt.Sprintf(
					"clue %q implies the stolen datum is %s, but the declared datum is %s",
					c.Sentence(), c.Data, declared))
			}
		} else if c.Data == declared {
			return mismatch("", fmt.Sprintf(
				"clue %q says %s is stolen only via %s, but the true vector is %s",
				c.Sentence(), c.Data, c.Vector, derived.Vector))
		}
	}
	if !applicable {
		return mismatch("", fmt.Sprintf(
			"no data-inference clue applies to the true vector %s, so the declared datum %s is unsupported",
			derived.Vector, declared))
	}
	return nil
}
