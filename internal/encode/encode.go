// Package encode translates a puzzle's element lists and clues into a
// boolean formula over triplet indicator variables. The formula's
// satisfying assignments correspond exactly to the (actor, vector, asset)
// triplets consistent with the clues.
package encode

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/spydir/spydirwebz/pkg/puzzle"
	"github.com/spydir/spydirwebz/pkg/sat"
)

// Encoding is the formula for one puzzle plus the table mapping decision
// variables back to triplets.
type Encoding struct {
	Formula  sat.Formula
	triplets map[sat.Identifier]puzzle.Triplet
}

// New builds the encoding for p. Identifiers are derived from element list
// positions, so a fixed puzzle value always produces the same formula.
//
// The exactly-one constraint is the pairwise encoding: one at-least-one
// clause over all indicators and a binary at-most-one clause per indicator
// pair. With at most 6 elements per category that is at most 216 variables,
// well inside the range where pairwise stays cheap.
func New(p *puzzle.Puzzle) *Encoding {
	e := &Encoding{
		triplets: make(map[sat.Identifier]puzzle.Triplet, len(p.Actors)*len(p.Vectors)*len(p.Assets)),
	}

	index := make(map[puzzle.Triplet]sat.Identifier, len(e.triplets))
	for i, actor := range p.Actors {
		for j, vector := range p.Vectors {
			for k, asset := range p.Assets {
				id := sat.Identifier(fmt.Sprintf("x/%d/%d/%d", i, j, k))
				t := puzzle.Triplet{Actor: actor, Vector: vector, Asset: asset}
				e.Formula.Variables = append(e.Formula.Variables, id)
				e.triplets[id] = t
				index[t] = id
			}
		}
	}
	forbid := func(t puzzle.Triplet) {
		e.Formula.Clauses = append(e.Formula.Clauses, sat.Clause{sat.Neg(index[t])})
	}

	// Exactly one triplet is true.
	atLeastOne := lo.Map(e.Formula.Variables, func(id sat.Identifier, _ int) sat.Literal {
		return sat.Pos(id)
	})
	e.Formula.Clauses = append(e.Formula.Clauses, atLeastOne)
	for i, a := range e.Formula.Variables {
		for _, b := range e.Formula.Variables[i+1:] {
			e.Formula.Clauses = append(e.Formula.Clauses, sat.Clause{sat.Neg(a), sat.Neg(b)})
		}
	}

	for _, clue := range p.Clues {
		switch clue.Kind {
		case puzzle.Negation:
			// The actor did not use the vector, whatever the asset.
			for _, asset := range p.Assets {
				forbid(puzzle.Triplet{Actor: clue.Actor, Vector: clue.Vector, Asset: asset})
			}
		case puzzle.Affirmative:
			// The vector was in fact used against this asset: some actor's
			// (a, V, S) triplet is the true one. With exactly-one in force
			// this also rules out every other vector and asset.
			e.Formula.Clauses = append(e.Formula.Clauses, lo.Map(p.Actors, func(actor string, _ int) sat.Literal {
				return sat.Pos(index[puzzle.Triplet{Actor: actor, Vector: clue.Vector, Asset: clue.Asset}])
			}))
		case puzzle.Relational:
			// Whoever used the vector did not access the asset.
			for _, actor := range p.Actors {
				forbid(puzzle.Triplet{Actor: actor, Vector: clue.Vector, Asset: clue.Asset})
			}
		case puzzle.Conditional:
			// If this actor used this vector, the asset must be this one.
			for _, asset := range p.Assets {
				if asset == clue.Asset {
					continue
				}
				forbid(puzzle.Triplet{Actor: clue.Actor, Vector: clue.Vector, Asset: asset})
			}
		case puzzle.DataInference:
			// Constrains the stolen datum, not the triplet space; checked
			// against the derived triplet after solving.
		}
	}
	return e
}

// Triplet returns the triplet a decision variable stands for.
func (e *Encoding) Triplet(id sat.Identifier) (puzzle.Triplet, bool) {
	t, ok := e.triplets[id]
	return t, ok
}

// Decode extracts the single true triplet from a satisfying assignment.
func (e *Encoding) Decode(a sat.Assignment) (puzzle.Triplet, error) {
	ids := a.TrueVars(e.Formula.Variables)
	if len(ids) != 1 {
		return puzzle.Triplet{}, fmt.Errorf("assignment has %d true triplets, want exactly 1", len(ids))
	}
	t, ok := e.triplets[ids[0]]
	if !ok {
		return puzzle.Triplet{}, fmt.Errorf("no triplet corresponding to %s", ids[0])
	}
	return t, nil
}
