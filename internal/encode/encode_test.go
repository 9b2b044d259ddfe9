package encode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spydir/spydirwebz/internal/encode"
	"github.com/spydir/spydirwebz/pkg/puzzle"
	"github.com/spydir/spydirwebz/pkg/sat"
)

func testPuzzle(clues ...puzzle.Clue) *puzzle.Puzzle {
	return &puzzle.Puzzle{
		Actors:     []string{"A1", "A2", "A3"},
		Vectors:    []string{"V1", "V2", "V3"},
		Assets:     []string{"S1", "S2", "S3"},
		StolenData: []string{"D1", "D2", "D3"},
		Solution:   puzzle.Solution{Actor: "A1", Vector: "V1", Asset: "S1", StolenData: "D1"},
		Clues:      clues,
	}
}

// admitted evaluates the formula by hand over every single-triplet
// assignment, independent of any solver backend.
func admitted(t *testing.T, p *puzzle.Puzzle) []puzzle.Triplet {
	t.Helper()
	enc := encode.New(p)

	var out []puzzle.Triplet
	for _, trueID := range enc.Formula.Variables {
		a := make(sat.Assignment, len(enc.Formula.Variables))
		for _, id := range enc.Formula.Variables {
			a[id] = id == trueID
		}
		ok := true
		for _, clause := range enc.Formula.Clauses {
			holds := false
			for _, lit := range clause {
				if a[lit.ID] != lit.Negated {
					holds = true
					break
				}
			}
			if !holds {
				ok = false
				break
			}
		}
		if ok {
			trip, found := enc.Triplet(trueID)
			require.True(t, found)
			out = append(out, trip)
		}
	}
	return out
}

func TestClueEncoding(t *testing.T) {
	type tc struct {
		Name     string
		Clues    []puzzle.Clue
		Admitted int
		Excluded []puzzle.Triplet
	}

	for _, tt := range []tc{
		{
			Name:     "no clues admit the full product",
			Admitted: 27,
		},
		{
			Name:     "negation forbids the actor-vector pair for every asset",
			Clues:    []puzzle.Clue{{Kind: puzzle.Negation, Actor: "A1", Vector: "V2"}},
			Admitted: 24,
			Excluded: []puzzle.Triplet{
				{Actor: "A1", Vector: "V2", Asset: "S1"},
				{Actor: "A1", Vector: "V2", Asset: "S2"},
				{Actor: "A1", Vector: "V2", Asset: "S3"},
			},
		},
		{
			Name:     "affirmative asserts the vector-asset link was used",
			Clues:    []puzzle.Clue{{Kind: puzzle.Affirmative, Vector: "V1", Asset: "S2"}},
			Admitted: 3, // one per actor; every other vector and asset is out
			Excluded: []puzzle.Triplet{
				{Actor: "A1", Vector: "V1", Asset: "S1"},
				{Actor: "A2", Vector: "V1", Asset: "S3"},
				{Actor: "A1", Vector: "V2", Asset: "S2"},
				{Actor: "A3", Vector: "V3", Asset: "S1"},
			},
		},
		{
			Name:     "relational forbids the vector-asset pair for every actor",
			Clues:    []puzzle.Clue{{Kind: puzzle.Relational, Vector: "V1", Asset: "S2"}},
			Admitted: 24,
			Excluded: []puzzle.Triplet{
				{Actor: "A1", Vector: "V1", Asset: "S2"},
				{Actor: "A2", Vector: "V1", Asset: "S2"},
				{Actor: "A3", Vector: "V1", Asset: "S2"},
			},
		},
		{
			Name:     "conditional binds the asset only for the named actor",
			Clues:    []puzzle.Clue{{Kind: puzzle.Conditional, Actor: "A2", Vector: "V3", Asset: "S3"}},
			Admitted: 25,
			Excluded: []puzzle.Triplet{
				{Actor: "A2", Vector: "V3", Asset: "S1"},
				{Actor: "A2", Vector: "V3", Asset: "S2"},
			},
		},
		{
			Name:     "data-inference contributes no triplet clauses",
			Clues:    []puzzle.Clue{{Kind: puzzle.DataInference, Vector: "V1", Data: "D1"}},
			Admitted: 27,
		},
		{
			Name: "contradictory affirmative and relational admit nothing",
			Clues: []puzzle.Clue{
				{Kind: puzzle.Affirmative, Vector: "V1", Asset: "S1"},
				{Kind: puzzle.Relational, Vector: "V1", Asset: "S1"},
			},
			Admitted: 0, // V1 must hit S1 and must not: no triplet survives
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			got := admitted(t, testPuzzle(tt.Clues...))
			assert.Len(t, got, tt.Admitted)
			for _, excluded := range tt.Excluded {
				assert.NotContains(t, got, excluded)
			}
		})
	}
}

func TestAffirmativeKeepsBoundPairOnly(t *testing.T) {
	got := admitted(t, testPuzzle(puzzle.Clue{Kind: puzzle.Affirmative, Vector: "V1", Asset: "S2"}))
	require.NotEmpty(t, got)
	for _, trip := range got {
		assert.Equal(t, "V1", trip.Vector)
		assert.Equal(t, "S2", trip.Asset)
	}
}

func TestDeterminism(t *testing.T) {
	p := testPuzzle(
		puzzle.Clue{Kind: puzzle.Negation, Actor: "A1", Vector: "V1"},
		puzzle.Clue{Kind: puzzle.Conditional, Actor: "A2", Vector: "V2", Asset: "S2"},
	)
	assert.Equal(t, encode.New(p).Formula, encode.New(p).Formula)
}

func TestExactlyOneClauseShape(t *testing.T) {
	enc := encode.New(testPuzzle())

	n := len(enc.Formula.Variables)
	assert.Equal(t, 27, n)
	// One at-least-one clause plus a binary clause per variable pair.
	assert.Len(t, enc.Formula.Clauses, 1+n*(n-1)/2)
}

func TestDecode(t *testing.T) {
	enc := encode.New(testPuzzle())

	a := make(sat.Assignment)
	for _, id := range enc.Formula.Variables {
		a[id] = false
	}

	_, err := enc.Decode(a)
	assert.ErrorContains(t, err, "0 true triplets")

	a[enc.Formula.Variables[0]] = true
	trip, err := enc.Decode(a)
	require.NoError(t, err)
	assert.Equal(t, puzzle.Triplet{Actor: "A1", Vector: "V1", Asset: "S1"}, trip)

	a[enc.Formula.Variables[1]] = true
	_, err = enc.Decode(a)
	assert.ErrorContains(t, err, "2 true triplets")
}
