package gini_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spydir/spydirwebz/internal/gini"
	"github.com/spydir/spydirwebz/pkg/sat"
)

func TestCheck(t *testing.T) {
	type tc struct {
		Name    string
		Formula sat.Formula
		Sat     bool
		Model   sat.Assignment
	}

	for _, tt := range []tc{
		{
			Name: "unit propagation",
			Formula: sat.Formula{
				Variables: []sat.Identifier{"a", "b"},
				Clauses: []sat.Clause{
					{sat.Pos("a"), sat.Pos("b")},
					{sat.Neg("a")},
				},
			},
			Sat:   true,
			Model: sat.Assignment{"a": false, "b": true},
		},
		{
			Name: "contradiction",
			Formula: sat.Formula{
				Variables: []sat.Identifier{"a"},
				Clauses: []sat.Clause{
					{sat.Pos("a")},
					{sat.Neg("a")},
				},
			},
		},
		{
			Name: "unconstrained variable still gets a value",
			Formula: sat.Formula{
				Variables: []sat.Identifier{"a", "b"},
				Clauses:   []sat.Clause{{sat.Pos("a")}},
			},
			Sat: true,
		},
	} {
		t.Run(tt.Name, func(t *testing.T) {
			s := gini.New().NewSession()
			require.NoError(t, s.Assert(tt.Formula))

			model, ok, err := s.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.Sat, ok)
			if tt.Model != nil {
				assert.Equal(t, tt.Model, model)
			}
			if tt.Sat {
				assert.Len(t, model, len(tt.Formula.Variables))
			}
		})
	}
}

func TestBlockExhaustsModels(t *testing.T) {
	s := gini.New().NewSession()
	require.NoError(t, s.Assert(sat.Formula{
		Variables: []sat.Identifier{"a", "b"},
		Clauses: []sat.Clause{
			{sat.Pos("a"), sat.Pos("b")},
			{sat.Neg("a"), sat.Neg("b")},
		},
	}))

	seen := map[string]bool{}
	for {
		model, ok, err := s.Check(context.Background())
		require.NoError(t, err)
		if !ok {
			break
		}
		key := ""
		for _, id := range []sat.Identifier{"a", "b"} {
			if model[id] {
				key += string(id)
			}
		}
		assert.False(t, seen[key], "model %q found twice after blocking", key)
		seen[key] = true
		require.NoError(t, s.Block(model))
	}
	assert.Len(t, seen, 2)
}

func TestErrors(t *testing.T) {
	s := gini.New().NewSession()
	assert.Equal(t, sat.DuplicateIdentifier("a"), s.Assert(sat.Formula{
		Variables: []sat.Identifier{"a", "a"},
	}))

	s = gini.New().NewSession()
	assert.ErrorContains(t, s.Assert(sat.Formula{
		Variables: []sat.Identifier{"a"},
		Clauses:   []sat.Clause{{sat.Pos("ghost")}},
	}), `"ghost" referenced but not provided`)
}

func TestExpiredDeadline(t *testing.T) {
	s := gini.New().NewSession()
	require.NoError(t, s.Assert(sat.Formula{
		Variables: []sat.Identifier{"a"},
		Clauses:   []sat.Clause{{sat.Pos("a")}},
	}))

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, _, err := s.Check(ctx)
	assert.ErrorIs(t, err, sat.ErrTimeout)
}

func TestCancelledContext(t *testing.T) {
	s := gini.New().NewSession()
	require.NoError(t, s.Assert(sat.Formula{
		Variables: []sat.Identifier{"a"},
		Clauses:   []sat.Clause{{sat.Pos("a")}},
	}))

	// Cancellation without a deadline must still stop the check.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := s.Check(ctx)
	assert.ErrorIs(t, err, sat.ErrTimeout)
}
