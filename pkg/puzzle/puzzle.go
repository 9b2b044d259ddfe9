// Package puzzle defines the value types for cyber-heist logic puzzles:
// the element lists a puzzle draws from, the clues constraining them, the
// declared solution, and the result record produced by validation.
//
// Values in this package are constructed wholesale, checked once, and never
// mutated. Validation borrows a Puzzle and returns an owned Result with no
// back-references.
package puzzle

import (
	"fmt"
)

// Difficulty labels a puzzle for presentation and corpus layout. It has no
// bearing on validation.
type Difficulty string

const (
	Easy       Difficulty = "easy"
	Medium     Difficulty = "medium"
	Impossible Difficulty = "impossible"
)

// Difficulties lists the accepted difficulty labels in display order.
var Difficulties = []Difficulty{Easy, Medium, Impossible}

// Known reports whether d is one of the accepted labels.
func (d Difficulty) Known() bool {
	for _, k := range Difficulties {
		if d == k {
			return true
		}
	}
	return false
}

// Bounds on the size of each element category.
const (
	MinElements = 3
	MaxElements = 6
)

// Triplet is an (Actor, Vector, Asset) combination, the unknown a puzzle
// asks the solver to determine.
type Triplet struct {
	Actor  string `json:"actor" yaml:"actor"`
	Vector string `json:"vector" yaml:"vector"`
	Asset  string `json:"asset" yaml:"asset"`
}

func (t Triplet) String() string {
	return fmt.Sprintf("(%s, %s, %s)", t.Actor, t.Vector, t.Asset)
}

// Solution is the author-declared answer: a triplet plus the stolen datum.
type Solution struct {
	Actor      string `json:"actor" yaml:"actor"`
	Vector     string `json:"vector" yaml:"vector"`
	Asset      string `json:"asset" yaml:"asset"`
	StolenData string `json:"stolen_data" yaml:"stolen_data"`
}

// Triplet returns the solution's triplet portion.
func (s Solution) Triplet() Triplet {
	return Triplet{Actor: s.Actor, Vector: s.Vector, Asset: s.Asset}
}

// Puzzle is a complete puzzle instance: four element lists, an ordered clue
// list, the declared solution, and authoring metadata.
type Puzzle struct {
	Title      string     `json:"title,omitempty" yaml:"title,omitempty"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	Author     string     `json:"author,omitempty" yaml:"author,omitempty"`
	Actors     []string   `json:"actors" yaml:"actors"`
	Vectors    []string   `json:"vectors" yaml:"vectors"`
	Assets     []string   `json:"assets" yaml:"assets"`
	StolenData []string   `json:"stolen_data" yaml:"stolen_data"`
	Solution   Solution   `json:"solution" yaml:"solution"`
	Clues      []Clue     `json:"clues" yaml:"clues"`
}

// MalformedError reports a structural invariant violation: wrong element
// counts, duplicates within a category, or a clue or solution referencing
// an element absent from its list. It is fatal to the current validation
// call; the input must be fixed.
type MalformedError struct {
	Reason string
}

func (e *MalformedError) Error() string {
	return "malformed puzzle: " + e.Reason
}

func malformedf(format string, args ...any) *MalformedError {
	return &MalformedError{Reason: fmt.Sprintf(format, args...)}
}

// Check verifies every structural invariant and returns a *MalformedError
// describing the first violation found, or nil. It is called by the codec
// after decoding and again by the validator before solving.
func (p *Puzzle) Check() error {
	categories := []struct {
		name  string
		items []string
	}{
		{"actors", p.Actors},
		{"vectors", p.Vectors},
		{"assets", p.Assets},
		{"stolen_data", p.StolenData},
	}
	for _, cat := range categories {
		if n := len(cat.items); n < MinElements || n > MaxElements {
			return malformedf("%s has %d items, want %d-%d", cat.name, n, MinElements, MaxElements)
		}
		seen := make(map[string]struct{}, len(cat.items))
		for _, item := range cat.items {
			if _, ok := seen[item]; ok {
				return malformedf("duplicate %q in %s", item, cat.name)
			}
			seen[item] = struct{}{}
		}
	}
	if p.Difficulty != "" && !p.Difficulty.Known() {
		return malformedf("unknown difficulty %q", p.Difficulty)
	}
	for i, clue := range p.Clues {
		if err := clue.check(p); err != nil {
			return malformedf("clue %d: %v", i+1, err)
		}
	}
	if !contains(p.Actors, p.Solution.Actor) {
		return malformedf("solution actor %q not in actors", p.Solution.Actor)
	}
	if !contains(p.Vectors, p.Solution.Vector) {
		return malformedf("solution vector %q not in vectors", p.Solution.Vector)
	}
	if !contains(p.Assets, p.Solution.Asset) {
		return malformedf("solution asset %q not in assets", p.Solution.Asset)
	}
	if !contains(p.StolenData, p.Solution.StolenData) {
		return malformedf("solution stolen data %q not in stolen_data", p.Solution.StolenData)
	}
	return nil
}

func contains(items []string, s string) bool {
	for _, item := range items {
		if item == s {
			return true
		}
	}
	return false
}
