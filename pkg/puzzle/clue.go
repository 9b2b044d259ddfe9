package puzzle

import (
	"fmt"
)

// Kind tags the five clue variants. The set is closed: the constraint
// encoder and the data-inference check switch over it exhaustively, so a
// new kind is a compile-time visible change in both places.
type Kind string

const (
	// Negation: the actor did not use the vector.
	Negation Kind = "negation"
	// Affirmative: the vector was used against the asset.
	Affirmative Kind = "affirmative"
	// Relational: whoever used the vector did not access the asset.
	Relational Kind = "relational"
	// Conditional: if the actor used the vector, they accessed the asset.
	Conditional Kind = "conditional"
	// DataInference: only attacks using the vector stole the datum.
	DataInference Kind = "data-inference"
)

// Kinds lists every clue kind in the order the authoring tool offers them.
var Kinds = []Kind{Negation, Affirmative, Relational, Conditional, DataInference}

// Clue is one tagged constraint over the puzzle's elements. Which reference
// fields are populated depends on the kind; unused fields stay empty.
type Clue struct {
	Kind   Kind   `json:"type" yaml:"type"`
	Actor  string `json:"actor,omitempty" yaml:"actor,omitempty"`
	Vector string `json:"vector,omitempty" yaml:"vector,omitempty"`
	Asset  string `json:"asset,omitempty" yaml:"asset,omitempty"`
	Data   string `json:"data,omitempty" yaml:"data,omitempty"`

	// Text is the rendered sentence for display. It is regenerated from the
	// reference fields on save and carries no constraint semantics.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Sentence renders the clue in the phrasing puzzles present to players.
func (c Clue) Sentence() string {
	switch c.Kind {
	case Negation:
		return fmt.Sprintf("%s did not use %s.", c.Actor, c.Vector)
	case Affirmative:
		return fmt.Sprintf("%s was used against the %s.", c.Vector, c.Asset)
	case Relational:
		return fmt.Sprintf("The actor that used %s did not access the %s.", c.Vector, c.Asset)
	case Conditional:
		return fmt.Sprintf("If %s used %s, then they accessed the %s.", c.Actor, c.Vector, c.Asset)
	case DataInference:
		return fmt.Sprintf("Only attacks using %s resulted in theft of %s.", c.Vector, c.Data)
	}
	return ""
}

// check verifies the clue's kind is known and every reference it carries
// resolves into the puzzle's element lists.
func (c Clue) check(p *Puzzle) error {
	needActor := func() error {
		if !contains(p.Actors, c.Actor) {
			return fmt.Errorf("actor %q not in actors", c.Actor)
		}
		return nil
	}
	needVector := func() error {
		if !contains(p.Vectors, c.Vector) {
			return fmt.Errorf("vector %q not in vectors", c.Vector)
		}
		return nil
	}
	needAsset := func() error {
		if !contains(p.Assets, c.Asset) {
			return fmt.Errorf("asset %q not in assets", c.Asset)
		}
		return nil
	}

	switch c.Kind {
	case Negation:
		if err := needActor(); err != nil {
			return err
		}
		return needVector()
	case Affirmative, Relational:
		if err := needVector(); err != nil {
			return err
		}
		return needAsset()
	case Conditional:
		if err := needActor(); err != nil {
			return err
		}
		if err := needVector(); err != nil {
			return err
		}
		return needAsset()
	case DataInference:
		if err := needVector(); err != nil {
			return err
		}
		if !contains(p.StolenData, c.Data) {
			return fmt.Errorf("stolen data %q not in stolen_data", c.Data)
		}
		return nil
	}
	return fmt.Errorf("unknown clue type %q", c.Kind)
}
