package puzzle

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DecodeJSON reads one puzzle record from r and checks its structural
// invariants. A record that fails the invariants is rejected with a
// *MalformedError rather than partially constructed.
func DecodeJSON(r io.Reader) (*Puzzle, error) {
	var p Puzzle
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeYAML is DecodeJSON for the YAML rendering of the same record.
func DecodeYAML(r io.Reader) (*Puzzle, error) {
	var p Puzzle
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode puzzle: %w", err)
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// EncodeJSON writes p to w in the indented layout the puzzle corpus uses.
// Clue sentences are regenerated from their reference fields so stored
// text never drifts from the structured clue.
func EncodeJSON(w io.Writer, p *Puzzle) error {
	out := *p
	out.Clues = make([]Clue, len(p.Clues))
	for i, c := range p.Clues {
		c.Text = c.Sentence()
		out.Clues[i] = c
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(&out)
}
