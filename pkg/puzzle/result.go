package puzzle

// Status classifies the outcome of validating one puzzle.
type Status string

const (
	// StatusValid: the clues admit exactly one triplet and it matches the
	// declared solution, stolen datum included.
	StatusValid Status = "valid"
	// StatusUnsatisfiable: the clue set admits no triplet at all.
	StatusUnsatisfiable Status = "unsatisfiable"
	// StatusNotUnique: two or more triplets satisfy the clues.
	StatusNotUnique Status = "not_unique"
	// StatusSolutionMismatch: a unique triplet exists but disagrees with the
	// declared solution, or the declared stolen datum is not uniquely
	// implied by the applicable data-inference clues.
	StatusSolutionMismatch Status = "solution_mismatch"
	// StatusMalformed: a structural invariant was violated before solving.
	StatusMalformed Status = "malformed"
)

// Result is the outcome record for one validation run. Exactly one Status
// is set; the remaining fields carry whatever evidence that status needs
// to render an explanation.
type Result struct {
	Status      Status `json:"status"`
	Explanation string `json:"explanation"`

	// Solution is the solver-derived full solution, set when the puzzle is
	// valid.
	Solution *Solution `json:"solution,omitempty"`

	// Declared and Derived carry both sides of a solution_mismatch.
	Declared *Triplet `json:"declared,omitempty"`
	Derived  *Triplet `json:"derived,omitempty"`

	// DeclaredDatum and ImpliedDatum carry both sides of a stolen-data
	// mismatch. ImpliedDatum is empty when no clue implies a datum for the
	// derived triplet's vector.
	DeclaredDatum string `json:"declared_datum,omitempty"`
	ImpliedDatum  string `json:"implied_datum,omitempty"`

	// Witnesses holds the distinct satisfying triplets found when the
	// puzzle is not uniquely solvable.
	Witnesses []Triplet `json:"witnesses,omitempty"`
}

// Ok reports whether the puzzle passed every check.
func (r Result) Ok() bool {
	return r.Status == StatusValid
}
