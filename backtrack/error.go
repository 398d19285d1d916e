package backtrack

import "fmt"

// MatchError reports a backreference that could not be evaluated.
// Err is syntax.ErrInvalidBackreference or syntax.ErrBackreferenceOverrun.
type MatchError struct {
	// Index is the backreference group number as written in the pattern
	Index int

	// Pos is the input rune offset at which the backreference was evaluated
	Pos int

	Err error
}

// Error implements the error interface
func (e *MatchError) Error() string {
	return fmt.Sprintf("backreference \\%d at input offset %d: %v", e.Index, e.Pos, e.Err)
}

// Unwrap returns the underlying error
func (e *MatchError) Unwrap() error {
	return e.Err
}
