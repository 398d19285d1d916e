package syntax

import (
	"errors"
	"fmt"
)

// Compile-time errors
var (
	// ErrUnsupportedEscape indicates a backslash followed by a character
	// other than d, w, + or a digit 1-9 (or a trailing backslash)
	ErrUnsupportedEscape = errors.New("unsupported escape sequence")

	// ErrNestedQuantifier indicates + or ? applied to a node that is
	// already a quantifier
	ErrNestedQuantifier = errors.New("quantifier applied to a quantifier")

	// ErrUnterminatedGroup indicates a ( with no subsequent )
	ErrUnterminatedGroup = errors.New("unterminated group")

	// ErrMissingAlternationBar indicates a group span holding a | where the
	// left branch did not end on a bar
	ErrMissingAlternationBar = errors.New("missing alternation bar")

	// ErrNestingTooDeep indicates the group nesting exceeds Flags.MaxDepth
	ErrNestingTooDeep = errors.New("group nesting too deep")
)

// Match-time errors. They are declared here so that callers only need one
// import to classify every failure of the engine.
var (
	// ErrInvalidBackreference indicates a backreference index of 0 or one
	// exceeding the number of registered groups
	ErrInvalidBackreference = errors.New("invalid backreference index")

	// ErrBackreferenceOverrun indicates captured text longer than the input
	// remaining at the backreference
	ErrBackreferenceOverrun = errors.New("backreference overruns input")
)

// Error wraps a compile error with the pattern and the rune offset at which
// it was detected.
type Error struct {
	Pattern string
	Pos     int
	Err     error
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("error parsing pattern %q at offset %d: %v", e.Pattern, e.Pos, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
