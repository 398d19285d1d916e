// Package literal extracts required literal strings from compiled patterns.
//
// A required literal set is a Seq such that every input the pattern matches
// contains at least one of its literals. The prefilter package uses it to
// reject lines without running the backtracker.
//
// Example:
//
//	p, _ := syntax.Compile("x(cat|dog)s", syntax.Flags{})
//	seq := literal.Required(p)
//	// seq holds "cat" and "dog"
package literal

import "strings"

// Literal is a byte sequence that must occur in a match.
type Literal struct {
	Bytes []byte
}

// NewLiteral creates a Literal from b.
func NewLiteral(b []byte) Literal {
	return Literal{Bytes: b}
}

// Len returns the length of the literal in bytes.
func (l Literal) Len() int {
	return len(l.Bytes)
}

// String returns a debug representation of the literal.
func (l Literal) String() string {
	return "literal{" + string(l.Bytes) + "}"
}

// Seq is a set of alternative literals, at least one of which must occur.
type Seq struct {
	lits []Literal
}

// NewSeq creates a Seq holding lits.
func NewSeq(lits ...Literal) *Seq {
	return &Seq{lits: lits}
}

// Len returns the number of literals in the sequence.
func (s *Seq) Len() int {
	if s == nil {
		return 0
	}
	return len(s.lits)
}

// Get returns the i-th literal.
func (s *Seq) Get(i int) Literal {
	return s.lits[i]
}

// IsEmpty reports whether the sequence holds no literal.
func (s *Seq) IsEmpty() bool {
	return s.Len() == 0
}

// MinLen returns the length of the shortest literal, or 0 for an empty
// sequence.
func (s *Seq) MinLen() int {
	if s.IsEmpty() {
		return 0
	}
	n := s.lits[0].Len()
	for _, l := range s.lits[1:] {
		if l.Len() < n {
			n = l.Len()
		}
	}
	return n
}

// Union returns a sequence holding the literals of s and other.
func (s *Seq) Union(other *Seq) *Seq {
	out := make([]Literal, 0, s.Len()+other.Len())
	if s != nil {
		out = append(out, s.lits...)
	}
	if other != nil {
		out = append(out, other.lits...)
	}
	return &Seq{lits: out}
}

// String returns a debug representation of the sequence.
func (s *Seq) String() string {
	parts := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		parts = append(parts, string(s.lits[i].Bytes))
	}
	return "Seq[" + strings.Join(parts, ", ") + "]"
}
