// Package prefilter rejects input lines that cannot match a pattern before
// the backtracking matcher runs.
//
// A prefilter is built from a required literal set (see literal.Required).
// The strategy depends on the set:
//   - one literal → Memmem (substring search)
//   - several literals → AhoCorasick (multi-pattern automaton)
//
// A prefilter never produces false negatives: IsMatch returns false only
// when no literal of the set occurs in the haystack.
//
// Example usage:
//
//	p, _ := syntax.Compile("(error|warn)ing", syntax.Flags{})
//	pf := prefilter.New(literal.Required(p))
//	if pf != nil && !pf.IsMatch(line) {
//	    // skip the line
//	}
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/rgrep/literal"
)

// Prefilter quickly decides whether a haystack may contain a match.
type Prefilter interface {
	// IsMatch returns false if the haystack certainly holds no match.
	IsMatch(haystack []byte) bool

	// LiteralCount returns the number of literals searched for.
	LiteralCount() int
}

// New builds the prefilter for seq. It returns nil when seq is empty or
// the automaton cannot be built; callers then run the matcher on every line.
func New(seq *literal.Seq) Prefilter {
	switch seq.Len() {
	case 0:
		return nil
	case 1:
		return NewMemmem(seq.Get(0).Bytes)
	}
	pf, err := NewAhoCorasick(seq)
	if err != nil {
		return nil
	}
	return pf
}

// Memmem searches for a single literal.
type Memmem struct {
	needle []byte
}

// NewMemmem returns a prefilter searching for needle.
func NewMemmem(needle []byte) *Memmem {
	return &Memmem{needle: needle}
}

// IsMatch implements Prefilter.
func (m *Memmem) IsMatch(haystack []byte) bool {
	return bytes.Contains(haystack, m.needle)
}

// LiteralCount implements Prefilter.
func (m *Memmem) LiteralCount() int {
	return 1
}

// AhoCorasick searches for any of several literals in one pass.
type AhoCorasick struct {
	auto  *ahocorasick.Automaton
	count int
}

// NewAhoCorasick builds an Aho-Corasick automaton over the literals of seq.
func NewAhoCorasick(seq *literal.Seq) (*AhoCorasick, error) {
	builder := ahocorasick.NewBuilder()
	for i := 0; i < seq.Len(); i++ {
		builder.AddPattern(seq.Get(i).Bytes)
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &AhoCorasick{auto: auto, count: seq.Len()}, nil
}

// IsMatch implements Prefilter.
func (a *AhoCorasick) IsMatch(haystack []byte) bool {
	return a.auto.IsMatch(haystack)
}

// LiteralCount implements Prefilter.
func (a *AhoCorasick) LiteralCount() int {
	return a.count
}
