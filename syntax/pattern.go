// Package syntax compiles pattern text into the node form evaluated by the
// backtracking matcher.
//
// Supported syntax:
//
//	c        literal character
//	.        any character
//	\d       ASCII digit
//	\w       ASCII letter or digit (no '_')
//	\+       literal '+'
//	[abc]    character set
//	[^abc]   negated character set
//	x+       one or more x (greedy)
//	x?       zero or one x (greedy)
//	(re)     capture group
//	(a|b)    alternation, also a capture group
//	\1..\9   backreference
//	^ $      start and end anchors (only at the pattern boundaries)
//
// Every group, alternation included, takes a backreference number in the
// order its opening parenthesis appears.
package syntax

import "strings"

// Flags selects compile and match behaviour beyond the default syntax.
type Flags struct {
	// NestedGroups locates the closing parenthesis by tracking depth and
	// accepts any number of alternation branches. Without it the first ')'
	// closes a group and a branch after a second '|' is ignored.
	NestedGroups bool

	// BacktrackQuantifiers makes the matcher retry quantifier repetition
	// counts, from the greedy maximum down, when the rest of the sequence
	// fails. Without it the greedy count is final.
	BacktrackQuantifiers bool

	// MaxDepth bounds group nesting. Zero means unbounded.
	MaxDepth int
}

// Group is an entry of the capture registry.
type Group struct {
	// Nodes is the declared node sequence of the group. For an alternation
	// group it holds the single OpAlternate node.
	Nodes []Node
}

// Pattern is a compiled pattern. It is immutable once Compile returns;
// captured text is kept by the matcher, not here.
type Pattern struct {
	Source      string
	Nodes       []Node
	StartAnchor bool
	EndAnchor   bool
	Groups      []Group
	Flags       Flags
}

// NumGroups returns the number of entries in the capture registry.
func (p *Pattern) NumGroups() int {
	return len(p.Groups)
}

// HasBackrefs reports whether any node of the pattern is a backreference.
func (p *Pattern) HasBackrefs() bool {
	return containsOp(p.Nodes, OpBackref)
}

func containsOp(nodes []Node, op Op) bool {
	for i := range nodes {
		n := &nodes[i]
		if n.Op == op {
			return true
		}
		if containsOp(n.Sub, op) || containsOp(n.Left, op) || containsOp(n.Right, op) {
			return true
		}
	}
	return false
}

// String renders the compiled pattern back to pattern syntax.
func (p *Pattern) String() string {
	var b strings.Builder
	if p.StartAnchor {
		b.WriteByte('^')
	}
	writeSeq(&b, p.Nodes)
	if p.EndAnchor {
		b.WriteByte('$')
	}
	return b.String()
}
