// Package backtrack evaluates compiled patterns against a single input line
// with a recursive backtracking matcher.
//
// The matcher walks the node sequence of a syntax.Pattern with a cursor into
// the input. Single-character nodes advance the cursor by one; groups and
// alternations recurse into their sub-sequences; quantifiers repeat their
// inner node greedily.
//
// Search behaviour:
//   - An empty input never matches, whatever the pattern.
//   - A pattern with a start anchor is attempted at offset 0 only.
//   - Otherwise every start offset is attempted, each with a fresh capture
//     state, so text captured at one offset is never seen at another.
//   - A node evaluated with the cursor at the end of the input fails, even
//     one that could match zero characters.
//
// Default (compatible) semantics, changed by syntax.Flags:
//   - A quantifier keeps the repetition count it chose greedily; a failure
//     later in the sequence does not retry fewer repetitions
//     (BacktrackQuantifiers lifts this within the enclosing sequence).
//   - Groups and alternations record their text into the first capture slot
//     that is still unset (NestedGroups records into the group's own slot).
//   - A backreference to a slot that is still unset matches nothing and
//     succeeds.
//
// A Matcher is safe for concurrent use: all per-search state lives on the
// stack of the calling goroutine.
package backtrack

import (
	"github.com/coregx/rgrep/syntax"
)

// Matcher runs searches for one compiled pattern.
type Matcher struct {
	pat *syntax.Pattern
}

// New returns a Matcher for p.
func New(p *syntax.Pattern) *Matcher {
	return &Matcher{pat: p}
}

// Pattern returns the compiled pattern the matcher evaluates.
func (m *Matcher) Pattern() *syntax.Pattern {
	return m.pat
}

// IsMatch reports whether the pattern matches anywhere in input.
//
// Start offsets are tried from the last character back to the first, the
// order in which the original suffix-first recursion completed them. The
// boolean result does not depend on it, but a backreference error raised at
// a later offset is reported even when an earlier offset would match.
//
// The error, when non-nil, is a *MatchError.
func (m *Matcher) IsMatch(input string) (bool, error) {
	in := []rune(input)
	if len(in) == 0 {
		return false, nil
	}
	if m.pat.StartAnchor {
		_, ok, err := m.attempt(in, 0)
		return ok, err
	}
	for start := len(in) - 1; start >= 0; start-- {
		_, ok, err := m.attempt(in, start)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Find returns the byte offsets of the leftmost match in input, or
// start = -1 if there is none. The end offset is where the winning attempt
// stopped, which depends on the greedy choices made along the way.
//
// An attempt that fails with a backreference error does not end the search.
// The first such error is returned only when no offset matches, so Find
// succeeds whenever IsMatch reports a match.
func (m *Matcher) Find(input string) (start, end int, err error) {
	in := []rune(input)
	if len(in) == 0 {
		return -1, -1, nil
	}

	offsets := make([]int, 0, len(in)+1)
	for i := range input {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(input))

	last := len(in) - 1
	if m.pat.StartAnchor {
		last = 0
	}
	var firstErr error
	for at := 0; at <= last; at++ {
		stop, ok, err := m.attempt(in, at)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return offsets[at], offsets[stop], nil
		}
	}
	return -1, -1, firstErr
}

// attempt matches the whole pattern starting exactly at start.
func (m *Matcher) attempt(in []rune, start int) (int, bool, error) {
	s := &search{
		input:     in,
		numGroups: len(m.pat.Groups),
		backtrack: m.pat.Flags.BacktrackQuantifiers,
		ownSlots:  m.pat.Flags.NestedGroups,
	}
	end, _, ok, err := s.seq(m.pat.Nodes, start, newCaptures(s.numGroups), m.pat.EndAnchor)
	return end, ok, err
}

// search is the state of a single attempt.
type search struct {
	input     []rune
	numGroups int
	backtrack bool
	ownSlots  bool
}

// seq matches nodes in order from cur. When atEnd is set the sequence must
// also finish at the end of the input.
func (s *search) seq(nodes []syntax.Node, cur int, caps captures, atEnd bool) (int, captures, bool, error) {
	for i := range nodes {
		if cur >= len(s.input) {
			return cur, caps, false, nil
		}
		n := &nodes[i]
		if s.backtrack && n.Op.IsQuantifier() {
			return s.repeatBacktrack(n, nodes[i+1:], cur, caps, atEnd)
		}
		next, c, ok, err := s.node(n, cur, caps)
		if err != nil || !ok {
			return cur, caps, false, err
		}
		cur, caps = next, c
	}
	if atEnd && cur != len(s.input) {
		return cur, caps, false, nil
	}
	return cur, caps, true, nil
}

// node matches a single node at cur.
func (s *search) node(n *syntax.Node, cur int, caps captures) (int, captures, bool, error) {
	switch n.Op {
	case syntax.OpLiteral, syntax.OpCharClass, syntax.OpDigit, syntax.OpWord, syntax.OpAnyChar:
		if cur < len(s.input) && n.MatchesRune(s.input[cur]) {
			return cur + 1, caps, true, nil
		}
		return cur, caps, false, nil

	case syntax.OpOneOrMore, syntax.OpZeroOrOne:
		return s.repeatGreedy(n, cur, caps)

	case syntax.OpAlternate:
		end, c, ok, err := s.seq(n.Left, cur, caps, false)
		if err != nil {
			return cur, caps, false, err
		}
		if !ok {
			end, c, ok, err = s.seq(n.Right, cur, caps, false)
			if err != nil || !ok {
				return cur, caps, false, err
			}
		}
		if n.Captures() {
			c = s.record(n, c, cur, end)
		}
		return end, c, true, nil

	case syntax.OpCapture:
		end, c, ok, err := s.seq(n.Sub, cur, caps, false)
		if err != nil || !ok {
			return cur, caps, false, err
		}
		return end, s.record(n, c, cur, end), true, nil

	case syntax.OpBackref:
		return s.backref(n, cur, caps)
	}
	return cur, caps, false, nil
}

// record stores input[from:to] for the group node n.
func (s *search) record(n *syntax.Node, caps captures, from, to int) captures {
	text := string(s.input[from:to])
	if s.ownSlots {
		return caps.record(n.Cap-1, text)
	}
	return caps.record(caps.firstEmpty(), text)
}

func (s *search) backref(n *syntax.Node, cur int, caps captures) (int, captures, bool, error) {
	if n.Cap < 1 || n.Cap > s.numGroups {
		return cur, caps, false, &MatchError{Index: n.Cap, Pos: cur, Err: syntax.ErrInvalidBackreference}
	}
	text, set := caps.get(n.Cap)
	if !set {
		return cur, caps, true, nil
	}
	want := []rune(text)
	if len(want) > len(s.input)-cur {
		return cur, caps, false, &MatchError{Index: n.Cap, Pos: cur, Err: syntax.ErrBackreferenceOverrun}
	}
	for i, r := range want {
		if s.input[cur+i] != r {
			return cur, caps, false, nil
		}
	}
	return cur + len(want), caps, true, nil
}

// repeatGreedy applies a quantifier without count backtracking: it takes as
// many repetitions as the inner node allows and commits to them.
func (s *search) repeatGreedy(n *syntax.Node, cur int, caps captures) (int, captures, bool, error) {
	inner := &n.Sub[0]
	count := 0
	for cur < len(s.input) {
		next, c, ok, err := s.node(inner, cur, caps)
		if err != nil {
			return cur, caps, false, err
		}
		if !ok {
			break
		}
		count++
		zeroWidth := next == cur
		cur, caps = next, c
		if zeroWidth || n.Op == syntax.OpZeroOrOne {
			break
		}
	}
	if n.Op == syntax.OpOneOrMore && count == 0 {
		return cur, caps, false, nil
	}
	return cur, caps, true, nil
}

type step struct {
	pos  int
	caps captures
}

// repeatBacktrack applies the quantifier n followed by rest, trying the
// repetition counts from the greedy maximum down to the minimum.
func (s *search) repeatBacktrack(n *syntax.Node, rest []syntax.Node, cur int, caps captures, atEnd bool) (int, captures, bool, error) {
	inner := &n.Sub[0]
	steps := []step{{pos: cur, caps: caps}}
	for cur < len(s.input) {
		next, c, ok, err := s.node(inner, cur, caps)
		if err != nil {
			return cur, caps, false, err
		}
		if !ok {
			break
		}
		steps = append(steps, step{pos: next, caps: c})
		zeroWidth := next == cur
		cur, caps = next, c
		if zeroWidth || n.Op == syntax.OpZeroOrOne {
			break
		}
	}

	least := 0
	if n.Op == syntax.OpOneOrMore {
		least = 1
	}
	for k := len(steps) - 1; k >= least; k-- {
		end, c, ok, err := s.seq(rest, steps[k].pos, steps[k].caps, atEnd)
		if err != nil {
			return end, c, false, err
		}
		if ok {
			return end, c, true, nil
		}
	}
	return steps[0].pos, steps[0].caps, false, nil
}
