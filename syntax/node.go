package syntax

import (
	"strconv"
	"strings"
)

// Op identifies the kind of a pattern node.
type Op uint8

const (
	// OpLiteral matches exactly Node.Char
	OpLiteral Op = iota + 1

	// OpCharClass matches one character that is (or, if Negated, is not) in Node.Set
	OpCharClass

	// OpDigit matches one ASCII digit (\d)
	OpDigit

	// OpWord matches one ASCII letter or digit (\w).
	// Unlike Perl's \w it does not match '_'.
	OpWord

	// OpAnyChar matches any one character (.)
	OpAnyChar

	// OpOneOrMore repeats Node.Sub[0] greedily one or more times (+)
	OpOneOrMore

	// OpZeroOrOne matches Node.Sub[0] greedily zero or one time (?)
	OpZeroOrOne

	// OpAlternate matches the Node.Left sequence, or Node.Right if Left fails
	OpAlternate

	// OpCapture matches the Node.Sub sequence and records the consumed text
	OpCapture

	// OpBackref matches the text recorded for group Node.Cap
	OpBackref
)

var opNames = [...]string{
	OpLiteral:   "Literal",
	OpCharClass: "CharClass",
	OpDigit:     "Digit",
	OpWord:      "Word",
	OpAnyChar:   "AnyChar",
	OpOneOrMore: "OneOrMore",
	OpZeroOrOne: "ZeroOrOne",
	OpAlternate: "Alternate",
	OpCapture:   "Capture",
	OpBackref:   "Backref",
}

// String returns the name of the op.
func (op Op) String() string {
	if int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}

// IsQuantifier reports whether op repeats a single inner node.
func (op Op) IsQuantifier() bool {
	return op == OpOneOrMore || op == OpZeroOrOne
}

// Node is a single element of a compiled pattern.
//
// Node is a closed variant: Op selects which of the fields are meaningful.
//   - OpLiteral: Char
//   - OpCharClass: Set, Negated
//   - OpOneOrMore, OpZeroOrOne: Sub (exactly one node, never a quantifier)
//   - OpCapture: Sub, Cap
//   - OpAlternate: Left, Right, Cap (0 when the alternation does not capture)
//   - OpBackref: Cap
type Node struct {
	Op      Op
	Char    rune
	Set     []rune
	Negated bool
	Sub     []Node
	Left    []Node
	Right   []Node

	// Cap is the 1-based capture group index.
	Cap int
}

// MatchesRune reports whether a single-character node accepts r.
// It returns false for composite nodes.
func (n *Node) MatchesRune(r rune) bool {
	switch n.Op {
	case OpLiteral:
		return r == n.Char
	case OpCharClass:
		in := false
		for _, c := range n.Set {
			if c == r {
				in = true
				break
			}
		}
		return in != n.Negated
	case OpDigit:
		return isDigit(r)
	case OpWord:
		return isDigit(r) || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	case OpAnyChar:
		return true
	}
	return false
}

// Captures reports whether a match of n records text into the registry.
func (n *Node) Captures() bool {
	switch n.Op {
	case OpCapture:
		return true
	case OpAlternate:
		return n.Cap > 0
	}
	return false
}

// String renders the node back to pattern syntax.
func (n *Node) String() string {
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	switch n.Op {
	case OpLiteral:
		if n.Char == '+' {
			b.WriteByte('\\')
		}
		b.WriteRune(n.Char)
	case OpCharClass:
		b.WriteByte('[')
		if n.Negated {
			b.WriteByte('^')
		}
		b.WriteString(string(n.Set))
		b.WriteByte(']')
	case OpDigit:
		b.WriteString(`\d`)
	case OpWord:
		b.WriteString(`\w`)
	case OpAnyChar:
		b.WriteByte('.')
	case OpOneOrMore, OpZeroOrOne:
		writeSeq(b, n.Sub)
		if n.Op == OpOneOrMore {
			b.WriteByte('+')
		} else {
			b.WriteByte('?')
		}
	case OpAlternate:
		if n.Cap > 0 {
			b.WriteByte('(')
		}
		writeSeq(b, n.Left)
		b.WriteByte('|')
		writeSeq(b, n.Right)
		if n.Cap > 0 {
			b.WriteByte(')')
		}
	case OpCapture:
		b.WriteByte('(')
		writeSeq(b, n.Sub)
		b.WriteByte(')')
	case OpBackref:
		b.WriteByte('\\')
		b.WriteString(strconv.Itoa(n.Cap))
	default:
		b.WriteString(n.Op.String())
	}
}

func writeSeq(b *strings.Builder, nodes []Node) {
	for i := range nodes {
		nodes[i].write(b)
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
