package syntax

import "strings"

// Compile parses pattern into a Pattern.
//
// A leading '^' and a trailing '$' set the anchors and are removed before
// scanning. Scanning stops at a '|' or ')' that no group consumed, so any
// text after such a character is ignored, e.g. "ab|cd" compiles to "ab"
// unless flags.NestedGroups is set.
//
// Errors are returned as *Error wrapping one of ErrUnsupportedEscape,
// ErrNestedQuantifier, ErrUnterminatedGroup, ErrMissingAlternationBar or
// ErrNestingTooDeep.
func Compile(pattern string, flags Flags) (*Pattern, error) {
	p := &Pattern{Source: pattern, Flags: flags}

	body := pattern
	base := 0
	if strings.HasPrefix(body, "^") {
		p.StartAnchor = true
		body = body[1:]
		base = 1
	}
	if strings.HasSuffix(body, "$") {
		p.EndAnchor = true
		body = body[:len(body)-1]
	}

	c := &compiler{
		pattern: pattern,
		src:     []rune(body),
		base:    base,
		flags:   flags,
	}
	nodes, err := c.top()
	if err != nil {
		return nil, err
	}
	p.Nodes = nodes
	p.Groups = c.groups
	return p, nil
}

// compiler holds the state shared by the recursive scans of one pattern.
type compiler struct {
	pattern string
	src     []rune
	base    int // rune offset of src within pattern, for error positions
	flags   Flags
	groups  []Group
	depth   int
}

func (c *compiler) errorf(pos int, err error) error {
	return &Error{Pattern: c.pattern, Pos: c.base + pos, Err: err}
}

func (c *compiler) top() ([]Node, error) {
	nodes, stop, err := c.scan(0, len(c.src))
	if err != nil {
		return nil, err
	}
	if !c.flags.NestedGroups || stop >= len(c.src) || c.src[stop] != '|' {
		return nodes, nil
	}
	branches, _, err := c.branches(nodes, stop, len(c.src))
	if err != nil {
		return nil, err
	}
	return fold(branches), nil
}

// scan compiles src[start:end]. It returns the nodes built so far and the
// offset it stopped at: end, or the position of an unconsumed '|' or ')'.
func (c *compiler) scan(start, end int) ([]Node, int, error) {
	var nodes []Node
	i := start
	for i < end {
		switch ch := c.src[i]; ch {
		case '+', '?':
			if len(nodes) == 0 {
				nodes = append(nodes, Node{Op: OpLiteral, Char: ch})
				i++
				continue
			}
			last := nodes[len(nodes)-1]
			if last.Op.IsQuantifier() {
				return nil, i, c.errorf(i, ErrNestedQuantifier)
			}
			op := OpOneOrMore
			if ch == '?' {
				op = OpZeroOrOne
			}
			nodes[len(nodes)-1] = Node{Op: op, Sub: []Node{last}}
			i++

		case '\\':
			if i+1 >= end {
				return nil, i, c.errorf(i, ErrUnsupportedEscape)
			}
			switch esc := c.src[i+1]; {
			case esc == 'd':
				nodes = append(nodes, Node{Op: OpDigit})
			case esc == 'w':
				nodes = append(nodes, Node{Op: OpWord})
			case esc == '+':
				nodes = append(nodes, Node{Op: OpLiteral, Char: '+'})
			case esc >= '1' && esc <= '9':
				nodes = append(nodes, Node{Op: OpBackref, Cap: int(esc - '0')})
			default:
				return nil, i, c.errorf(i, ErrUnsupportedEscape)
			}
			i += 2

		case '[':
			n, next := c.class(i, end)
			nodes = append(nodes, n)
			i = next

		case '(':
			n, next, err := c.group(i, end)
			if err != nil {
				return nil, i, err
			}
			nodes = append(nodes, n)
			i = next

		case '|', ')':
			return nodes, i, nil

		case '.':
			nodes = append(nodes, Node{Op: OpAnyChar})
			i++

		default:
			nodes = append(nodes, Node{Op: OpLiteral, Char: ch})
			i++
		}
	}
	return nodes, end, nil
}

// class reads a bracket expression starting at open. Characters are taken
// verbatim up to the next ']'; without one the set runs to end.
func (c *compiler) class(open, end int) (Node, int) {
	n := Node{Op: OpCharClass}
	i := open + 1
	if i < end && c.src[i] == '^' {
		n.Negated = true
		i++
	}
	j := i
	for j < end && c.src[j] != ']' {
		j++
	}
	n.Set = append([]rune(nil), c.src[i:j]...)
	if j < end {
		j++
	}
	return n, j
}

// group compiles the parenthesized group opening at open and returns the
// offset just past its closing parenthesis.
func (c *compiler) group(open, end int) (Node, int, error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.flags.MaxDepth > 0 && c.depth > c.flags.MaxDepth {
		return Node{}, open, c.errorf(open, ErrNestingTooDeep)
	}

	closing := c.findClose(open, end)
	if closing < 0 {
		return Node{}, open, c.errorf(open, ErrUnterminatedGroup)
	}

	// The registry slot is taken when the group opens, so an enclosing
	// group numbers before the groups inside it.
	c.groups = append(c.groups, Group{})
	idx := len(c.groups)

	var n Node
	if c.findBar(open+1, closing) < 0 {
		body, _, err := c.scan(open+1, closing)
		if err != nil {
			return Node{}, open, err
		}
		n = Node{Op: OpCapture, Sub: body, Cap: idx}
		c.groups[idx-1].Nodes = body
		return n, closing + 1, nil
	}

	left, stop, err := c.scan(open+1, closing)
	if err != nil {
		return Node{}, open, err
	}
	if stop >= closing || c.src[stop] != '|' {
		return Node{}, open, c.errorf(open, ErrMissingAlternationBar)
	}

	var right []Node
	if c.flags.NestedGroups {
		branches, _, err := c.branches(left, stop, closing)
		if err != nil {
			return Node{}, open, err
		}
		right = fold(branches[1:])
	} else {
		right, _, err = c.scan(stop+1, closing)
		if err != nil {
			return Node{}, open, err
		}
	}

	n = Node{Op: OpAlternate, Left: left, Right: right, Cap: idx}
	c.groups[idx-1].Nodes = []Node{n}
	return n, closing + 1, nil
}

// branches collects the alternation branches following first, which ended
// on the bar at offset bar. It stops at end or at an unconsumed ')'.
func (c *compiler) branches(first []Node, bar, end int) ([][]Node, int, error) {
	out := [][]Node{first}
	stop := bar
	for stop < end && c.src[stop] == '|' {
		br, next, err := c.scan(stop+1, end)
		if err != nil {
			return nil, stop, err
		}
		out = append(out, br)
		stop = next
	}
	return out, stop, nil
}

// fold turns branches into a right-nested chain of non-capturing
// alternations. A single branch is returned as is.
func fold(branches [][]Node) []Node {
	if len(branches) == 1 {
		return branches[0]
	}
	return []Node{{
		Op:    OpAlternate,
		Left:  branches[0],
		Right: fold(branches[1:]),
	}}
}

// findClose returns the offset of the ')' closing the group at open, or -1.
func (c *compiler) findClose(open, end int) int {
	depth := 0
	for i := open + 1; i < end; i++ {
		switch c.src[i] {
		case '(':
			if c.flags.NestedGroups {
				depth++
			}
		case ')':
			if depth == 0 {
				return i
			}
			depth--
		}
	}
	return -1
}

// findBar returns the offset of the first '|' in src[start:end] outside any
// inner group, or -1. Without NestedGroups inner groups are not tracked.
func (c *compiler) findBar(start, end int) int {
	depth := 0
	for i := start; i < end; i++ {
		switch c.src[i] {
		case '(':
			if c.flags.NestedGroups {
				depth++
			}
		case ')':
			if c.flags.NestedGroups {
				depth--
			}
		case '|':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
