package literal

import "github.com/coregx/rgrep/syntax"

// Required returns a required literal set for p, or nil when none can be
// derived.
//
// Patterns that contain a backreference get nil: a prefilter rejection
// would hide backreference errors that the matcher reports for the same
// input.
func Required(p *syntax.Pattern) *Seq {
	if p.HasBackrefs() {
		return nil
	}
	return required(p.Nodes)
}

// required returns the best literal set every match of nodes must contain.
//
// Sources, within one node sequence:
//   - runs of consecutive literals (matched contiguously)
//   - x+ with a literal x, which extends the run by one x and ends it
//   - capture bodies, which must match for the sequence to match
//   - alternations whose two branches both yield a set
func required(nodes []syntax.Node) *Seq {
	var (
		best *Seq
		run  []rune
	)
	flush := func() {
		if len(run) > 0 {
			best = better(best, NewSeq(NewLiteral([]byte(string(run)))))
			run = nil
		}
	}

	for i := range nodes {
		n := &nodes[i]
		switch n.Op {
		case syntax.OpLiteral:
			run = append(run, n.Char)
		case syntax.OpOneOrMore:
			if n.Sub[0].Op == syntax.OpLiteral {
				run = append(run, n.Sub[0].Char)
			}
			flush()
		case syntax.OpCapture:
			flush()
			best = better(best, required(n.Sub))
		case syntax.OpAlternate:
			flush()
			left, right := required(n.Left), required(n.Right)
			if !left.IsEmpty() && !right.IsEmpty() {
				best = better(best, left.Union(right))
			}
		default:
			flush()
		}
	}
	flush()
	return best
}

// better picks the more selective of two sets: the longer shortest literal,
// then the fewer literals.
func better(a, b *Seq) *Seq {
	switch {
	case a.IsEmpty():
		return b
	case b.IsEmpty():
		return a
	case b.MinLen() > a.MinLen():
		return b
	case b.MinLen() == a.MinLen() && b.Len() < a.Len():
		return b
	}
	return a
}
