package syntax

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func lit(r rune) Node { return Node{Op: OpLiteral, Char: r} }

func lits(s string) []Node {
	var out []Node
	for _, r := range s {
		out = append(out, lit(r))
	}
	return out
}

func plus(n Node) Node  { return Node{Op: OpOneOrMore, Sub: []Node{n}} }
func quest(n Node) Node { return Node{Op: OpZeroOrOne, Sub: []Node{n}} }

// TestCompileNodes checks the node sequence produced for each construct.
func TestCompileNodes(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   Flags
		want    []Node
	}{
		{"literals", "abc", Flags{}, lits("abc")},
		{"digit and word", `\d\w`, Flags{}, []Node{{Op: OpDigit}, {Op: OpWord}}},
		{"escaped plus", `a\+`, Flags{}, lits("a+")},
		{"wildcard", "a.c", Flags{}, []Node{lit('a'), {Op: OpAnyChar}, lit('c')}},
		{"class", "[abc]", Flags{}, []Node{{Op: OpCharClass, Set: []rune("abc")}}},
		{"negated class", "[^xy]z", Flags{}, []Node{{Op: OpCharClass, Set: []rune("xy"), Negated: true}, lit('z')}},
		{"class without closing bracket", "[ab", Flags{}, []Node{{Op: OpCharClass, Set: []rune("ab")}}},
		{"one or more", "ab+", Flags{}, []Node{lit('a'), plus(lit('b'))}},
		{"zero or one", "ca?t", Flags{}, []Node{lit('c'), quest(lit('a')), lit('t')}},
		{"quantified class", `[0-9]+`, Flags{}, []Node{plus(Node{Op: OpCharClass, Set: []rune("0-9")})}},
		{"leading plus is literal", "+a", Flags{}, lits("+a")},
		{"backreference", `(a)\1`, Flags{}, []Node{
			{Op: OpCapture, Sub: lits("a"), Cap: 1},
			{Op: OpBackref, Cap: 1},
		}},
		{"quantified group", "(ab)+", Flags{}, []Node{
			plus(Node{Op: OpCapture, Sub: lits("ab"), Cap: 1}),
		}},
		{"alternation group", "(cat|dog)s", Flags{}, []Node{
			{Op: OpAlternate, Left: lits("cat"), Right: lits("dog"), Cap: 1},
			lit('s'),
		}},
		{"alternation then backreference", `e.(g+|h?)o+\1d`, Flags{}, []Node{
			lit('e'),
			{Op: OpAnyChar},
			{Op: OpAlternate, Left: []Node{plus(lit('g'))}, Right: []Node{quest(lit('h'))}, Cap: 1},
			plus(lit('o')),
			{Op: OpBackref, Cap: 1},
			lit('d'),
		}},
		{"third branch dropped", "(a|b|c)", Flags{}, []Node{
			{Op: OpAlternate, Left: lits("a"), Right: lits("b"), Cap: 1},
		}},
		{"third branch nested", "(a|b|c)", Flags{NestedGroups: true}, []Node{
			{Op: OpAlternate, Left: lits("a"), Right: []Node{
				{Op: OpAlternate, Left: lits("b"), Right: lits("c")},
			}, Cap: 1},
		}},
		{"top-level bar stops the scan", "ab|cd", Flags{}, lits("ab")},
		{"stray paren stops the scan", "ab)cd", Flags{}, lits("ab")},
		{"top-level alternation when nested", "ab|cd", Flags{NestedGroups: true}, []Node{
			{Op: OpAlternate, Left: lits("ab"), Right: lits("cd")},
		}},
		{"nested groups", "((a)|b)", Flags{NestedGroups: true}, []Node{
			{Op: OpAlternate, Left: []Node{{Op: OpCapture, Sub: lits("a"), Cap: 2}}, Right: lits("b"), Cap: 1},
		}},
		{"empty branch", "(a|)", Flags{}, []Node{
			{Op: OpAlternate, Left: lits("a"), Cap: 1},
		}},
		{"anchors inside group are literals", "(^a$)", Flags{}, []Node{
			{Op: OpCapture, Sub: lits("^a$"), Cap: 1},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if diff := cmp.Diff(tt.want, p.Nodes, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Compile(%q) nodes mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

// TestCompileAnchors checks how ^ and $ are stripped from the pattern.
func TestCompileAnchors(t *testing.T) {
	tests := []struct {
		pattern   string
		wantStart bool
		wantEnd   bool
		wantNodes int
	}{
		{"abc", false, false, 3},
		{"^abc", true, false, 3},
		{"abc$", false, true, 3},
		{"^abc$", true, true, 3},
		{"^", true, false, 0},
		{"$", false, true, 0},
		{"^$", true, true, 0},
		{"a^b", false, false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := Compile(tt.pattern, Flags{})
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if p.StartAnchor != tt.wantStart || p.EndAnchor != tt.wantEnd {
				t.Errorf("anchors = (%v, %v), want (%v, %v)",
					p.StartAnchor, p.EndAnchor, tt.wantStart, tt.wantEnd)
			}
			if len(p.Nodes) != tt.wantNodes {
				t.Errorf("got %d nodes, want %d", len(p.Nodes), tt.wantNodes)
			}
		})
	}
}

// TestCompileRegistry checks that groups are registered in the order their
// opening parenthesis appears.
func TestCompileRegistry(t *testing.T) {
	p, err := Compile("(ab)x(c|d)", Flags{})
	if err != nil {
		t.Fatal(err)
	}
	if p.NumGroups() != 2 {
		t.Fatalf("NumGroups() = %d, want 2", p.NumGroups())
	}
	if diff := cmp.Diff(lits("ab"), p.Groups[0].Nodes); diff != "" {
		t.Errorf("group 1 mismatch (-want +got):\n%s", diff)
	}
	want := []Node{{Op: OpAlternate, Left: lits("c"), Right: lits("d"), Cap: 2}}
	if diff := cmp.Diff(want, p.Groups[1].Nodes); diff != "" {
		t.Errorf("group 2 mismatch (-want +got):\n%s", diff)
	}

	nested, err := Compile("((a)(b))", Flags{NestedGroups: true})
	if err != nil {
		t.Fatal(err)
	}
	if nested.NumGroups() != 3 {
		t.Fatalf("NumGroups() = %d, want 3", nested.NumGroups())
	}
	outer := nested.Nodes[0]
	if outer.Cap != 1 || outer.Sub[0].Cap != 2 || outer.Sub[1].Cap != 3 {
		t.Errorf("caps = %d, %d, %d; want 1, 2, 3", outer.Cap, outer.Sub[0].Cap, outer.Sub[1].Cap)
	}
}

// TestCompileForwardReference checks that backreference indexes are not
// validated at compile time.
func TestCompileForwardReference(t *testing.T) {
	for _, pattern := range []string{`\1(a)`, `\9`, `(a)\2`} {
		if _, err := Compile(pattern, Flags{}); err != nil {
			t.Errorf("Compile(%q) error: %v", pattern, err)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		wantErr error
		wantPos int
	}{
		{`\x`, Flags{}, ErrUnsupportedEscape, 0},
		{`ab\0`, Flags{}, ErrUnsupportedEscape, 2},
		{`a\`, Flags{}, ErrUnsupportedEscape, 1},
		{`a\.`, Flags{}, ErrUnsupportedEscape, 1},
		{"a+?", Flags{}, ErrNestedQuantifier, 2},
		{"a?+", Flags{}, ErrNestedQuantifier, 2},
		{"(ab", Flags{}, ErrUnterminatedGroup, 0},
		{"^x(ab", Flags{}, ErrUnterminatedGroup, 2},
		{"((a)|b)", Flags{}, ErrUnterminatedGroup, 1},
		{"(x[|]y)", Flags{}, ErrMissingAlternationBar, 0},
		{"((a))", Flags{NestedGroups: true, MaxDepth: 1}, ErrNestingTooDeep, 1},
		{`(a\q|b)`, Flags{}, ErrUnsupportedEscape, 2},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			_, err := Compile(tt.pattern, tt.flags)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Compile(%q) error = %v, want %v", tt.pattern, err, tt.wantErr)
			}
			var serr *Error
			if !errors.As(err, &serr) {
				t.Fatalf("error %T is not *Error", err)
			}
			if serr.Pos != tt.wantPos {
				t.Errorf("Pos = %d, want %d", serr.Pos, tt.wantPos)
			}
			if serr.Pattern != tt.pattern {
				t.Errorf("Pattern = %q, want %q", serr.Pattern, tt.pattern)
			}
		})
	}
}

func TestPatternString(t *testing.T) {
	tests := []struct {
		pattern string
		flags   Flags
		want    string
	}{
		{`^e.(g+|h?)o+\1d$`, Flags{}, `^e.(g+|h?)o+\1d$`},
		{`[^ab]\w\+\d?`, Flags{}, `[^ab]\w\+\d?`},
		{"(a|b|c)x", Flags{}, "(a|b)x"},
		{"(a|b|c)x", Flags{NestedGroups: true}, "(a|b|c)x"},
		{"ab|cd", Flags{NestedGroups: true}, "ab|cd"},
	}
	for _, tt := range tests {
		p, err := Compile(tt.pattern, tt.flags)
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
		}
		if got := p.String(); got != tt.want {
			t.Errorf("Compile(%q).String() = %q, want %q", tt.pattern, got, tt.want)
		}
	}
}

func TestHasBackrefs(t *testing.T) {
	tests := map[string]bool{
		"abc":        false,
		"((a)|b)":    false,
		`(a)\1`:      true,
		`(x|(\1))`:   true,
		`((a)|\1)+z`: true,
	}
	for pattern, want := range tests {
		p, err := Compile(pattern, Flags{NestedGroups: true})
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", pattern, err)
		}
		if got := p.HasBackrefs(); got != want {
			t.Errorf("HasBackrefs(%q) = %v, want %v", pattern, got, want)
		}
	}
}
