package literal

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/rgrep/syntax"
)

func literalsOf(s *Seq) []string {
	if s.IsEmpty() {
		return nil
	}
	out := make([]string, 0, s.Len())
	for i := 0; i < s.Len(); i++ {
		out = append(out, string(s.Get(i).Bytes))
	}
	return out
}

func TestRequired(t *testing.T) {
	tests := []struct {
		pattern string
		flags   syntax.Flags
		want    []string
	}{
		{"abc", syntax.Flags{}, []string{"abc"}},
		{"^hello$", syntax.Flags{}, []string{"hello"}},
		{`ab\dcdef`, syntax.Flags{}, []string{"cdef"}},
		{"ab+c", syntax.Flags{}, []string{"ab"}},
		{"xa?yz", syntax.Flags{}, []string{"yz"}},
		{`\d+`, syntax.Flags{}, nil},
		{"[abc]", syntax.Flags{}, nil},
		{"a.b", syntax.Flags{}, []string{"a"}},
		{"x(hello)y", syntax.Flags{}, []string{"hello"}},
		{"x(cat|dog)s", syntax.Flags{}, []string{"cat", "dog"}},
		{"(cat|do)s", syntax.Flags{}, []string{"cat", "do"}},
		{"(cat|d)s", syntax.Flags{}, []string{"s"}},
		{"(cat|)s", syntax.Flags{}, []string{"s"}},
		{"(cat|dog)?s", syntax.Flags{}, []string{"s"}},
		{"(a|b|c)", syntax.Flags{NestedGroups: true}, []string{"a", "b", "c"}},
		{"error|warn", syntax.Flags{NestedGroups: true}, []string{"error", "warn"}},
		{`(cat) and \1`, syntax.Flags{}, nil},
		{"", syntax.Flags{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			p, err := syntax.Compile(tt.pattern, tt.flags)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			got := literalsOf(Required(p))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Required(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}
