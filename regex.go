// Package rgrep provides a small backtracking regex engine for line matching,
// in the style of the classic "build your own grep" engines.
//
// Supported syntax: literals, '.', \d, \w (ASCII letters and digits, no '_'),
// [set], [^set], greedy + and ?, groups (re), alternation (a|b), backreferences
// \1..\9 and the ^ and $ anchors. See package syntax for the details.
//
// Basic usage:
//
//	re, err := rgrep.Compile(`(\w+) and \1`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	ok, err := re.IsMatch("cat and cat")
//
// Matching is done by recursive backtracking over the compiled node sequence
// (package backtrack). Lines that cannot contain a required literal of the
// pattern are rejected up front by a prefilter (packages literal and
// prefilter), unless the pattern contains a backreference.
//
// Behaviour kept from the classic engine, unless changed with Config:
//   - The first ')' closes a group, so groups do not nest, and only two
//     alternation branches are honoured.
//   - Quantifiers are greedy and never give back repetitions.
//   - An alternation group takes a backreference number like a plain group.
//   - An empty line never matches.
//   - A backreference to a group that has not matched yet matches nothing.
package rgrep

import (
	"errors"
	"unicode/utf8"

	"github.com/coregx/rgrep/backtrack"
	"github.com/coregx/rgrep/literal"
	"github.com/coregx/rgrep/prefilter"
	"github.com/coregx/rgrep/syntax"
)

// Errors reported by Compile and by the matching methods. Test for them
// with errors.Is.
var (
	ErrUnsupportedEscape     = syntax.ErrUnsupportedEscape
	ErrNestedQuantifier      = syntax.ErrNestedQuantifier
	ErrUnterminatedGroup     = syntax.ErrUnterminatedGroup
	ErrMissingAlternationBar = syntax.ErrMissingAlternationBar
	ErrNestingTooDeep        = syntax.ErrNestingTooDeep
	ErrInvalidBackreference  = syntax.ErrInvalidBackreference
	ErrBackreferenceOverrun  = syntax.ErrBackreferenceOverrun
)

// Regex is a compiled pattern.
//
// A Regex is safe to use concurrently from multiple goroutines: matching
// keeps its capture state per call.
type Regex struct {
	pattern   string
	compiled  *syntax.Pattern
	matcher   *backtrack.Matcher
	prefilter prefilter.Prefilter
}

// Compile compiles pattern with DefaultConfig.
//
// Example:
//
//	re, err := rgrep.Compile(`\d apple`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
//
// Example:
//
//	var logLine = rgrep.MustCompile(`^\d+ (error|warn)`)
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rgrep: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom configuration.
//
// Example:
//
//	config := rgrep.DefaultConfig()
//	config.BacktrackQuantifiers = true
//	re, err := rgrep.CompileWithConfig(`^a+ab$`, config)
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	compiled, err := syntax.Compile(pattern, syntax.Flags{
		NestedGroups:         config.NestedGroups,
		BacktrackQuantifiers: config.BacktrackQuantifiers,
		MaxDepth:             config.MaxRecursionDepth,
	})
	if err != nil {
		return nil, err
	}

	re := &Regex{
		pattern:  pattern,
		compiled: compiled,
		matcher:  backtrack.New(compiled),
	}
	if config.EnablePrefilter {
		re.prefilter = prefilter.New(literal.Required(compiled))
	}
	return re, nil
}

// IsMatch reports whether the pattern matches anywhere in line.
// The error is a *backtrack.MatchError for a backreference that cannot be
// evaluated; the boolean is then false.
func (r *Regex) IsMatch(line string) (bool, error) {
	if r.prefilter != nil && !r.prefilter.IsMatch([]byte(line)) {
		return false, nil
	}
	return r.matcher.IsMatch(line)
}

// MatchString reports whether the pattern matches anywhere in s.
// A match error counts as no match; use IsMatch to observe it.
func (r *Regex) MatchString(s string) bool {
	ok, err := r.IsMatch(s)
	return ok && err == nil
}

// Match reports whether the pattern matches anywhere in b.
func (r *Regex) Match(b []byte) bool {
	return r.MatchString(string(b))
}

// FindStringIndex returns a two-element slice holding the byte offsets of
// the leftmost match in s, or nil if there is none.
func (r *Regex) FindStringIndex(s string) ([]int, error) {
	if r.prefilter != nil && !r.prefilter.IsMatch([]byte(s)) {
		return nil, nil
	}
	start, end, err := r.matcher.Find(s)
	if err != nil || start < 0 {
		return nil, err
	}
	return []int{start, end}, nil
}

// FindString returns the text of the leftmost match in s, or "" if there
// is none or the match failed with an error.
func (r *Regex) FindString(s string) string {
	loc, err := r.FindStringIndex(s)
	if err != nil || loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindAllStringIndex returns the byte offsets of successive non-overlapping
// matches in s. Each search resumes where the previous match ended, so a
// start-anchored pattern matches at most once. Empty matches are skipped.
// If n >= 0, at most n matches are returned.
//
// An error from a search after the first match ends the search and is
// dropped; the error is returned only when no match was found.
func (r *Regex) FindAllStringIndex(s string, n int) ([][]int, error) {
	if n == 0 {
		return nil, nil
	}

	var matches [][]int
	pos := 0
	for pos < len(s) && (n < 0 || len(matches) < n) {
		loc, err := r.FindStringIndex(s[pos:])
		if err != nil {
			if len(matches) == 0 {
				return nil, err
			}
			break
		}
		if loc == nil {
			break
		}

		start, end := pos+loc[0], pos+loc[1]
		if end > start {
			matches = append(matches, []int{start, end})
			pos = end
		} else {
			_, size := utf8.DecodeRuneInString(s[start:])
			pos = start + size
		}
		if r.compiled.StartAnchor {
			break
		}
	}
	return matches, nil
}

// String returns the source text used to compile the regex.
func (r *Regex) String() string {
	return r.pattern
}

// NumGroups returns the number of capture groups, alternation groups
// included.
func (r *Regex) NumGroups() int {
	return r.compiled.NumGroups()
}

// Pattern returns the compiled node form, mainly for debugging.
func (r *Regex) Pattern() *syntax.Pattern {
	return r.compiled
}

// HasPrefilter reports whether lines are screened by a literal prefilter.
func (r *Regex) HasPrefilter() bool {
	return r.prefilter != nil
}

// IsMatchError reports whether err came from evaluating a backreference
// rather than from compiling the pattern.
func IsMatchError(err error) bool {
	var me *backtrack.MatchError
	return errors.As(err, &me)
}
