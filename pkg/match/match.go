package match

import (
	"fmt"
	"strings"

	"github.com/macropower/rewire/pkg/rules"
)

// Matcher is a pure predicate over a rule. String describes the predicate
// for error messages.
type Matcher interface {
	Match(r *rules.Rule) bool
	String() string
}

type testMatcher struct {
	pattern rules.Pattern
}

// Test matches rules whose `test` field, in canonical string form, equals
// the given pattern. The comparison is textual: `/\.css$/` and `/[.]css$/`
// are different patterns.
func Test(p rules.Pattern) Matcher {
	return testMatcher{pattern: p}
}

func (m testMatcher) Match(r *rules.Rule) bool {
	return !r.Test.IsZero() && r.Test.String() == m.pattern.String()
}

func (m testMatcher) String() string {
	return "test == " + m.pattern.String()
}

type loaderMatcher struct {
	name string
}

// Loader matches rules whose single `loader` identifier names the given
// loader as a whole path segment. Rules holding a loader list never match.
func Loader(name string) Matcher {
	return loaderMatcher{name: name}
}

func (m loaderMatcher) Match(r *rules.Rule) bool {
	return r.LoaderIs(m.name)
}

func (m loaderMatcher) String() string {
	return "loader == " + m.name
}

type funcMatcher struct {
	fn   func(*rules.Rule) bool
	desc string
}

// Func wraps fn as a [Matcher] described by desc.
func Func(desc string, fn func(*rules.Rule) bool) Matcher {
	return funcMatcher{desc: desc, fn: fn}
}

func (m funcMatcher) Match(r *rules.Rule) bool {
	return m.fn(r)
}

func (m funcMatcher) String() string {
	return m.desc
}

// Any matches when at least one of ms matches.
func Any(ms ...Matcher) Matcher {
	return Func(join(" || ", ms), func(r *rules.Rule) bool {
		for _, m := range ms {
			if m.Match(r) {
				return true
			}
		}

		return false
	})
}

// All matches when every one of ms matches.
func All(ms ...Matcher) Matcher {
	return Func(join(" && ", ms), func(r *rules.Rule) bool {
		for _, m := range ms {
			if !m.Match(r) {
				return false
			}
		}

		return true
	})
}

func join(sep string, ms []Matcher) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = fmt.Sprintf("(%s)", m)
	}

	return strings.Join(parts, sep)
}
