package rules

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is a rule condition as written in the tree: either the canonical
// string form of a regular expression literal, e.g. `/\.css$/`, or a plain
// string, which the bundler reads as an absolute path prefix, e.g.
// `/app/src`. Plain strings are kept verbatim.
//
// Two patterns are equal only if their canonical forms are identical.
// Semantically equivalent expressions written differently (for example with
// different escaping) do not compare equal; rule trees match by literal
// convention, so this is kept as-is.
type Pattern string

var literalRe = regexp.MustCompile(`^/(.*)/([dgimsuvy]*)$`)

// NewPattern returns the [Pattern] for the given expression source.
func NewPattern(source string) Pattern {
	return Pattern("/" + source + "/")
}

// ParsePattern reads a condition string. Literals (`/source/flags`) and
// plain path strings are both kept as written.
func ParsePattern(s string) Pattern {
	return Pattern(s)
}

// ParseExpression reads a string that is always meant as a regular
// expression: literals are kept, bare source is wrapped with [NewPattern].
func ParseExpression(s string) Pattern {
	if literalRe.MatchString(s) {
		return Pattern(s)
	}

	return NewPattern(s)
}

// PathPattern returns a pattern matching the given directory segments, each
// wrapped in the host path separator.
func PathPattern(segments ...string) Pattern {
	sep := escapeSeparator(filepath.Separator)

	var sb strings.Builder
	sb.WriteString(sep)
	for _, seg := range segments {
		sb.WriteString(regexp.QuoteMeta(seg))
		sb.WriteString(sep)
	}

	return NewPattern(sb.String())
}

func escapeSeparator(sep rune) string {
	if sep == '/' {
		return `\/`
	}

	return regexp.QuoteMeta(string(sep))
}

// IsLiteral reports whether p is a regular expression literal rather than a
// plain path string.
func (p Pattern) IsLiteral() bool {
	return literalRe.MatchString(string(p))
}

// Source returns the expression source, without delimiters or flags. For a
// plain string it returns the string itself.
func (p Pattern) Source() string {
	m := literalRe.FindStringSubmatch(string(p))
	if m == nil {
		return string(p)
	}

	return m[1]
}

// Flags returns the literal's flags, if any.
func (p Pattern) Flags() string {
	m := literalRe.FindStringSubmatch(string(p))
	if m == nil {
		return ""
	}

	return m[2]
}

func (p Pattern) String() string {
	return string(p)
}

// Regexp compiles the pattern for matching paths. Escaped slashes are
// unescaped and the `i` flag is honored; other flags are ignored. A plain
// string matches paths starting with it.
func (p Pattern) Regexp() (*regexp.Regexp, error) {
	if !p.IsLiteral() {
		return regexp.Compile("^" + regexp.QuoteMeta(string(p))) //nolint:wrapcheck // Return the original error.
	}

	src := strings.ReplaceAll(p.Source(), `\/`, `/`)
	if strings.Contains(p.Flags(), "i") {
		src = "(?i)" + src
	}

	return regexp.Compile(src) //nolint:wrapcheck // Return the original error.
}
