package rules

import (
	"fmt"
	"slices"
	"strings"
)

// Conditions holds the patterns of a `test`, `include` or `exclude` field.
// The field may be written as a single pattern or as a list; the written
// form is kept so that encoding round-trips.
type Conditions struct {
	Patterns []Pattern
	List     bool
}

// One returns [Conditions] holding a single pattern in scalar form.
func One(p Pattern) Conditions {
	return Conditions{Patterns: []Pattern{p}}
}

// ListOf returns [Conditions] in list form.
func ListOf(ps ...Pattern) Conditions {
	return Conditions{Patterns: slices.Clone(ps), List: true}
}

// IsZero reports whether the field is absent.
func (c Conditions) IsZero() bool {
	return len(c.Patterns) == 0 && !c.List
}

// Contains reports whether p is one of the patterns.
func (c Conditions) Contains(p Pattern) bool {
	return slices.Contains(c.Patterns, p)
}

// With returns a copy in list form with p appended.
func (c Conditions) With(p Pattern) Conditions {
	ps := make([]Pattern, 0, len(c.Patterns)+1)
	ps = append(ps, c.Patterns...)

	return Conditions{Patterns: append(ps, p), List: true}
}

// Clone returns an independent copy.
func (c Conditions) Clone() Conditions {
	return Conditions{Patterns: slices.Clone(c.Patterns), List: c.List}
}

// String joins the canonical forms with commas, the way a list of literals
// stringifies in the host tool.
func (c Conditions) String() string {
	parts := make([]string, len(c.Patterns))
	for i, p := range c.Patterns {
		parts[i] = p.String()
	}

	return strings.Join(parts, ",")
}

func (c Conditions) value() any {
	if c.IsZero() {
		return nil
	}
	if !c.List && len(c.Patterns) == 1 {
		return c.Patterns[0].String()
	}

	out := make([]any, len(c.Patterns))
	for i, p := range c.Patterns {
		out[i] = p.String()
	}

	return out
}

func conditionsFromValue(field string, v any) (Conditions, error) {
	switch tv := v.(type) {
	case nil:
		return Conditions{}, nil
	case string:
		return One(ParsePattern(tv)), nil
	case []any:
		c := Conditions{List: true, Patterns: make([]Pattern, 0, len(tv))}
		for i, item := range tv {
			s, ok := item.(string)
			if !ok {
				return Conditions{}, fmt.Errorf("%s[%d]: %w: got %T", field, i, ErrUnsupportedCondition, item)
			}

			c.Patterns = append(c.Patterns, ParsePattern(s))
		}

		return c, nil
	}

	return Conditions{}, fmt.Errorf("%s: %w: got %T", field, ErrUnsupportedCondition, v)
}
