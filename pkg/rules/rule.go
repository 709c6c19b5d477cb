package rules

import (
	"fmt"
	"maps"

	"github.com/mitchellh/copystructure"
)

// Kind is the variant tag of a [Rule].
type Kind int

const (
	// KindLeaf rules have no children.
	KindLeaf Kind = iota
	// KindChain rules apply an ordered sequence of steps, held in `use` or
	// in a `loader` list.
	KindChain
	// KindGroup rules hold alternatives under `oneOf`; the first matching
	// alternative wins.
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindChain:
		return "chain"
	case KindGroup:
		return "group"
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}

// Rule is one node of the rule tree.
type Rule struct {
	// Options holds loader-specific settings.
	Options map[string]any
	// Extra holds fields this package does not interpret. They are kept
	// verbatim.
	Extra map[string]any

	Test    Conditions
	Include Conditions
	Exclude Conditions

	// Loader is the single loader identifier, usually a resolved path.
	Loader string

	Use         []*Rule
	OneOf       []*Rule
	LoaderChain []*Rule

	// Shorthand marks a step written as a bare loader string.
	Shorthand bool

	// Record which sequence fields were written, even when empty.
	hasUse, hasOneOf, hasChain bool
}

// Kind returns the variant of r, following the same precedence as
// [Rule.Children].
func (r *Rule) Kind() Kind {
	switch {
	case r.Use != nil || r.hasUse:
		return KindChain
	case r.OneOf != nil || r.hasOneOf:
		return KindGroup
	case r.LoaderChain != nil || r.hasChain:
		return KindChain
	}

	return KindLeaf
}

// Children returns the slot holding r's child sequence: `use` if present,
// else `oneOf`, else the `loader` list. It returns nil for leaf rules.
func (r *Rule) Children() *[]*Rule {
	switch {
	case r.Use != nil || r.hasUse:
		return &r.Use
	case r.OneOf != nil || r.hasOneOf:
		return &r.OneOf
	case r.LoaderChain != nil || r.hasChain:
		return &r.LoaderChain
	}

	return nil
}

// LoaderIs reports whether r's single loader identifier names the given
// loader. See [HasPathSegment].
func (r *Rule) LoaderIs(name string) bool {
	return r.Loader != "" && HasPathSegment(r.Loader, name)
}

// Clone returns a deep copy of r. The copy shares no mutable state with r.
func (r *Rule) Clone() *Rule {
	if r == nil {
		return nil
	}

	c := &Rule{
		Options:   deepCopyMap(r.Options),
		Extra:     deepCopyMap(r.Extra),
		Test:      r.Test.Clone(),
		Include:   r.Include.Clone(),
		Exclude:   r.Exclude.Clone(),
		Loader:    r.Loader,
		Shorthand: r.Shorthand,
		hasUse:    r.hasUse,
		hasOneOf:  r.hasOneOf,
		hasChain:  r.hasChain,
	}
	c.Use = cloneRules(r.Use)
	c.OneOf = cloneRules(r.OneOf)
	c.LoaderChain = cloneRules(r.LoaderChain)

	return c
}

func cloneRules(rs []*Rule) []*Rule {
	if rs == nil {
		return nil
	}

	out := make([]*Rule, len(rs))
	for i, r := range rs {
		out[i] = r.Clone()
	}

	return out
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}

	c, err := copystructure.Copy(m)
	if err != nil {
		// Decoded values are plain maps, slices and scalars, which always
		// copy; fall back to a shallow copy for anything exotic.
		return maps.Clone(m)
	}

	out, ok := c.(map[string]any)
	if !ok {
		return maps.Clone(m)
	}

	return out
}

// ChildrenField returns the name of the field [Rule.Children] reads, or ""
// for leaf rules.
func (r *Rule) ChildrenField() string {
	switch {
	case r.Use != nil || r.hasUse:
		return fieldUse
	case r.OneOf != nil || r.hasOneOf:
		return fieldOneOf
	case r.LoaderChain != nil || r.hasChain:
		return fieldLoader
	}

	return ""
}
