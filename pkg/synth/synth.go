// Package synth builds new rules from existing ones.
//
// Every function here works on deep copies: the anchor a rule is built from
// is never modified.
package synth

import (
	"fmt"
	"maps"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/mutate"
	"github.com/macropower/rewire/pkg/rules"
)

// Overlay holds the fields to set on a cloned rule. Nil fields keep the
// anchor's value.
type Overlay struct {
	Test    *rules.Conditions
	Include *rules.Conditions
	Exclude *rules.Conditions
	// Options are shallow-merged over the anchor's options; overlay keys
	// win.
	Options map[string]any
}

// Clone returns a deep copy of anchor with o applied.
func Clone(anchor *rules.Rule, o Overlay) *rules.Rule {
	c := anchor.Clone()

	if o.Test != nil {
		c.Test = o.Test.Clone()
	}
	if o.Include != nil {
		c.Include = o.Include.Clone()
	}
	if o.Exclude != nil {
		c.Exclude = o.Exclude.Clone()
	}
	if o.Options != nil {
		if c.Options == nil {
			c.Options = make(map[string]any, len(o.Options))
		}

		maps.Copy(c.Options, rules.CopyOptions(o.Options))
	}

	return c
}

// Scoped returns a copy of anchor that handles test, restricted to the given
// include and exclude scopes. A zero scope leaves the anchor's field as is.
func Scoped(anchor *rules.Rule, test rules.Pattern, include, exclude rules.Conditions) *rules.Rule {
	t := rules.One(test)
	o := Overlay{Test: &t}

	if !include.IsZero() {
		o.Include = &include
	}
	if !exclude.IsZero() {
		o.Exclude = &exclude
	}

	return Clone(anchor, o)
}

// Extend adds a copy of step to r's chain, right after the step matched by
// after. When no step matches, the copy is appended to the chain held in
// field. It fails with a [*rules.MalformedNodeError] when r has no chain in
// that field.
//
// r is modified; call it on a rule built by [Clone] or [Scoped].
func Extend(r *rules.Rule, after locate.Matcher, step *rules.Rule, field rules.ChainField) error {
	if after != nil {
		loc, err := locate.FindIn(r, after)
		if err == nil {
			return mutate.InsertAfter(loc, step.Clone())
		}
	}

	slot := r.ChainSlot(field)
	if slot == nil {
		return &rules.MalformedNodeError{
			Field:  field.String(),
			Reason: "rule has no loader chain to extend",
		}
	}

	mutate.Append(slot, step.Clone())

	return nil
}

// EnableModules turns on locally-scoped class names for the step matched by
// cssLoader, setting `modules: true` and the given `localIdentName`. Options
// already present on the step win.
//
// r is modified; call it on a rule built by [Clone] or [Scoped].
func EnableModules(r *rules.Rule, cssLoader locate.Matcher, localIdentName string) error {
	loc, err := locate.FindIn(r, cssLoader)
	if err != nil {
		return fmt.Errorf("enable modules: %w", err)
	}

	step := loc.Rule()

	opts := map[string]any{
		"modules":        true,
		"localIdentName": localIdentName,
	}
	maps.Copy(opts, step.Options)
	step.Options = opts

	return nil
}
