package mutate

import (
	"fmt"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/rules"
)

// Position names where a [Placement] puts new rules.
type Position int

const (
	// BeforeAnchor inserts right before the anchor rule.
	BeforeAnchor Position = iota
	// GroupFront prepends to the first `oneOf` group in the tree.
	GroupFront
	// TopLevelEnd appends to the top-level sequence.
	TopLevelEnd
)

func (p Position) String() string {
	switch p {
	case BeforeAnchor:
		return "before anchor"
	case GroupFront:
		return "front of group"
	case TopLevelEnd:
		return "end of top level"
	}

	return fmt.Sprintf("Position(%d)", int(p))
}

// Placement decides where new rules go in a tree.
type Placement struct {
	anchor   locate.Locator
	slot     *[]*rules.Rule
	Position Position
}

var groupMatcher = groupRule{}

type groupRule struct{}

func (groupRule) Match(r *rules.Rule) bool { return r.Kind() == rules.KindGroup }

func (groupRule) String() string { return "oneOf group" }

// Place chooses a [Placement] for new rules in t:
//
//  1. If anchor matches a rule, new rules go right before it, in the same
//     sequence.
//  2. Otherwise, if the tree holds a `oneOf` group, new rules are
//     prepended to the first one, since only the first matching
//     alternative of a group applies.
//  3. Otherwise they are appended to the top-level sequence.
func Place(t *rules.Tree, anchor locate.Matcher) Placement {
	if anchor != nil {
		if loc, err := locate.Find(t.Slot(), anchor); err == nil {
			return Placement{Position: BeforeAnchor, anchor: loc}
		}
	}

	if loc, err := locate.Find(t.Slot(), groupMatcher); err == nil {
		return Placement{Position: GroupFront, slot: loc.Rule().Children()}
	}

	return Placement{Position: TopLevelEnd, slot: t.Slot()}
}

// Insert places nodes, in order, at the chosen position.
func (p Placement) Insert(nodes ...*rules.Rule) error {
	switch p.Position {
	case BeforeAnchor:
		return InsertBefore(p.anchor, nodes...)
	case GroupFront:
		Prepend(p.slot, nodes...)
	case TopLevelEnd:
		Append(p.slot, nodes...)
	}

	return nil
}
