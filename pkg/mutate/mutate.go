// Package mutate splices rules into a rule tree at located positions.
//
// Insertion never reorders existing siblings: new rules are placed at the
// requested index and later entries shift right.
package mutate

import (
	"errors"
	"slices"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/rules"
)

var ErrStaleLocator = errors.New("locator does not point into its sequence")

// InsertBefore inserts nodes at the located index.
func InsertBefore(loc locate.Locator, nodes ...*rules.Rule) error {
	if !loc.Valid() {
		return ErrStaleLocator
	}

	*loc.Slot = slices.Insert(*loc.Slot, loc.Index, nodes...)

	return nil
}

// InsertAfter inserts nodes right after the located node.
func InsertAfter(loc locate.Locator, nodes ...*rules.Rule) error {
	if !loc.Valid() {
		return ErrStaleLocator
	}

	*loc.Slot = slices.Insert(*loc.Slot, loc.Index+1, nodes...)

	return nil
}

// Prepend inserts nodes at the front of the sequence held in slot.
func Prepend(slot *[]*rules.Rule, nodes ...*rules.Rule) {
	*slot = slices.Insert(*slot, 0, nodes...)
}

// Append adds nodes to the end of the sequence held in slot.
func Append(slot *[]*rules.Rule, nodes ...*rules.Rule) {
	*slot = append(*slot, nodes...)
}
