// Package locate searches a rule tree depth-first and returns mutable
// handles to the nodes it finds.
package locate

import (
	"errors"
	"fmt"

	"github.com/macropower/rewire/pkg/rules"
)

// ErrNotFound is returned when no node in the tree satisfies the matcher.
var ErrNotFound = errors.New("no matching rule")

// Matcher is a predicate over a single rule.
type Matcher interface {
	Match(r *rules.Rule) bool
}

// Locator identifies a node by the slot of its containing sequence and its
// index in that sequence. The index is only meaningful together with the
// slot it was found in.
type Locator struct {
	Slot  *[]*rules.Rule
	Index int
}

// Rule returns the located node.
func (l Locator) Rule() *rules.Rule {
	return (*l.Slot)[l.Index]
}

// Valid reports whether the locator still points inside its slot.
func (l Locator) Valid() bool {
	return l.Slot != nil && l.Index >= 0 && l.Index < len(*l.Slot)
}

// Find searches the sequence held in root, depth-first and pre-order, and
// returns the first node that m matches.
func Find(root *[]*rules.Rule, m Matcher) (Locator, error) {
	if root != nil {
		if loc, ok := find(root, m); ok {
			return loc, nil
		}
	}

	return Locator{}, notFound(m)
}

// FindIn searches the children of r. The node r itself is not tested.
func FindIn(r *rules.Rule, m Matcher) (Locator, error) {
	return Find(r.Children(), m)
}

// FindRule is like [Find] but returns the node itself.
func FindRule(root *[]*rules.Rule, m Matcher) (*rules.Rule, error) {
	loc, err := Find(root, m)
	if err != nil {
		return nil, err
	}

	return loc.Rule(), nil
}

func find(slot *[]*rules.Rule, m Matcher) (Locator, bool) {
	for i, r := range *slot {
		if m.Match(r) {
			return Locator{Slot: slot, Index: i}, true
		}

		if children := r.Children(); children != nil {
			if loc, ok := find(children, m); ok {
				return loc, true
			}
		}
	}

	return Locator{}, false
}

func notFound(m Matcher) error {
	if s, ok := m.(fmt.Stringer); ok {
		return fmt.Errorf("%w: %s", ErrNotFound, s.String())
	}

	return ErrNotFound
}

// WalkFunc is called for every node visited by [Walk]. Returning false
// skips the node's children.
type WalkFunc func(loc Locator, depth int) bool

// Walk visits every node under root in the same order [Find] tests them.
func Walk(root *[]*rules.Rule, fn WalkFunc) {
	if root == nil {
		return
	}

	walk(root, 0, fn)
}

func walk(slot *[]*rules.Rule, depth int, fn WalkFunc) {
	for i, r := range *slot {
		if !fn(Locator{Slot: slot, Index: i}, depth) {
			continue
		}

		if children := r.Children(); children != nil {
			walk(children, depth+1, fn)
		}
	}
}
