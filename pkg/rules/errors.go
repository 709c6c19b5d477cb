package rules

import (
	"errors"
	"fmt"
)

var (
	// ErrAnchorNotFound indicates that a required rule is absent from the
	// tree, so the tree has an unexpected shape.
	ErrAnchorNotFound = errors.New("anchor rule not found")
	// ErrMalformedNode indicates that a rule lacks a field that must be
	// extended.
	ErrMalformedNode = errors.New("malformed rule")
)

// AnchorNotFoundError reports a required rule that no node matched.
type AnchorNotFoundError struct {
	Err     error
	Anchor  string
	Matcher string
}

func (e *AnchorNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s (matching %s)", ErrAnchorNotFound, e.Anchor, e.Matcher)
}

func (e *AnchorNotFoundError) Unwrap() error {
	return e.Err
}

func (e *AnchorNotFoundError) Is(target error) bool {
	return target == ErrAnchorNotFound
}

// MalformedNodeError reports a rule missing a field it must carry.
type MalformedNodeError struct {
	Anchor string
	Field  string
	Reason string
}

func (e *MalformedNodeError) Error() string {
	if e.Anchor == "" {
		return fmt.Sprintf("%v: field %q: %s", ErrMalformedNode, e.Field, e.Reason)
	}

	return fmt.Sprintf("%v: %s: field %q: %s", ErrMalformedNode, e.Anchor, e.Field, e.Reason)
}

func (e *MalformedNodeError) Is(target error) bool {
	return target == ErrMalformedNode
}
