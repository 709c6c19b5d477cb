package rules

// Tree is the top-level ordered rule sequence. Order is significant: rules
// and nested steps apply in sequence.
type Tree struct {
	Rules []*Rule
}

// NewTree creates a [Tree] holding the given rules.
func NewTree(rs ...*Rule) *Tree {
	if rs == nil {
		rs = []*Rule{}
	}

	return &Tree{Rules: rs}
}

// Slot returns the slot holding the top-level sequence.
func (t *Tree) Slot() *[]*Rule {
	return &t.Rules
}

// Clone returns a deep copy of t.
func (t *Tree) Clone() *Tree {
	rs := cloneRules(t.Rules)
	if rs == nil {
		rs = []*Rule{}
	}

	return &Tree{Rules: rs}
}

// Value converts t into a generic list suitable for encoding.
func (t *Tree) Value() []any {
	return ListValue(t.Rules)
}
