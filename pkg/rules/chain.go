package rules

import "fmt"

// ChainField names the field that holds a rule's chain of steps.
type ChainField int

const (
	// ChainUse is the `use` list.
	ChainUse ChainField = iota
	// ChainLoader is the `loader` field holding a list.
	ChainLoader
)

func (f ChainField) String() string {
	switch f {
	case ChainUse:
		return fieldUse
	case ChainLoader:
		return fieldLoader
	}

	return fmt.Sprintf("ChainField(%d)", int(f))
}

// ChainSlot returns the slot of the chain held in field f, or nil when r
// has no chain there.
func (r *Rule) ChainSlot(f ChainField) *[]*Rule {
	switch f {
	case ChainUse:
		if r.Use != nil || r.hasUse {
			return &r.Use
		}
	case ChainLoader:
		if r.LoaderChain != nil || r.hasChain {
			return &r.LoaderChain
		}
	}

	return nil
}

// CopyOptions returns a deep copy of an options mapping.
func CopyOptions(m map[string]any) map[string]any {
	return deepCopyMap(m)
}
