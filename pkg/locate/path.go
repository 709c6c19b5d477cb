package locate

import (
	"strconv"
	"strings"

	"github.com/macropower/rewire/pkg/rules"
)

// Path renders the position of loc relative to root, e.g. `[1].oneOf[3]`.
// It returns false if loc does not point into the tree under root.
func Path(root *[]*rules.Rule, loc Locator) (string, bool) {
	if root == nil || !loc.Valid() {
		return "", false
	}

	var segs []string
	if path(root, loc, &segs) {
		return strings.Join(segs, ""), true
	}

	return "", false
}

func path(slot *[]*rules.Rule, loc Locator, segs *[]string) bool {
	if slot == loc.Slot {
		*segs = append(*segs, index(loc.Index))
		return true
	}

	for i, r := range *slot {
		children := r.Children()
		if children == nil {
			continue
		}

		mark := len(*segs)
		*segs = append(*segs, index(i), "."+r.ChildrenField())

		if path(children, loc, segs) {
			return true
		}

		*segs = (*segs)[:mark]
	}

	return false
}

func index(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}
