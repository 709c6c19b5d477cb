package rewire

import (
	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/mutate"
	"github.com/macropower/rewire/pkg/rules"
)

// AnchorStatus describes whether an anchor was found in a tree.
type AnchorStatus struct {
	Name     string
	Matcher  string
	Path     string
	Found    bool
	Required bool
}

// Report describes how [Transform.Apply] would treat a tree.
type Report struct {
	Anchors   []AnchorStatus
	Placement mutate.Position
}

// Ready reports whether every required anchor was found.
func (r Report) Ready() bool {
	for _, a := range r.Anchors {
		if a.Required && !a.Found {
			return false
		}
	}

	return true
}

// Inspect locates t's top-level anchors in tree without modifying it.
func (t *Transform) Inspect(tree *rules.Tree) Report {
	anchors := []struct {
		m        match.Matcher
		name     string
		required bool
	}{
		{name: AnchorStyle, m: t.anchors.Style, required: true},
		{name: AnchorModuleStyle, m: t.anchors.ModuleStyle, required: t.strict},
		{name: AnchorCatchAll, m: t.anchors.CatchAll, required: t.strict},
	}

	rep := Report{
		Placement: mutate.Place(tree, t.anchors.CatchAll).Position,
	}

	for _, a := range anchors {
		st := AnchorStatus{
			Name:     a.name,
			Matcher:  a.m.String(),
			Required: a.required,
		}

		loc, err := locate.Find(tree.Slot(), a.m)
		if err == nil {
			st.Found = true
			st.Path, _ = locate.Path(tree.Slot(), loc)
		}

		rep.Anchors = append(rep.Anchors, st)
	}

	return rep
}
