package rewire

import (
	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/rules"
)

// Anchor names, as reported in errors and by [Transform.Inspect].
const (
	AnchorStyle         = "style rule"
	AnchorModuleStyle   = "module style rule"
	AnchorCatchAll      = "catch-all rule"
	AnchorCSSLoader     = "css-loader step"
	AnchorPostCSSLoader = "postcss-loader step"
)

// Anchors holds the matchers used to find existing rules.
type Anchors struct {
	// Style finds the generic stylesheet rule that new rules are cloned
	// from.
	Style match.Matcher
	// ModuleStyle finds a rule for locally-scoped stylesheets, if the tree
	// has one.
	ModuleStyle match.Matcher
	// CatchAll finds the fallback rule that treats unknown files as opaque
	// assets.
	CatchAll match.Matcher
	// CSSLoader finds the step that resolves stylesheet imports.
	CSSLoader match.Matcher
	// PostCSSLoader finds the step the new loader runs after.
	PostCSSLoader match.Matcher
}

// DefaultAnchors returns the matchers for trees generated by common
// application scaffolds.
func DefaultAnchors() Anchors {
	return Anchors{
		Style:         match.Test(rules.NewPattern(`\.css$`)),
		ModuleStyle:   match.Test(rules.NewPattern(`\.module\.css$`)),
		CatchAll:      match.Loader("file-loader"),
		CSSLoader:     match.Loader("css-loader"),
		PostCSSLoader: match.Loader("postcss-loader"),
	}
}

// merge returns a with every non-nil matcher of o applied over it.
func (a Anchors) merge(o Anchors) Anchors {
	if o.Style != nil {
		a.Style = o.Style
	}
	if o.ModuleStyle != nil {
		a.ModuleStyle = o.ModuleStyle
	}
	if o.CatchAll != nil {
		a.CatchAll = o.CatchAll
	}
	if o.CSSLoader != nil {
		a.CSSLoader = o.CSSLoader
	}
	if o.PostCSSLoader != nil {
		a.PostCSSLoader = o.PostCSSLoader
	}

	return a
}
