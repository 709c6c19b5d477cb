package rewire

import (
	"log/slog"
	"regexp"

	"github.com/macropower/rewire/pkg/rules"
)

const (
	DefaultLocalIdentName = "[local]___[hash:base64:5]"
	DefaultExtension      = "less"
)

// Option configures a [Transform].
type Option func(*Transform)

// WithLocalIdentName sets the class name format for locally-scoped styles.
func WithLocalIdentName(format string) Option {
	return func(t *Transform) {
		t.localIdentName = format
	}
}

// WithLoaderOptions sets the options passed to the new loader.
func WithLoaderOptions(opts map[string]any) Option {
	return func(t *Transform) {
		t.loaderOptions = rules.CopyOptions(opts)
		if t.loaderOptions == nil {
			t.loaderOptions = map[string]any{}
		}
	}
}

// WithInclude sets the paths whose stylesheets get locally-scoped class
// names.
func WithInclude(ps ...rules.Pattern) Option {
	return func(t *Transform) {
		t.include = conditions(ps)
	}
}

// WithExclude sets the paths excluded from locally-scoped class names.
func WithExclude(ps ...rules.Pattern) Option {
	return func(t *Transform) {
		t.exclude = conditions(ps)
	}
}

// WithExtension sets the new file type by extension, e.g. "less" or
// "scss". It sets the test pattern and the loader name ("<ext>-loader");
// use [WithTest] or [WithLoader] afterwards to override either.
func WithExtension(ext string) Option {
	return func(t *Transform) {
		t.test = rules.NewPattern(`\.` + regexp.QuoteMeta(ext) + `$`)
		t.loader = ext + "-loader"
	}
}

// WithTest sets the test pattern of the new rules.
func WithTest(p rules.Pattern) Option {
	return func(t *Transform) {
		t.test = p
	}
}

// WithLoader sets the identifier of the new loader step. It may be a bare
// name or a resolved path.
func WithLoader(loader string) Option {
	return func(t *Transform) {
		t.loader = loader
	}
}

// WithAnchors overrides the matchers used to find existing rules. Nil
// fields keep their defaults.
func WithAnchors(a Anchors) Option {
	return func(t *Transform) {
		t.anchors = t.anchors.merge(a)
	}
}

// WithStrict makes the module style rule and the catch-all rule required.
func WithStrict(strict bool) Option {
	return func(t *Transform) {
		t.strict = strict
	}
}

// WithLogger sets the logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transform) {
		t.logger = logger
	}
}

func conditions(ps []rules.Pattern) rules.Conditions {
	switch len(ps) {
	case 0:
		return rules.Conditions{}
	case 1:
		return rules.One(ps[0])
	}

	return rules.ListOf(ps...)
}
