package rewire

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/log"
	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/mutate"
	"github.com/macropower/rewire/pkg/rules"
	"github.com/macropower/rewire/pkg/synth"
)

var tracer = otel.Tracer("github.com/macropower/rewire/pkg/rewire")

// Default is a [Transform] with default settings.
var Default = New()

// Transform adds rules for a new stylesheet type to rule trees. It is
// immutable once built and safe for concurrent use.
type Transform struct {
	logger         *slog.Logger
	loaderOptions  map[string]any
	anchors        Anchors
	include        rules.Conditions
	exclude        rules.Conditions
	localIdentName string
	test           rules.Pattern
	loader         string
	strict         bool
}

// New creates a [Transform]. Without options it handles Less files with
// less-loader, giving files under src/components locally-scoped class
// names.
func New(opts ...Option) *Transform {
	t := &Transform{
		anchors:        DefaultAnchors(),
		localIdentName: DefaultLocalIdentName,
		loaderOptions:  map[string]any{},
		include:        rules.One(rules.PathPattern("src", "components")),
		exclude:        rules.One(rules.PathPattern("node_modules")),
	}
	WithExtension(DefaultExtension)(t)

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// With returns a copy of t with opts applied.
func (t *Transform) With(opts ...Option) *Transform {
	c := *t
	c.loaderOptions = rules.CopyOptions(t.loaderOptions)

	for _, opt := range opts {
		opt(&c)
	}

	return &c
}

// Test returns the pattern of the rules t adds.
func (t *Transform) Test() rules.Pattern {
	return t.test
}

// Apply returns a copy of tree with the new rules added. tree itself is
// never modified; on error, nil is returned.
//
// Errors wrap [ErrAnchorNotFound] when a required rule is missing, or
// [ErrMalformedNode] when a rule lacks a field that must be extended. A nil
// tree is reported as [rules.ErrNoRules].
func (t *Transform) Apply(ctx context.Context, tree *rules.Tree, env Env) (*rules.Tree, error) {
	ctx, span := tracer.Start(ctx, "rewire.Apply")
	defer span.End()

	span.SetAttributes(
		attribute.String("rewire.env", string(env)),
		attribute.String("rewire.test", t.test.String()),
	)

	if tree == nil {
		err := fmt.Errorf("%w: nil tree", rules.ErrNoRules)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	out, err := t.apply(ctx, tree.Clone(), env)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	return out, nil
}

func (t *Transform) apply(ctx context.Context, tree *rules.Tree, env Env) (*rules.Tree, error) {
	logger := t.log(ctx).With(slog.String("env", string(env)))
	field := env.ChainField()

	style, err := t.require(tree, AnchorStyle, t.anchors.Style)
	if err != nil {
		return nil, err
	}

	// Global stylesheets: everything outside the module scope.
	global := synth.Scoped(style, t.test, rules.Conditions{}, t.include)

	err = t.extend(global, AnchorStyle, field)
	if err != nil {
		return nil, err
	}

	moduleBase, err := t.optional(logger, tree, AnchorModuleStyle, t.anchors.ModuleStyle)
	if err != nil {
		return nil, err
	}

	baseName := AnchorModuleStyle
	if moduleBase == nil {
		moduleBase = style
		baseName = AnchorStyle
	}

	modules := synth.Scoped(moduleBase, t.test, t.include, t.exclude)

	err = synth.EnableModules(modules, t.anchors.CSSLoader, t.localIdentName)
	if err != nil {
		return nil, &rules.AnchorNotFoundError{
			Anchor:  AnchorCSSLoader + " of " + baseName,
			Matcher: t.anchors.CSSLoader.String(),
			Err:     err,
		}
	}

	err = t.extend(modules, baseName, field)
	if err != nil {
		return nil, err
	}

	catchAll, err := t.optional(logger, tree, AnchorCatchAll, t.anchors.CatchAll)
	if err != nil {
		return nil, err
	}

	if catchAll != nil && catchAll.Exclude.IsZero() {
		return nil, &rules.MalformedNodeError{
			Anchor: AnchorCatchAll,
			Field:  "exclude",
			Reason: "no exclusion list to extend",
		}
	}

	placement := mutate.Place(tree, t.anchors.CatchAll)

	err = placement.Insert(global, modules)
	if err != nil {
		return nil, fmt.Errorf("insert rules: %w", err)
	}

	logger.Debug("inserted rules",
		slog.String("test", t.test.String()),
		slog.String("position", placement.Position.String()),
	)

	if catchAll != nil {
		catchAll.Exclude = catchAll.Exclude.With(t.test)
	}

	return tree, nil
}

// extend appends the new loader to r's chain, after the postcss step.
func (t *Transform) extend(r *rules.Rule, anchor string, field rules.ChainField) error {
	step := &rules.Rule{
		Loader:  t.loader,
		Options: rules.CopyOptions(t.loaderOptions),
	}

	err := synth.Extend(r, t.anchors.PostCSSLoader, step, field)

	var malformed *rules.MalformedNodeError
	if errors.As(err, &malformed) && malformed.Anchor == "" {
		malformed.Anchor = anchor
	}

	return err
}

// require locates a rule that must exist.
func (t *Transform) require(tree *rules.Tree, anchor string, m match.Matcher) (*rules.Rule, error) {
	r, err := locate.FindRule(tree.Slot(), m)
	if err != nil {
		return nil, &rules.AnchorNotFoundError{
			Anchor:  anchor,
			Matcher: m.String(),
			Err:     err,
		}
	}

	return r, nil
}

// optional locates a rule that is only required in strict mode. It returns
// nil, nil when the rule is absent and t is not strict.
//
//nolint:nilnil // Absence is not an error outside strict mode.
func (t *Transform) optional(logger *slog.Logger, tree *rules.Tree, anchor string, m match.Matcher) (*rules.Rule, error) {
	r, err := t.require(tree, anchor, m)
	if err == nil {
		return r, nil
	}
	if t.strict {
		return nil, err
	}

	logger.Warn("optional anchor not found",
		slog.String("anchor", anchor),
		slog.String("matcher", m.String()),
	)

	return nil, nil
}

func (t *Transform) log(ctx context.Context) *slog.Logger {
	if t.logger != nil && log.FromContext(ctx) == nil {
		return t.logger
	}

	return log.WithContext(ctx)
}
