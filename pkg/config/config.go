package config

import (
	"errors"
	"fmt"
	"sync"

	_ "embed"

	"github.com/invopop/jsonschema"

	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/rewire"
	"github.com/macropower/rewire/pkg/rules"
	"github.com/macropower/rewire/pkg/schema"
	"github.com/macropower/rewire/pkg/yaml"
)

const (
	// APIVersion is the current API version of the configuration file.
	APIVersion = "rewire.macropower.dev/v1beta1"
	// Kind is the kind of the configuration file.
	Kind = "Configuration"

	schemaID = "https://raw.githubusercontent.com/macropower/rewire/refs/heads/main/pkg/config/config.v1beta1.json"
)

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	ErrInvalidMatcher = errors.New("invalid matcher")

	// DefaultValidator returns the validator for the configuration schema.
	DefaultValidator = sync.OnceValues(func() (*yaml.Validator, error) {
		b, err := Schema()
		if err != nil {
			return nil, err
		}

		return yaml.NewValidator(schemaID, b)
	})
)

//go:generate go run ../../internal/schemagen/main.go -o config.v1beta1.json

// Config is the rewire configuration file.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	// LoaderOptions are passed to the new loader.
	LoaderOptions map[string]any `json:"loaderOptions,omitempty" jsonschema:"title=Loader Options"`
	// Anchors override how existing rules are found.
	Anchors *Anchors `json:"anchors,omitempty" jsonschema:"title=Anchors"`
	// APIVersion specifies the API version for this configuration.
	APIVersion string `json:"apiVersion" jsonschema:"title=API Version"`
	// Kind defines the type of configuration.
	Kind string `json:"kind" jsonschema:"title=Kind"`
	// Extension is the file type to add rules for, e.g. "less".
	Extension string `json:"extension,omitempty" jsonschema:"title=Extension"`
	// Test overrides the test pattern derived from the extension.
	Test string `json:"test,omitempty" jsonschema:"title=Test Pattern"`
	// Loader overrides the loader identifier derived from the extension.
	Loader string `json:"loader,omitempty" jsonschema:"title=Loader"`
	// LocalIdentName is the class name format for locally-scoped styles.
	LocalIdentName string `json:"localIdentName,omitempty" jsonschema:"title=Local Ident Name"`
	// Include lists the paths whose stylesheets get locally-scoped names.
	Include []string `json:"include,omitempty" jsonschema:"title=Include"`
	// Exclude lists paths excluded from locally-scoped names.
	Exclude []string `json:"exclude,omitempty" jsonschema:"title=Exclude"`
	// Strict requires the module style rule and the catch-all rule.
	Strict bool `json:"strict,omitempty" jsonschema:"title=Strict"`
}

// Anchors overrides the matchers used to find existing rules.
type Anchors struct {
	Style         *Matcher `json:"style,omitempty"`
	ModuleStyle   *Matcher `json:"moduleStyle,omitempty"`
	CatchAll      *Matcher `json:"catchAll,omitempty"`
	CSSLoader     *Matcher `json:"cssLoader,omitempty"`
	PostCSSLoader *Matcher `json:"postcssLoader,omitempty"`
}

// Matcher identifies a rule. Exactly one field must be set.
type Matcher struct {
	// Test matches the rule's test pattern, compared as text.
	Test string `json:"test,omitempty" jsonschema:"title=Test Pattern"`
	// Loader matches the rule's loader identifier by path segment.
	Loader string `json:"loader,omitempty" jsonschema:"title=Loader"`
	// Match is a CEL expression evaluated against the rule.
	Match string `json:"match,omitempty" jsonschema:"title=CEL Expression"`
}

// New creates a new [Config] with default values.
func New() *Config {
	c := &Config{
		APIVersion: APIVersion,
		Kind:       Kind,
	}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults initializes empty fields to their default values.
func (c *Config) EnsureDefaults() {
	if c.Extension == "" {
		c.Extension = rewire.DefaultExtension
	}
	if c.LocalIdentName == "" {
		c.LocalIdentName = rewire.DefaultLocalIdentName
	}
	if c.LoaderOptions == nil {
		c.LoaderOptions = map[string]any{}
	}
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	schema.ExtendWithEnum(jss, "apiVersion", []string{APIVersion})
	schema.ExtendWithEnum(jss, "kind", []string{Kind})
}

// Validate checks the fields the schema cannot express.
func (c *Config) Validate() error {
	if c.Anchors == nil {
		return nil
	}

	for name, m := range c.Anchors.all() {
		if m == nil {
			continue
		}

		_, err := m.Matcher()
		if err != nil {
			return fmt.Errorf("anchors.%s: %w", name, err)
		}
	}

	return nil
}

// Options converts the configuration into [rewire.Option]s.
func (c *Config) Options() ([]rewire.Option, error) {
	opts := []rewire.Option{
		rewire.WithExtension(c.Extension),
		rewire.WithLocalIdentName(c.LocalIdentName),
		rewire.WithLoaderOptions(c.LoaderOptions),
		rewire.WithStrict(c.Strict),
	}

	if c.Test != "" {
		opts = append(opts, rewire.WithTest(rules.ParseExpression(c.Test)))
	}
	if c.Loader != "" {
		opts = append(opts, rewire.WithLoader(c.Loader))
	}
	if len(c.Include) > 0 {
		opts = append(opts, rewire.WithInclude(patterns(c.Include)...))
	}
	if len(c.Exclude) > 0 {
		opts = append(opts, rewire.WithExclude(patterns(c.Exclude)...))
	}

	if c.Anchors != nil {
		anchors, err := c.Anchors.anchors()
		if err != nil {
			return nil, err
		}

		opts = append(opts, rewire.WithAnchors(anchors))
	}

	return opts, nil
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Schema returns the JSON schema of the configuration file.
func Schema() ([]byte, error) {
	b, err := schema.NewGenerator(&Config{}, schemaID).Generate()
	if err != nil {
		return nil, fmt.Errorf("generate schema: %w", err)
	}

	return b, nil
}

// Matcher compiles m into a [match.Matcher].
//
//nolint:ireturn // Matchers are polymorphic.
func (m *Matcher) Matcher() (match.Matcher, error) {
	set := 0
	for _, s := range []string{m.Test, m.Loader, m.Match} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, fmt.Errorf("%w: exactly one of test, loader or match must be set", ErrInvalidMatcher)
	}

	switch {
	case m.Test != "":
		return match.Test(rules.ParseExpression(m.Test)), nil
	case m.Loader != "":
		return match.Loader(m.Loader), nil
	}

	cm, err := match.Expr(m.Match)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMatcher, err)
	}

	return cm, nil
}

func (a *Anchors) all() map[string]*Matcher {
	return map[string]*Matcher{
		"style":         a.Style,
		"moduleStyle":   a.ModuleStyle,
		"catchAll":      a.CatchAll,
		"cssLoader":     a.CSSLoader,
		"postcssLoader": a.PostCSSLoader,
	}
}

func (a *Anchors) anchors() (rewire.Anchors, error) {
	var (
		out rewire.Anchors
		err error
	)

	targets := map[string]*match.Matcher{
		"style":         &out.Style,
		"moduleStyle":   &out.ModuleStyle,
		"catchAll":      &out.CatchAll,
		"cssLoader":     &out.CSSLoader,
		"postcssLoader": &out.PostCSSLoader,
	}

	for name, m := range a.all() {
		if m == nil {
			continue
		}

		*targets[name], err = m.Matcher()
		if err != nil {
			return rewire.Anchors{}, fmt.Errorf("anchors.%s: %w", name, err)
		}
	}

	return out, nil
}

func patterns(ss []string) []rules.Pattern {
	out := make([]rules.Pattern, len(ss))
	for i, s := range ss {
		out[i] = rules.ParsePattern(s)
	}

	return out
}
