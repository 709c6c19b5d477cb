package rules

import (
	"bytes"
	"errors"
	"fmt"
	"maps"

	"github.com/macropower/rewire/pkg/yaml"
)

// ErrNoRules indicates that a document holds no rule tree.
var ErrNoRules = errors.New("no rule tree found")

// Document is a decoded input file. It is either a bare rule list, or a
// bundler configuration whose rules live under `module.rules`; any other
// content of the configuration is carried through untouched.
type Document struct {
	Tree *Tree

	envelope map[string]any
}

// ParseDocument decodes YAML or JSON data into a [Document].
func ParseDocument(data []byte) (*Document, error) {
	var v any

	err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&v)
	if err != nil {
		return nil, fmt.Errorf("decode rule tree: %w", err)
	}

	return DocumentFromValue(v)
}

// DocumentFromValue builds a [Document] from a decoded value.
func DocumentFromValue(v any) (*Document, error) {
	switch tv := v.(type) {
	case []any:
		rs, err := ListFromValue(tv)
		if err != nil {
			return nil, fmt.Errorf("rules: %w", err)
		}

		return &Document{Tree: NewTree(rs...)}, nil

	case map[string]any:
		module, ok := tv["module"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: missing module", ErrNoRules)
		}

		raw, ok := module["rules"]
		if !ok {
			return nil, fmt.Errorf("%w: missing module.rules", ErrNoRules)
		}

		rs, err := ListFromValue(raw)
		if err != nil {
			return nil, fmt.Errorf("module.rules: %w", err)
		}

		return &Document{Tree: NewTree(rs...), envelope: tv}, nil
	}

	return nil, fmt.Errorf("%w: unexpected %T", ErrNoRules, v)
}

// WithTree returns a copy of d holding t in place of its tree.
func (d *Document) WithTree(t *Tree) *Document {
	return &Document{Tree: t, envelope: d.envelope}
}

// Value converts d back into a generic value suitable for encoding.
func (d *Document) Value() any {
	if d.envelope == nil {
		return d.Tree.Value()
	}

	out := maps.Clone(d.envelope)
	module, _ := out["module"].(map[string]any)
	module = maps.Clone(module)
	module["rules"] = d.Tree.Value()
	out["module"] = module

	return out
}

// Encode encodes d as YAML.
func (d *Document) Encode() ([]byte, error) {
	b := &bytes.Buffer{}

	enc := yaml.NewEncoder(b)
	err := enc.Encode(d.Value())
	if err != nil {
		return nil, fmt.Errorf("encode rule tree: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return nil, fmt.Errorf("encode rule tree: %w", err)
	}

	return b.Bytes(), nil
}
