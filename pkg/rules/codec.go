package rules

import (
	"errors"
	"fmt"
	"maps"
)

const (
	fieldTest    = "test"
	fieldInclude = "include"
	fieldExclude = "exclude"
	fieldLoader  = "loader"
	fieldOptions = "options"
	fieldUse     = "use"
	fieldOneOf   = "oneOf"
)

var (
	ErrUnsupportedRule      = errors.New("unsupported rule value")
	ErrUnsupportedCondition = errors.New("unsupported condition value")
)

// FromValue converts a decoded YAML/JSON value into a [Rule]. A bare string
// is read as a shorthand loader step.
func FromValue(v any) (*Rule, error) {
	switch tv := v.(type) {
	case string:
		return &Rule{Loader: tv, Shorthand: true}, nil
	case map[string]any:
		return fromMap(tv)
	}

	return nil, fmt.Errorf("%w: got %T", ErrUnsupportedRule, v)
}

// ListFromValue converts a decoded sequence into rules.
func ListFromValue(v any) ([]*Rule, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %T", ErrUnsupportedRule, v)
	}

	out := make([]*Rule, 0, len(items))
	for i, item := range items {
		r, err := FromValue(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		out = append(out, r)
	}

	return out, nil
}

func fromMap(m map[string]any) (*Rule, error) {
	r := &Rule{}

	var err error
	for k, v := range m {
		switch k {
		case fieldTest:
			r.Test, err = conditionsFromValue(k, v)
		case fieldInclude:
			r.Include, err = conditionsFromValue(k, v)
		case fieldExclude:
			r.Exclude, err = conditionsFromValue(k, v)
		case fieldLoader:
			err = r.setLoader(v)
		case fieldOptions:
			if opts, ok := v.(map[string]any); ok {
				r.Options = opts
			} else {
				r.setExtra(k, v)
			}
		case fieldUse:
			r.Use, err = sequenceFromValue(k, v)
			r.hasUse = true
		case fieldOneOf:
			r.OneOf, err = sequenceFromValue(k, v)
			r.hasOneOf = true
		default:
			r.setExtra(k, v)
		}

		if err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Rule) setLoader(v any) error {
	switch tv := v.(type) {
	case string:
		r.Loader = tv
		return nil
	case []any:
		chain, err := ListFromValue(tv)
		if err != nil {
			return fmt.Errorf("%s: %w", fieldLoader, err)
		}

		r.LoaderChain = chain
		r.hasChain = true

		return nil
	}

	return fmt.Errorf("%s: %w: got %T", fieldLoader, ErrUnsupportedRule, v)
}

func (r *Rule) setExtra(k string, v any) {
	if r.Extra == nil {
		r.Extra = map[string]any{}
	}

	r.Extra[k] = v
}

func sequenceFromValue(field string, v any) ([]*Rule, error) {
	switch tv := v.(type) {
	case nil:
		return []*Rule{}, nil
	case []any:
		rs, err := ListFromValue(tv)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field, err)
		}

		return rs, nil
	}

	// A single step may be written without the surrounding list.
	r, err := FromValue(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}

	return []*Rule{r}, nil
}

// Value converts r back into a generic value suitable for encoding.
func (r *Rule) Value() any {
	if r.Shorthand && r.isBareLoader() {
		return r.Loader
	}

	return r.Map()
}

// Map returns r's fields as a generic mapping, even for shorthand steps.
func (r *Rule) Map() map[string]any {
	m := make(map[string]any, len(r.Extra)+4)
	maps.Copy(m, r.Extra)

	if v := r.Test.value(); v != nil {
		m[fieldTest] = v
	}
	if v := r.Include.value(); v != nil {
		m[fieldInclude] = v
	}
	if v := r.Exclude.value(); v != nil {
		m[fieldExclude] = v
	}
	if r.Loader != "" {
		m[fieldLoader] = r.Loader
	}
	if r.Options != nil {
		m[fieldOptions] = r.Options
	}
	if r.Use != nil || r.hasUse {
		m[fieldUse] = ListValue(r.Use)
	}
	if r.OneOf != nil || r.hasOneOf {
		m[fieldOneOf] = ListValue(r.OneOf)
	}
	if r.LoaderChain != nil || r.hasChain {
		m[fieldLoader] = ListValue(r.LoaderChain)
	}

	return m
}

// ListValue converts a rule sequence into a generic list.
func ListValue(rs []*Rule) []any {
	out := make([]any, len(rs))
	for i, r := range rs {
		out[i] = r.Value()
	}

	return out
}

func (r *Rule) isBareLoader() bool {
	return r.Loader != "" &&
		r.Options == nil &&
		len(r.Extra) == 0 &&
		r.Test.IsZero() && r.Include.IsZero() && r.Exclude.IsZero() &&
		r.Kind() == KindLeaf
}
