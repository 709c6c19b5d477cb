package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Validator checks decoded YAML documents against a JSON schema.
// Uses [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles schemaData, registered under url.
func NewValidator(url string, schemaData []byte) (*Validator, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaData))
	if err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	c := jsonschema.NewCompiler()

	err = c.AddResource(url, doc)
	if err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: s}, nil
}

// Validate checks data against the schema. A failure is returned as an
// [*Error] whose Path points at the deepest offending value, so it can be
// annotated against the YAML source.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("schema validation: %w", err)
	}

	return &Error{
		Err:  verr,
		Path: instancePath(deepestLocation(verr)),
	}
}

// deepestLocation returns the longest instance location among verr and its
// causes.
func deepestLocation(verr *jsonschema.ValidationError) []string {
	loc := verr.InstanceLocation
	for _, cause := range verr.Causes {
		if l := deepestLocation(cause); len(l) > len(loc) {
			loc = l
		}
	}

	return slices.Clone(loc)
}

// instancePath converts a JSON instance location into a [yaml.Path].
// Numeric tokens are read as sequence indexes.
func instancePath(loc []string) *yaml.Path {
	pb := NewPathBuilder().Root()

	for _, tok := range loc {
		i, err := strconv.ParseUint(tok, 10, 0)
		if err != nil {
			pb = pb.Child(tok)

			continue
		}

		pb = pb.Index(uint(i))
	}

	return pb.Build()
}
