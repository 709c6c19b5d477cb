// Package schema generates JSON schemas from Go configuration types.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// Generator reflects a JSON schema from a Go value.
// Uses [github.com/invopop/jsonschema].
type Generator struct {
	reflector *jsonschema.Reflector
	v         any
	id        string
}

// NewGenerator creates a [Generator] for v. The schema is published under
// the given $id.
func NewGenerator(v any, id string) *Generator {
	return &Generator{
		v:  v,
		id: id,
		reflector: &jsonschema.Reflector{
			ExpandedStruct: true,
		},
	}
}

// Generate returns the schema as indented JSON.
func (g *Generator) Generate() ([]byte, error) {
	jss := g.reflector.Reflect(g.v)
	jss.ID = jsonschema.ID(g.id)

	b, err := json.MarshalIndent(jss, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}

	return b, nil
}

// ExtendWithEnum restricts a string property of jss to the given values.
// It panics if the property does not exist.
func ExtendWithEnum(jss *jsonschema.Schema, property string, values []string) {
	prop, ok := jss.Properties.Get(property)
	if !ok {
		panic(property + " property not found in schema")
	}

	for _, v := range values {
		prop.OneOf = append(prop.OneOf, &jsonschema.Schema{
			Type:  "string",
			Const: v,
		})
	}

	jss.Properties.Set(property, prop)
}
