package yaml

import (
	"errors"
	"io"

	"github.com/goccy/go-yaml"
)

// DefaultDecoderOptions are used for all YAML input. Duplicate mapping keys
// stay rejected, since in a rule tree a second `loader` or `use` would
// replace the first.
var DefaultDecoderOptions = []yaml.DecodeOption{}

// Decoder reads YAML or JSON documents. Syntax and type errors are returned
// as an [*Error] carrying the offending token.
type Decoder struct {
	d *yaml.Decoder
}

// NewDecoder creates a [Decoder] reading from r.
func NewDecoder(r io.Reader, opts ...yaml.DecodeOption) *Decoder {
	return &Decoder{
		d: yaml.NewDecoder(r, append(DefaultDecoderOptions, opts...)...),
	}
}

// Decode reads the next document into v.
func (d *Decoder) Decode(v any) error {
	return tokenError(d.d.Decode(v))
}

func tokenError(err error) error {
	var yamlErr yaml.Error
	if err == nil || !errors.As(err, &yamlErr) {
		return err //nolint:wrapcheck // Not a YAML error.
	}

	return NewError(errors.New(yamlErr.GetMessage()), WithToken(yamlErr.GetToken()))
}
