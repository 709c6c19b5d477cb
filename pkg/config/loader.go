package config

import (
	"bytes"

	"github.com/macropower/rewire/pkg/yaml"
)

// Validator validates configuration data against a schema.
type Validator interface {
	Validate(data any) error
}

// LoaderOpt configures a [Loader].
type LoaderOpt func(*Loader)

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOpt {
	return func(l *Loader) {
		l.validator = v
	}
}

// Loader validates and parses configuration data, annotating errors with
// the offending source.
type Loader struct {
	validator Validator
	yamlError *yaml.ErrorWrapper
	data      []byte
}

// NewLoaderFromBytes creates a [Loader] from byte data.
func NewLoaderFromBytes(data []byte, opts ...LoaderOpt) (*Loader, error) {
	l := &Loader{
		data:      data,
		yamlError: yaml.NewErrorWrapper(yaml.WithSource(data)),
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.validator == nil {
		v, err := DefaultValidator()
		if err != nil {
			return nil, err
		}

		l.validator = v
	}

	return l, nil
}

// NewLoaderFromFile creates a [Loader] from a file path.
func NewLoaderFromFile(path string, opts ...LoaderOpt) (*Loader, error) {
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}

	return NewLoaderFromBytes(data, opts...)
}

// Validate validates the configuration data against the schema.
func (l *Loader) Validate() error {
	var anyConfig any

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(&anyConfig)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	err = l.validator.Validate(anyConfig)
	if err != nil {
		return l.yamlError.Wrap(err)
	}

	return nil
}

// Load parses, completes, and checks the configuration.
func (l *Loader) Load() (*Config, error) {
	cfg := &Config{}

	dec := yaml.NewDecoder(bytes.NewReader(l.data))

	err := dec.Decode(cfg)
	if err != nil {
		return nil, l.yamlError.Wrap(err)
	}

	cfg.EnsureDefaults()

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads, validates, and parses the configuration file at path.
func Load(path string) (*Config, error) {
	l, err := NewLoaderFromFile(path)
	if err != nil {
		return nil, err
	}

	err = l.Validate()
	if err != nil {
		return nil, err
	}

	return l.Load()
}
