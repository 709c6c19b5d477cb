package yaml_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goccyyaml "github.com/goccy/go-yaml"

	"github.com/macropower/rewire/pkg/yaml"
)

func TestNewValidator(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		errMsg     string
		schemaData []byte
		wantErr    bool
	}{
		"valid schema": {
			schemaData: []byte(`{
				"type": "object",
				"properties": {
					"extension": {"type": "string"},
					"strict": {"type": "boolean"}
				},
				"required": ["extension"]
			}`),
		},
		"invalid json": {
			schemaData: []byte(`{"invalid": json}`),
			wantErr:    true,
			errMsg:     "unmarshal schema",
		},
		"invalid schema": {
			schemaData: []byte(`{"type": "invalid_type"}`),
			wantErr:    true,
			errMsg:     "compile schema",
		},
		"empty schema": {
			schemaData: []byte(`{}`),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			validator, err := yaml.NewValidator("test", tc.schemaData)

			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errMsg)
				assert.Nil(t, validator)

				return
			}

			require.NoError(t, err)
			assert.NotNil(t, validator)
		})
	}
}

func TestValidator_Validate(t *testing.T) {
	t.Parallel()

	schemaData := []byte(`{
		"type": "object",
		"properties": {
			"extension": {"type": "string"},
			"strict": {"type": "boolean"},
			"loaderOptions": {"type": "object"},
			"anchors": {
				"type": "object",
				"properties": {
					"style": {
						"type": "object",
						"properties": {
							"test": {"type": "string"},
							"loader": {"type": "string"}
						}
					}
				}
			},
			"exclude": {
				"type": "array",
				"items": {"type": "string"}
			}
		},
		"required": ["extension"]
	}`)

	validator, err := yaml.NewValidator("test", schemaData)
	require.NoError(t, err)

	tcs := map[string]struct {
		data         any
		expectedPath string
		wantErr      bool
	}{
		"valid data": {
			data: map[string]any{
				"extension":     "less",
				"strict":        true,
				"loaderOptions": map[string]any{"javascriptEnabled": true},
			},
		},
		"missing required field": {
			data: map[string]any{
				"strict": true,
			},
			wantErr:      true,
			expectedPath: "$",
		},
		"wrong type for strict": {
			data: map[string]any{
				"extension": "less",
				"strict":    "yes",
			},
			wantErr:      true,
			expectedPath: "$.strict",
		},
		"invalid array item": {
			data: map[string]any{
				"extension": "less",
				"exclude":   []any{`/node_modules/`, 5},
			},
			wantErr:      true,
			expectedPath: "$.exclude[1]",
		},
		"nested object validation error": {
			data: map[string]any{
				"extension": "less",
				"anchors": map[string]any{
					"style": map[string]any{"loader": 1},
				},
			},
			wantErr:      true,
			expectedPath: "$.anchors.style.loader",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := validator.Validate(tc.data)

			if tc.wantErr {
				require.Error(t, err)

				var validationErr *yaml.Error
				require.ErrorAs(t, err, &validationErr)
				assert.NotNil(t, validationErr.Path)
				assert.Equal(t, tc.expectedPath, validationErr.Path.String())

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestError_Error(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		want string
		err  yaml.Error
	}{
		"with path": {
			err: yaml.Error{
				Err:  errors.New("value is required"),
				Path: mustBuildPath(t, "anchors", "style"),
			},
			want: "error at $.anchors.style: value is required",
		},
		"without path": {
			err: yaml.Error{
				Err: errors.New("validation error: value is required"),
			},
			want: "validation error: value is required",
		},
		"nil error": {
			err:  yaml.Error{},
			want: "",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("sentinel")
	err := yaml.NewError(sentinel, yaml.WithPath(mustBuildPath(t, "extension")))

	require.ErrorIs(t, err, sentinel)
}

func TestErrorWrapper_Wrap(t *testing.T) {
	t.Parallel()

	src := []byte("extension: less\nstrict: yes\n")
	ew := yaml.NewErrorWrapper(yaml.WithSource(src))

	err := ew.Wrap(yaml.NewError(errors.New("expected boolean"), yaml.WithPath(mustBuildPath(t, "strict"))))

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.Equal(t, src, yamlErr.Source)
	assert.Contains(t, err.Error(), "error at $.strict: expected boolean")

	plain := errors.New("plain")
	assert.Equal(t, plain, ew.Wrap(plain))
	require.NoError(t, ew.Wrap(nil))
}

func mustBuildPath(t *testing.T, parts ...string) *goccyyaml.Path {
	t.Helper()

	pb := yaml.NewPathBuilder().Root()
	for _, part := range parts {
		pb = pb.Child(part)
	}

	return pb.Build()
}
