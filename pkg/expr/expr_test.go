package expr_test

import (
	"testing"

	"github.com/google/cel-go/common/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rewire/pkg/expr"
	"github.com/macropower/rewire/pkg/rules"
)

func TestEnvironment_Compile(t *testing.T) {
	t.Parallel()

	env, err := expr.NewEnvironment()
	require.NoError(t, err)

	tcs := map[string]struct {
		expression string
		wantErr    error
	}{
		"bool": {
			expression: `hasSegment(loader, "css-loader")`,
		},
		"string functions": {
			expression: `test.lowerAscii().contains("css")`,
		},
		"not bool": {
			expression: `pathBase(loader)`,
			wantErr:    expr.ErrNotBool,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := env.Compile(tc.expression)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestEvalBool(t *testing.T) {
	t.Parallel()

	env := expr.MustNewEnvironment()

	r := &rules.Rule{
		Test:    rules.One(rules.NewPattern(`\.css$`)),
		Loader:  "/app/node_modules/@scope/css-loader/index.js?modules",
		Options: map[string]any{"modules": true},
	}

	tcs := map[string]struct {
		expression string
		want       bool
		wantErr    bool
	}{
		"scoped segment": {
			expression: `hasSegment(loader, "@scope/css-loader")`,
			want:       true,
		},
		"partial segment": {
			expression: `hasSegment(loader, "css")`,
			want:       false,
		},
		"options": {
			expression: `rule.options.modules`,
			want:       true,
		},
		"kind": {
			expression: `kind == "leaf"`,
			want:       true,
		},
		"missing key": {
			expression: `rule.include == "x"`,
			wantErr:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			program, err := env.Compile(tc.expression)
			require.NoError(t, err)

			got, err := expr.EvalBool(program, r)
			if tc.wantErr {
				require.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertToCELValue(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input any
		want  any
	}{
		"nil":    {input: nil, want: types.NullValue},
		"bool":   {input: true, want: types.Bool(true)},
		"int":    {input: 3, want: types.Int(3)},
		"uint64": {input: uint64(3), want: types.Int(3)},
		"float":  {input: 1.5, want: types.Double(1.5)},
		"string": {input: "a", want: types.String("a")},
		"other":  {input: struct{}{}, want: types.NullValue},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, expr.ConvertToCELValue(tc.input))
		})
	}

	list := expr.ConvertToCELValue([]any{"a", map[string]any{"b": 1}})
	assert.NotEqual(t, types.NullValue, list)
}
