package match_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/rules"
)

var (
	cssRule = &rules.Rule{
		Test: rules.One(rules.NewPattern(`\.css$`)),
		Use: []*rules.Rule{
			{Loader: "/app/node_modules/style-loader/index.js", Shorthand: true},
			{Loader: "/app/node_modules/css-loader/index.js", Options: map[string]any{"importLoaders": 1}},
		},
	}
	fileRule = &rules.Rule{
		Loader:  "/app/node_modules/file-loader/dist/cjs.js",
		Exclude: rules.ListOf(rules.NewPattern(`\.js$`)),
	}
	chainRule = &rules.Rule{
		LoaderChain: []*rules.Rule{{Loader: "css-loader"}},
	}
)

func TestMatchers(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		matcher  match.Matcher
		rule     *rules.Rule
		want     bool
		wantDesc string
	}{
		"test equal": {
			matcher:  match.Test(rules.NewPattern(`\.css$`)),
			rule:     cssRule,
			want:     true,
			wantDesc: `test == /\.css$/`,
		},
		"test textual": {
			matcher:  match.Test(rules.NewPattern(`[.]css$`)),
			rule:     cssRule,
			want:     false,
			wantDesc: `test == /[.]css$/`,
		},
		"test absent": {
			matcher:  match.Test(rules.NewPattern(`\.css$`)),
			rule:     fileRule,
			want:     false,
			wantDesc: `test == /\.css$/`,
		},
		"loader": {
			matcher:  match.Loader("file-loader"),
			rule:     fileRule,
			want:     true,
			wantDesc: "loader == file-loader",
		},
		"loader list never matches": {
			matcher:  match.Loader("css-loader"),
			rule:     chainRule,
			want:     false,
			wantDesc: "loader == css-loader",
		},
		"any": {
			matcher:  match.Any(match.Loader("url-loader"), match.Loader("file-loader")),
			rule:     fileRule,
			want:     true,
			wantDesc: "(loader == url-loader) || (loader == file-loader)",
		},
		"all": {
			matcher:  match.All(match.Loader("file-loader"), match.Test(rules.NewPattern(`\.css$`))),
			rule:     fileRule,
			want:     false,
			wantDesc: `(loader == file-loader) && (test == /\.css$/)`,
		},
		"func": {
			matcher: match.Func("group", func(r *rules.Rule) bool {
				return r.Kind() == rules.KindGroup
			}),
			rule:     cssRule,
			want:     false,
			wantDesc: "group",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, tc.matcher.Match(tc.rule))
			assert.Equal(t, tc.wantDesc, tc.matcher.String())
		})
	}
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		expression string
		rule       *rules.Rule
		want       bool
		wantErr    bool
	}{
		"loader segment": {
			expression: `hasSegment(loader, "file-loader")`,
			rule:       fileRule,
			want:       true,
		},
		"test string": {
			expression: `test.endsWith("css$/")`,
			rule:       cssRule,
			want:       true,
		},
		"kind": {
			expression: `kind == "chain"`,
			rule:       chainRule,
			want:       true,
		},
		"rule map": {
			expression: `"exclude" in rule && size(rule.exclude) == 1`,
			rule:       fileRule,
			want:       true,
		},
		"nested options": {
			expression: `rule.use.exists(s, type(s) == map && s.options.importLoaders == 1)`,
			rule:       cssRule,
			want:       true,
		},
		"missing field does not match": {
			expression: `rule.options.modules == true`,
			rule:       fileRule,
			want:       false,
		},
		"path functions": {
			expression: `pathBase(loader) == "cjs.js" && pathExt(loader) == ".js" && pathDir(loader).endsWith("dist")`,
			rule:       fileRule,
			want:       true,
		},
		"syntax error": {
			expression: `loader ==`,
			wantErr:    true,
		},
		"not boolean": {
			expression: `loader`,
			wantErr:    true,
		},
		"unknown variable": {
			expression: `foo == "bar"`,
			wantErr:    true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			m, err := match.Expr(tc.expression)
			if tc.wantErr {
				require.Error(t, err)
				assert.Panics(t, func() { match.MustExpr(tc.expression) })

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expression, m.String())
			assert.Equal(t, tc.want, m.Match(tc.rule))
		})
	}
}
