package mutate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/match"
	"github.com/macropower/rewire/pkg/mutate"
	"github.com/macropower/rewire/pkg/rules"
)

func loaders(rs []*rules.Rule) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Loader
	}

	return out
}

func seq(names ...string) []*rules.Rule {
	out := make([]*rules.Rule, len(names))
	for i, n := range names {
		out[i] = &rules.Rule{Loader: n}
	}

	return out
}

func TestInsert(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		insert func(loc locate.Locator, nodes ...*rules.Rule) error
		index  int
		want   []string
	}{
		"before first": {
			insert: mutate.InsertBefore,
			index:  0,
			want:   []string{"x", "y", "a", "b", "c"},
		},
		"before last": {
			insert: mutate.InsertBefore,
			index:  2,
			want:   []string{"a", "b", "x", "y", "c"},
		},
		"after first": {
			insert: mutate.InsertAfter,
			index:  0,
			want:   []string{"a", "x", "y", "b", "c"},
		},
		"after last": {
			insert: mutate.InsertAfter,
			index:  2,
			want:   []string{"a", "b", "c", "x", "y"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := seq("a", "b", "c")

			err := tc.insert(locate.Locator{Slot: &s, Index: tc.index}, seq("x", "y")...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, loaders(s))
		})
	}
}

func TestInsert_Stale(t *testing.T) {
	t.Parallel()

	s := seq("a")

	require.ErrorIs(t, mutate.InsertBefore(locate.Locator{Slot: &s, Index: 1}, seq("x")...), mutate.ErrStaleLocator)
	require.ErrorIs(t, mutate.InsertAfter(locate.Locator{Slot: &s, Index: -1}, seq("x")...), mutate.ErrStaleLocator)
	require.ErrorIs(t, mutate.InsertAfter(locate.Locator{}, seq("x")...), mutate.ErrStaleLocator)
	assert.Equal(t, []string{"a"}, loaders(s))
}

func TestPrependAppend(t *testing.T) {
	t.Parallel()

	s := seq("a")
	mutate.Prepend(&s, seq("x", "y")...)
	mutate.Append(&s, seq("z")...)
	assert.Equal(t, []string{"x", "y", "a", "z"}, loaders(s))

	var empty []*rules.Rule
	mutate.Prepend(&empty, seq("x")...)
	assert.Equal(t, []string{"x"}, loaders(empty))
}

func TestPlace(t *testing.T) {
	t.Parallel()

	catchAll := match.Loader("file-loader")

	tcs := map[string]struct {
		tree     func() *rules.Tree
		want     mutate.Position
		wantTree []any
	}{
		"before catch-all": {
			tree: func() *rules.Tree {
				return rules.NewTree(
					&rules.Rule{Loader: "babel-loader"},
					&rules.Rule{OneOf: seq("url-loader", "file-loader")},
				)
			},
			want: mutate.BeforeAnchor,
			wantTree: []any{
				map[string]any{"loader": "babel-loader"},
				map[string]any{"oneOf": []any{
					map[string]any{"loader": "url-loader"},
					map[string]any{"loader": "x"},
					map[string]any{"loader": "y"},
					map[string]any{"loader": "file-loader"},
				}},
			},
		},
		"front of first group": {
			tree: func() *rules.Tree {
				return rules.NewTree(
					&rules.Rule{Loader: "babel-loader"},
					&rules.Rule{OneOf: seq("url-loader")},
					&rules.Rule{OneOf: seq("raw-loader")},
				)
			},
			want: mutate.GroupFront,
			wantTree: []any{
				map[string]any{"loader": "babel-loader"},
				map[string]any{"oneOf": []any{
					map[string]any{"loader": "x"},
					map[string]any{"loader": "y"},
					map[string]any{"loader": "url-loader"},
				}},
				map[string]any{"oneOf": []any{
					map[string]any{"loader": "raw-loader"},
				}},
			},
		},
		"end of top level": {
			tree: func() *rules.Tree {
				return rules.NewTree(&rules.Rule{Loader: "babel-loader"})
			},
			want: mutate.TopLevelEnd,
			wantTree: []any{
				map[string]any{"loader": "babel-loader"},
				map[string]any{"loader": "x"},
				map[string]any{"loader": "y"},
			},
		},
		"empty tree": {
			tree: func() *rules.Tree {
				return rules.NewTree()
			},
			want: mutate.TopLevelEnd,
			wantTree: []any{
				map[string]any{"loader": "x"},
				map[string]any{"loader": "y"},
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tree := tc.tree()

			p := mutate.Place(tree, catchAll)
			assert.Equal(t, tc.want, p.Position)

			require.NoError(t, p.Insert(seq("x", "y")...))
			assert.Equal(t, tc.wantTree, tree.Value())
		})
	}
}

func TestPosition_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "before anchor", mutate.BeforeAnchor.String())
	assert.Equal(t, "front of group", mutate.GroupFront.String())
	assert.Equal(t, "end of top level", mutate.TopLevelEnd.String())
	assert.Equal(t, "Position(9)", mutate.Position(9).String())
}
