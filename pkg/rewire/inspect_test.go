package rewire_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rewire/pkg/mutate"
	"github.com/macropower/rewire/pkg/rewire"
)

func TestTransform_Inspect(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input         string
		opts          []rewire.Option
		wantFound     map[string]string
		wantPlacement mutate.Position
		wantReady     bool
	}{
		"complete tree": {
			input: moduleTree,
			wantFound: map[string]string{
				rewire.AnchorStyle:       "[0].oneOf[0]",
				rewire.AnchorModuleStyle: "[0].oneOf[1]",
				rewire.AnchorCatchAll:    "[0].oneOf[2]",
			},
			wantPlacement: mutate.BeforeAnchor,
			wantReady:     true,
		},
		"optional anchors missing": {
			input: "- oneOf:\n    - test: /\\.css$/\n      use: [css-loader]\n",
			wantFound: map[string]string{
				rewire.AnchorStyle: "[0].oneOf[0]",
			},
			wantPlacement: mutate.GroupFront,
			wantReady:     true,
		},
		"strict with optional anchors missing": {
			input: "- oneOf:\n    - test: /\\.css$/\n      use: [css-loader]\n",
			opts:  []rewire.Option{rewire.WithStrict(true)},
			wantFound: map[string]string{
				rewire.AnchorStyle: "[0].oneOf[0]",
			},
			wantPlacement: mutate.GroupFront,
			wantReady:     false,
		},
		"no style rule": {
			input:         "- loader: babel-loader\n",
			wantFound:     map[string]string{},
			wantPlacement: mutate.TopLevelEnd,
			wantReady:     false,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			tree := parseTree(t, tc.input)
			before := tree.Value()

			rep := rewire.New(tc.opts...).Inspect(tree)

			assert.Equal(t, before, tree.Value())
			assert.Equal(t, tc.wantPlacement, rep.Placement)
			assert.Equal(t, tc.wantReady, rep.Ready())
			require.Len(t, rep.Anchors, 3)

			for _, a := range rep.Anchors {
				path, ok := tc.wantFound[a.Name]
				assert.Equal(t, ok, a.Found, a.Name)
				assert.Equal(t, path, a.Path, a.Name)
				assert.NotEmpty(t, a.Matcher)
			}
		})
	}
}
