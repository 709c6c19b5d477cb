package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/rewire/internal/cli"
	"github.com/macropower/rewire/pkg/config"
	"github.com/macropower/rewire/pkg/rewire"
)

const devTree = `- oneOf:
    - test: /\.css$/
      use:
        - style-loader
        - loader: css-loader
          options:
            importLoaders: 1
        - postcss-loader
    - loader: file-loader
      exclude: [/\.js$/, /\.html$/]
`

const cssOnlyTree = `- test: /\.css$/
  use: [style-loader, css-loader]
`

// setup writes the input tree and a default configuration file to a
// temporary directory, returning both paths.
func setup(t *testing.T, tree string) (string, string) {
	t.Helper()

	dir := t.TempDir()

	input := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(input, []byte(tree), 0o600))

	cfg := filepath.Join(dir, ".rewire.yaml")
	require.NoError(t, os.WriteFile(cfg, config.Default(), 0o600))

	return input, cfg
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func TestApply(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		tree     string
		args     []string
		contains []string
		absent   []string
		wantErr  error
	}{
		"development": {
			tree:     devTree,
			contains: []string{"less-loader", "use:"},
		},
		"production": {
			tree:     devTree,
			args:     []string{"--env", "production"},
			contains: []string{"less-loader"},
		},
		"json output": {
			tree:     devTree,
			args:     []string{"-o", "json"},
			contains: []string{`"less-loader"`, `"oneOf"`},
		},
		"diff": {
			tree:     devTree,
			args:     []string{"--diff"},
			contains: []string{"--- a/", "+++ b/", "+", "less-loader"},
		},
		"loader options": {
			tree:     devTree,
			args:     []string{"--loader-option", "javascriptEnabled=true"},
			contains: []string{"javascriptEnabled: true"},
		},
		"include patterns with commas": {
			tree:     devTree,
			args:     []string{"--include", "/a{1,2}/", "--include", "/app/src"},
			contains: []string{"/a{1,2}/", "/app/src"},
			absent:   []string{"//app/src/"},
		},
		"missing style rule": {
			tree:    `- loader: file-loader`,
			wantErr: rewire.ErrAnchorNotFound,
		},
		"strict without catch-all": {
			tree:    cssOnlyTree,
			args:    []string{"--strict"},
			wantErr: rewire.ErrAnchorNotFound,
		},
		"unknown env": {
			tree:    devTree,
			args:    []string{"--env", "staging"},
			wantErr: rewire.ErrUnknownEnv,
		},
		"unknown output": {
			tree:    devTree,
			args:    []string{"-o", "toml"},
			wantErr: cli.ErrUnknownOutput,
		},
		"empty input": {
			tree:    "\n",
			wantErr: cli.ErrEmptyInput,
		},
		"bad loader option": {
			tree:    devTree,
			args:    []string{"--loader-option", "novalue"},
			wantErr: cli.ErrInvalidLoaderOption,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			input, cfg := setup(t, tc.tree)

			args := append([]string{"apply", input, "--config", cfg}, tc.args...)
			stdout, _, err := execute(t, "", args...)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)

				return
			}

			require.NoError(t, err)

			for _, s := range tc.contains {
				assert.Contains(t, stdout, s)
			}
			for _, s := range tc.absent {
				assert.NotContains(t, stdout, s)
			}
		})
	}
}

func TestApply_Stdin(t *testing.T) {
	t.Parallel()

	_, cfg := setup(t, devTree)

	stdout, _, err := execute(t, devTree, "apply", "-", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "less-loader")

	_, _, err = execute(t, devTree, "apply", "--watch", "--config", cfg)
	require.ErrorIs(t, err, cli.ErrWatchStdin)
}

func TestExplain(t *testing.T) {
	t.Parallel()

	input, cfg := setup(t, devTree)

	stdout, _, err := execute(t, "", "explain", input, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Rules")
	assert.Contains(t, stdout, "Anchors")
	assert.Contains(t, stdout, "[0].oneOf[1]")
	assert.Contains(t, stdout, "file-loader")

	input, cfg = setup(t, `- loader: file-loader`)

	_, _, err = execute(t, "", "explain", input, "--config", cfg)
	require.ErrorIs(t, err, rewire.ErrAnchorNotFound)
}

func TestSchemaCmd(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "", "schema")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"$schema"`)
	assert.Contains(t, stdout, "localIdentName")
}

func TestConfigCmd(t *testing.T) {
	t.Parallel()

	_, cfg := setup(t, devTree)

	stdout, _, err := execute(t, "", "config", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, "kind: Configuration")

	target := filepath.Join(t.TempDir(), "new", "config.yaml")

	_, _, err = execute(t, "", "config", "--config", target, "--write")
	require.NoError(t, err)
	assert.FileExists(t, target)
}
