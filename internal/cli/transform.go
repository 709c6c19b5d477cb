package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/macropower/rewire/pkg/config"
	"github.com/macropower/rewire/pkg/rewire"
	"github.com/macropower/rewire/pkg/rules"
	"github.com/macropower/rewire/pkg/yaml"
)

var ErrInvalidLoaderOption = errors.New("invalid loader option")

// TransformArgs holds the flags that configure a [rewire.Transform].
type TransformArgs struct {
	*RootArgs

	ConfigPath     string
	LocalIdentName string
	Include        []string
	Exclude        []string
	LoaderOptions  []string
	Strict         bool
}

func (ta *TransformArgs) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ta.ConfigPath, "config", "", "Path to the rewire configuration file")
	cmd.Flags().StringVar(&ta.LocalIdentName, "local-ident-name", rewire.DefaultLocalIdentName,
		"Class name format for locally-scoped styles")
	cmd.Flags().StringArrayVar(&ta.Include, "include", nil,
		"Path whose stylesheets get locally-scoped class names, as a regexp literal or path prefix (repeatable)")
	cmd.Flags().StringArrayVar(&ta.Exclude, "exclude", nil,
		"Path excluded from locally-scoped class names, as a regexp literal or path prefix (repeatable)")
	cmd.Flags().StringArrayVar(&ta.LoaderOptions, "loader-option", nil,
		"Option passed to the new loader, as key=value (repeatable)")
	cmd.Flags().BoolVar(&ta.Strict, "strict", false,
		"Fail when the module style rule or the catch-all rule is missing")

	err := cmd.MarkFlagFilename("config", "yaml", "yml")
	if err != nil {
		panic(fmt.Errorf("mark config flag: %w", err))
	}
}

// Transform builds a [rewire.Transform] from the configuration file and
// the flags that were set. dir is where the project configuration search
// starts.
func (ta *TransformArgs) Transform(cmd *cobra.Command, dir string) (*rewire.Transform, error) {
	cfg, err := loadConfig(ta.ConfigPath, dir)
	if err != nil {
		return nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	flags := cmd.Flags()

	if flags.Changed("local-ident-name") {
		opts = append(opts, rewire.WithLocalIdentName(ta.LocalIdentName))
	}
	if flags.Changed("include") {
		opts = append(opts, rewire.WithInclude(parsePatterns(ta.Include)...))
	}
	if flags.Changed("exclude") {
		opts = append(opts, rewire.WithExclude(parsePatterns(ta.Exclude)...))
	}
	if flags.Changed("strict") {
		opts = append(opts, rewire.WithStrict(ta.Strict))
	}
	if flags.Changed("loader-option") {
		loaderOpts, err := parseLoaderOptions(ta.LoaderOptions)
		if err != nil {
			return nil, err
		}

		merged := rules.CopyOptions(cfg.LoaderOptions)
		if merged == nil {
			merged = map[string]any{}
		}

		maps.Copy(merged, loaderOpts)
		opts = append(opts, rewire.WithLoaderOptions(merged))
	}

	return rewire.New(opts...), nil
}

// loadConfig loads the configuration from path if set. Otherwise it
// searches for a project file from dir upwards, then falls back to the
// user configuration file, then to defaults.
func loadConfig(path, dir string) (*config.Config, error) {
	if path == "" {
		var err error

		path, err = config.FindProjectFile(dir)
		if err != nil {
			slog.Debug("search project config", slog.Any("err", err))
		}
	}

	if path == "" {
		userPath := config.GetPath()

		_, err := os.Stat(userPath)
		if err == nil {
			path = userPath
		}
	}

	if path == "" {
		slog.Debug("no configuration file, using defaults")

		return config.New(), nil
	}

	slog.Debug("load configuration", slog.String("path", path))

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	return cfg, nil
}

func parsePatterns(ss []string) []rules.Pattern {
	out := make([]rules.Pattern, len(ss))
	for i, s := range ss {
		out[i] = rules.ParsePattern(s)
	}

	return out
}

// parseLoaderOptions parses key=value pairs. Values are read as YAML
// scalars, so "true" and "2" become a bool and a number.
func parseLoaderOptions(kvs []string) (map[string]any, error) {
	out := make(map[string]any, len(kvs))

	for _, kv := range kvs {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: %q: expected key=value", ErrInvalidLoaderOption, kv)
		}

		if v == "" {
			out[k] = ""

			continue
		}

		var value any

		err := yaml.NewDecoder(strings.NewReader(v)).Decode(&value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidLoaderOption, kv, err)
		}

		out[k] = value
	}

	return out, nil
}

// readInput reads a rule tree from path, or from stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}

		return b, nil
	}

	b, err := config.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return b, nil
}

// parseInput decodes data, annotating decode errors with the source.
func parseInput(data []byte) (*rules.Document, error) {
	doc, err := rules.ParseDocument(data)
	if err != nil {
		var yamlErr *yaml.Error
		if errors.As(err, &yamlErr) {
			return nil, yaml.NewErrorWrapper(yaml.WithSource(data)).Wrap(err)
		}

		return nil, err //nolint:wrapcheck // Already wrapped.
	}

	return doc, nil
}

// inputDir returns the directory the project configuration search starts
// from.
func inputDir(path string) string {
	if path == "-" {
		return "."
	}

	return filepath.Dir(path)
}

func isEmpty(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}
