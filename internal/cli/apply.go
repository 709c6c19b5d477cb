package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aymanbagabas/go-udiff"
	"github.com/spf13/cobra"

	"github.com/macropower/rewire/pkg/rewire"
	"github.com/macropower/rewire/pkg/rules"
)

const (
	applyExamples = `  # Add Less rules to a development rule tree:
  rewire apply rules.yaml

  # Transform a production bundler config read from stdin:
  cat webpack.prod.yaml | rewire apply - --env production

  # Show what would change:
  rewire apply rules.yaml --diff

  # Pass options to less-loader:
  rewire apply rules.yaml --loader-option javascriptEnabled=true

  # Re-run whenever the file changes:
  rewire apply rules.yaml --watch`

	OutputYAML = "yaml"
	OutputJSON = "json"
)

var (
	ErrUnknownOutput = errors.New("unknown output format")
	ErrWatchStdin    = errors.New("cannot watch stdin")
	ErrEmptyInput    = errors.New("empty input")

	AllOutputs = []string{OutputYAML, OutputJSON}
)

type ApplyArgs struct {
	TransformArgs

	Path   string
	Env    string
	Output string
	Diff   bool
	Watch  bool
}

func NewApplyArgs(rootArgs *RootArgs) *ApplyArgs {
	return &ApplyArgs{
		TransformArgs: TransformArgs{RootArgs: rootArgs},
	}
}

func (aa *ApplyArgs) AddFlags(cmd *cobra.Command) {
	aa.TransformArgs.AddFlags(cmd)

	cmd.Flags().StringVarP(&aa.Env, "env", "e", string(rewire.EnvDevelopment),
		fmt.Sprintf("Build environment, one of: %s", rewire.AllEnvs))
	cmd.Flags().StringVarP(&aa.Output, "output", "o", OutputYAML,
		fmt.Sprintf("Output format, one of: %s", AllOutputs))
	cmd.Flags().BoolVar(&aa.Diff, "diff", false, "Print a unified diff instead of the result")
	cmd.Flags().BoolVarP(&aa.Watch, "watch", "w", false, "Watch the input file and re-run on changes")

	var err error

	err = cmd.RegisterFlagCompletionFunc("env",
		cobra.FixedCompletions(rewire.AllEnvs, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}

	err = cmd.RegisterFlagCompletionFunc("output",
		cobra.FixedCompletions(AllOutputs, cobra.ShellCompDirectiveNoFileComp),
	)
	if err != nil {
		panic(err)
	}
}

func NewApplyCmd(aa *ApplyArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "apply [file|-]",
		Short:   "Add the new rules to a rule tree and print the result",
		Example: applyExamples,
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]cobra.Completion, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return []cobra.Completion{"yaml", "yml", "json"}, cobra.ShellCompDirectiveFilterFileExt
			}

			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			aa.Path = "-"
			if len(args) > 0 {
				aa.Path = args[0]
			}

			return runApply(cmd, aa)
		},
	}
	aa.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runApply(cmd *cobra.Command, aa *ApplyArgs) error {
	env, err := rewire.ParseEnv(aa.Env)
	if err != nil {
		return err //nolint:wrapcheck // Already descriptive.
	}

	if aa.Output != OutputYAML && aa.Output != OutputJSON {
		return fmt.Errorf("%w: %q", ErrUnknownOutput, aa.Output)
	}

	if aa.Watch && aa.Path == "-" {
		return ErrWatchStdin
	}

	tr, err := aa.Transform(cmd, inputDir(aa.Path))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run := func(ctx context.Context) error {
		return aa.applyOnce(ctx, cmd, tr, env)
	}

	err = run(ctx)
	if !aa.Watch {
		return err
	}
	if err != nil {
		slog.Error("transform failed", slog.Any("err", err))
	}

	return watchFile(ctx, aa.Path, run)
}

func (aa *ApplyArgs) applyOnce(ctx context.Context, cmd *cobra.Command, tr *rewire.Transform, env rewire.Env) error {
	data, err := readInput(cmd, aa.Path)
	if err != nil {
		return err
	}
	if isEmpty(data) {
		return ErrEmptyInput
	}

	doc, err := parseInput(data)
	if err != nil {
		return err
	}

	out, err := tr.Apply(ctx, doc.Tree, env)
	if err != nil {
		return fmt.Errorf("transform %s: %w", aa.Path, err)
	}

	content, language, err := aa.render(doc, doc.WithTree(out))
	if err != nil {
		return err
	}

	return writeOutput(cmd.OutOrStdout(), content, language)
}

// render formats the result, or the difference between before and after
// when a diff was requested.
func (aa *ApplyArgs) render(before, after *rules.Document) (string, string, error) {
	if aa.Diff {
		oldContent, err := aa.encode(before)
		if err != nil {
			return "", "", err
		}

		newContent, err := aa.encode(after)
		if err != nil {
			return "", "", err
		}

		label := aa.Path
		if label == "-" {
			label = "stdin"
		}

		return udiff.Unified("a/"+label, "b/"+label, oldContent, newContent), "diff", nil
	}

	content, err := aa.encode(after)
	if err != nil {
		return "", "", err
	}

	return content, aa.Output, nil
}

func (aa *ApplyArgs) encode(doc *rules.Document) (string, error) {
	if aa.Output == OutputJSON {
		b, err := json.MarshalIndent(doc.Value(), "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode json: %w", err)
		}

		return string(b) + "\n", nil
	}

	b, err := doc.Encode()
	if err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}

	return string(b), nil
}
