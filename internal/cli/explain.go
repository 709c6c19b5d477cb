package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/macropower/rewire/pkg/locate"
	"github.com/macropower/rewire/pkg/rewire"
	"github.com/macropower/rewire/pkg/rules"
)

const explainExamples = `  # Show the tree outline and the rules the transform relies on:
  rewire explain rules.yaml

  # Check that a tree has every rule strict mode requires:
  rewire explain webpack.config.yaml --strict`

var (
	foundStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	missingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	subtleStyle  = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

type ExplainArgs struct {
	TransformArgs

	Path string
}

func NewExplainArgs(rootArgs *RootArgs) *ExplainArgs {
	return &ExplainArgs{
		TransformArgs: TransformArgs{RootArgs: rootArgs},
	}
}

func NewExplainCmd(ea *ExplainArgs) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explain [file|-]",
		Short:   "Show the tree outline and the rules the transform would use",
		Example: explainExamples,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ea.Path = "-"
			if len(args) > 0 {
				ea.Path = args[0]
			}

			return runExplain(cmd, ea)
		},
	}
	ea.AddFlags(cmd)

	bindEnvVars(cmd)

	return cmd
}

func runExplain(cmd *cobra.Command, ea *ExplainArgs) error {
	tr, err := ea.Transform(cmd, inputDir(ea.Path))
	if err != nil {
		return err
	}

	data, err := readInput(cmd, ea.Path)
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

	rep := tr.Inspect(doc.Tree)

	w := cmd.OutOrStdout()
	mustN(fmt.Fprintln(w, headerStyle.Render("Rules")))
	writeOutline(w, doc.Tree)
	mustN(fmt.Fprintln(w))
	mustN(fmt.Fprintln(w, headerStyle.Render("Anchors")))
	mustN(fmt.Fprintln(w, anchorTable(rep)))
	mustN(fmt.Fprintln(w))
	mustN(fmt.Fprintf(w, "%s %s\n", headerStyle.Render("Placement:"), rep.Placement))

	if !rep.Ready() {
		return fmt.Errorf("%w: the transform cannot be applied to %s", rewire.ErrAnchorNotFound, ea.Path)
	}

	return nil
}

// writeOutline prints one line per rule, indented by depth.
func writeOutline(w io.Writer, tree *rules.Tree) {
	locate.Walk(tree.Slot(), func(loc locate.Locator, depth int) bool {
		path, _ := locate.Path(tree.Slot(), loc)
		mustN(fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat("  ", depth),
			subtleStyle.Render(path),
			describe(loc.Rule()),
		))

		return true
	})
}

func describe(r *rules.Rule) string {
	parts := []string{r.Kind().String()}

	if !r.Test.IsZero() {
		parts = append(parts, "test="+r.Test.String())
	}
	if !r.Include.IsZero() {
		parts = append(parts, "include="+r.Include.String())
	}
	if !r.Exclude.IsZero() {
		parts = append(parts, "exclude="+r.Exclude.String())
	}
	if r.Loader != "" {
		parts = append(parts, "loader="+r.Loader)
	}

	return strings.Join(parts, " ")
}

func anchorTable(rep rewire.Report) string {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("", "ANCHOR", "MATCHER", "PATH")

	for _, a := range rep.Anchors {
		mark := foundStyle.Render("✓")
		path := a.Path

		switch {
		case a.Found:
		case a.Required:
			mark = missingStyle.Render("✗")
			path = missingStyle.Render("missing")
		default:
			mark = subtleStyle.Render("-")
			path = subtleStyle.Render("not found, optional")
		}

		t.Row(mark, a.Name, a.Matcher, path)
	}

	return t.String()
}
