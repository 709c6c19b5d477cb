package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Highlighter renders output with chroma syntax highlighting.
type Highlighter struct {
	formatter chroma.Formatter
	style     *chroma.Style
}

// NewHighlighter creates a [Highlighter] for the terminal's color profile.
func NewHighlighter() *Highlighter {
	formatterName := "noop"
	switch termenv.ColorProfile() {
	case termenv.TrueColor:
		formatterName = "terminal16m"

	case termenv.ANSI256:
		formatterName = "terminal256"

	case termenv.ANSI:
		formatterName = "terminal8"
	}

	return &Highlighter{
		formatter: formatters.Get(formatterName),
		style:     styles.Get("monokai"),
	}
}

// Render highlights content written in the given language, e.g. "yaml",
// "json" or "diff".
func (h *Highlighter) Render(content, language string) (string, error) {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return "", fmt.Errorf("lexer tokenize: %w", err)
	}

	buf := &bytes.Buffer{}

	err = h.formatter.Format(buf, h.style, iterator)
	if err != nil {
		return "", fmt.Errorf("format: %w", err)
	}

	return buf.String(), nil
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // File descriptors fit in an int.
}

// writeOutput writes content to w, highlighted when w is a terminal.
func writeOutput(w io.Writer, content, language string) error {
	if isTerminal(w) {
		pretty, err := NewHighlighter().Render(content, language)
		if err == nil {
			content = pretty
		}
	}

	_, err := io.WriteString(w, content)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}
