// Package preview renders Markdown output for a terminal.
package preview

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"golang.org/x/term"

	"github.com/gerunddev/mdjson/internal/config"
)

// DefaultWidth is used when the output is not a terminal and COLUMNS is unset
const DefaultWidth = 100

// ShouldRender reports whether Markdown written to w should go through
// glamour for the given render mode.
func ShouldRender(mode string, w io.Writer) bool {
	switch mode {
	case config.RenderAlways:
		return true
	case config.RenderNever:
		return false
	}
	return isTerminal(w)
}

// Width returns the terminal width of w, then $COLUMNS, then fallback
func Width(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
			return cols
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if cols, err := strconv.Atoi(value); err == nil && cols > 0 {
			return cols
		}
	}
	return fallback
}

// Render styles md for the terminal. The plain Markdown is returned if
// glamour cannot build a renderer or fails on the input.
func Render(md string, width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return md
	}

	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// Wrap word-wraps text to width, indenting continuation lines by the
// printable width of prefix so wrapped lines align after it.
func Wrap(prefix, text string, width int) string {
	pad := ansi.PrintableRuneWidth(prefix)
	limit := width - pad
	if limit < 20 {
		return prefix + text
	}

	lines := strings.Split(wordwrap.String(text, limit), "\n")
	var sb strings.Builder
	sb.WriteString(prefix)
	for i, l := range lines {
		if i > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", pad))
		}
		sb.WriteString(l)
	}
	return sb.String()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
