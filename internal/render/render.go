// Package render turns value tables into HTML, markdown or terminal output.
// Every writer implements iotable.RowWriter.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/iodoc/internal/iotable"
	"golang.org/x/term"
)

// Mode selects an output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeHTML     Mode = "html"
	ModeMarkdown Mode = "markdown"
	ModeText     Mode = "text"
)

// Modes lists the accepted mode names.
var Modes = []Mode{ModeAuto, ModeHTML, ModeMarkdown, ModeText}

// ParseMode parses a mode name. "md" and "table" are accepted as aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ModeAuto, nil
	case "html":
		return ModeHTML, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "text", "table":
		return ModeText, nil
	default:
		return "", fmt.Errorf("unknown output format %q (expected one of auto, html, markdown, text)", s)
	}
}

// Resolve replaces ModeAuto with a concrete mode: a table for terminals and
// HTML for anything else.
func (m Mode) Resolve(isTTY bool) Mode {
	if m != ModeAuto {
		return m
	}
	if isTTY {
		return ModeText
	}
	return ModeHTML
}

// NewWriter returns a RowWriter for mode writing to w.
func NewWriter(mode Mode, w io.Writer, isTTY bool) iotable.RowWriter {
	switch mode.Resolve(isTTY) {
	case ModeMarkdown:
		return NewMarkdownWriter(w)
	case ModeText:
		return NewTextWriter(w)
	default:
		return NewHTMLWriter(w)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: file descriptors fit in int
}

// level is the nesting level of a row, 0 for top level rows.
func level(r iotable.Row) int {
	return r.Indent / iotable.IndentUnit
}
