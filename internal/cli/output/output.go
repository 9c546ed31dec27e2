// Package output prints command results and status lines for the CLI.
// Styling is applied only when the destination is a terminal.
package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/iodoc/internal/render"
)

// Styles holds the lipgloss styles used by the CLI.
type Styles struct {
	Header  lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Box     lipgloss.Style
}

// NewStyles creates styles bound to a lipgloss renderer.
func NewStyles(lr *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Bold:    lr.NewStyle().Bold(true),
		Muted:   lr.NewStyle().Foreground(lipgloss.Color("8")),
		Success: lr.NewStyle().Foreground(lipgloss.Color("10")),
		Warning: lr.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lr.NewStyle().Foreground(lipgloss.Color("9")),
		Box: lr.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1),
	}
}

// Renderer writes human readable output.
type Renderer struct {
	w      io.Writer
	errW   io.Writer
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a Renderer for w, with diagnostics going to errW.
func NewRenderer(w, errW io.Writer) *Renderer {
	return &Renderer{
		w:      w,
		errW:   errW,
		isTTY:  render.IsTerminal(w),
		styles: NewStyles(lipgloss.NewRenderer(w)),
	}
}

// Writer returns the main output writer.
func (r *Renderer) Writer() io.Writer { return r.w }

// IsTTY reports whether the output is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the renderer's styles.
func (r *Renderer) Styles() *Styles { return r.styles }

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.w, a...)
}

// Printf writes formatted text to the output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format, a...)
}

// Header writes a styled section header.
func (r *Renderer) Header(title string) {
	r.Println(r.styles.Header.Render(title))
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓ " + msg))
}

// Warn writes a warning to the diagnostics writer.
func (r *Renderer) Warn(msg string) {
	_, _ = fmt.Fprintln(r.errW, r.styles.Warning.Render("! "+msg))
}

// FormatKeyValue formats a "key: value" line with the key padded to width.
func (r *Renderer) FormatKeyValue(key string, value any, width int) string {
	return fmt.Sprintf("%s %v", r.styles.Muted.Render(fmt.Sprintf("%-*s", width, key+":")), value)
}
