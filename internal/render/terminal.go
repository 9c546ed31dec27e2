package render

import (
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/leapstack-labs/iodoc/internal/iotable"
)

// TextWriter prints tables for a terminal. All rows are shown, nested ones
// indented under their parent.
type TextWriter struct {
	w io.Writer
	t table.Writer
}

// NewTextWriter returns a TextWriter writing to w.
func NewTextWriter(w io.Writer) *TextWriter {
	return &TextWriter{w: w}
}

// StartTable begins a new table.
func (p *TextWriter) StartTable(h iotable.Header) error {
	p.t = table.NewWriter()
	p.t.SetOutputMirror(p.w)
	p.t.SetStyle(table.StyleLight)
	p.t.Style().Format.Header = text.FormatDefault
	if h.Title != "" {
		p.t.SetTitle(h.Title)
	}
	p.t.AppendHeader(table.Row{h.Name, h.Before, h.After})
	return nil
}

// WriteRow adds a row.
func (p *TextWriter) WriteRow(r iotable.Row) error {
	marker := "  "
	if r.Collapsible {
		marker = "▸ "
	}
	name := strings.Repeat("  ", level(r)) + marker + r.Name
	p.t.AppendRow(table.Row{name, r.Before, r.After})
	return nil
}

// EndTable renders the table.
func (p *TextWriter) EndTable() error {
	p.t.Render()
	p.t = nil
	return nil
}
