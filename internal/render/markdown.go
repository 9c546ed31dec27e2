package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	mdtable "github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/leapstack-labs/iodoc/internal/iotable"
)

// MarkdownWriter writes each table as a markdown pipe table. Markdown has no
// disclosure widgets, so every row is listed and nesting is shown by
// indenting the name.
type MarkdownWriter struct {
	w    io.Writer
	conv *converter.Converter
	buf  bytes.Buffer
}

// NewMarkdownWriter returns a MarkdownWriter writing to w.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		w: w,
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				mdtable.NewTablePlugin(),
			),
		),
	}
}

// StartTable buffers the table header.
func (m *MarkdownWriter) StartTable(h iotable.Header) error {
	m.buf.Reset()
	if h.Title != "" {
		fmt.Fprintf(&m.buf, "<h3>%s</h3>", html.EscapeString(h.Title))
	}
	fmt.Fprintf(&m.buf, "<table><thead><tr><th>%s</th><th>%s</th><th>%s</th></tr></thead><tbody>",
		html.EscapeString(h.Name), html.EscapeString(h.Before), html.EscapeString(h.After))
	return nil
}

// WriteRow buffers one row.
func (m *MarkdownWriter) WriteRow(r iotable.Row) error {
	name := strings.Repeat("&nbsp;&nbsp;", level(r)) + html.EscapeString(r.Name)
	fmt.Fprintf(&m.buf, "<tr><td>%s</td><td>%s</td><td>%s</td></tr>",
		name, codeCell(r.Before), codeCell(r.After))
	return nil
}

// EndTable converts the buffered table and writes it out.
func (m *MarkdownWriter) EndTable() error {
	m.buf.WriteString("</tbody></table>")
	md, err := m.conv.ConvertString(m.buf.String())
	if err != nil {
		return fmt.Errorf("failed to convert table to markdown: %w", err)
	}
	m.buf.Reset()
	_, err = io.WriteString(m.w, md+"\n\n")
	return err
}

func codeCell(v string) string {
	if v == "" {
		return ""
	}
	return "<code>" + html.EscapeString(v) + "</code>"
}
