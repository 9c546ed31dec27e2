package render

import (
	"fmt"
	"html/template"
	"io"

	"github.com/leapstack-labs/iodoc/internal/iotable"
)

var htmlTemplates = template.Must(template.New("start").Parse(
	`{{if .Title}}<dl class="section ioexample"><dt>{{.Title}}</dt><dd>{{end}}` +
		`<table class="fieldtable"><tbody>` +
		`<tr><th>{{.Name}}</th><th>{{.Before}}</th><th>{{.After}}</th></tr>`,
))

func init() {
	template.Must(htmlTemplates.New("row").Parse(
		`<tr id="row_{{.ID}}" {{if .Visible}}class="even"{{else}}class="" style="display: none;"{{end}}>` +
			`<td class="entry"><span style="width:{{.Indent}}px;display:inline-block;">&nbsp;</span>` +
			`{{if .Collapsible}}<span id="arr_{{.ID}}" class="arrow" onclick="toggleFolder('{{.ID}}')">&#9658;</span>{{end}}` +
			`{{.Name}}</td>` +
			`<td class="desc">{{.Before}}</td>` +
			`<td class="desc">{{.After}}</td></tr>`,
	))
	template.Must(htmlTemplates.New("end").Parse(
		`</tbody></table>{{if .Title}}</dd></dl>{{end}}` + "\n",
	))
}

// HTMLWriter writes tables as the collapsible HTML used in generated pages.
// Hidden rows are revealed by the toggleFolder script shipped with the site.
type HTMLWriter struct {
	w      io.Writer
	header iotable.Header
}

// NewHTMLWriter returns an HTMLWriter writing to w.
func NewHTMLWriter(w io.Writer) *HTMLWriter {
	return &HTMLWriter{w: w}
}

// StartTable writes the table header, wrapped in a section when the header
// has a title.
func (h *HTMLWriter) StartTable(hdr iotable.Header) error {
	h.header = hdr
	return h.exec("start", hdr)
}

// WriteRow writes one row.
func (h *HTMLWriter) WriteRow(r iotable.Row) error {
	return h.exec("row", r)
}

// EndTable closes the table.
func (h *HTMLWriter) EndTable() error {
	return h.exec("end", h.header)
}

func (h *HTMLWriter) exec(name string, data any) error {
	if err := htmlTemplates.ExecuteTemplate(h.w, name, data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
