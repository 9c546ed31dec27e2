package site

import "html/template"

type pageCommon struct {
	Title      string
	Root       string // relative path back to the site root
	LiveReload bool
}

type indexPage struct {
	pageCommon
	Manifest *Manifest
}

type functionPage struct {
	pageCommon
	Name       string
	Status     string
	Example    template.HTML
	Parameters []parameterSection
}

type parameterSection struct {
	Name   string
	Type   string
	Status string
	Table  template.HTML
}

// liveReloadScript reloads the page when the dev server reports a rebuild.
const liveReloadScript = `(function() {
  var es = new EventSource('/__reload');
  es.onmessage = function(e) {
    if (e.data === 'reload') {
      window.location.reload();
    }
  };
  es.onerror = function() {
    setTimeout(function() { window.location.reload(); }, 1000);
  };
})();`

var pages = template.Must(template.New("head").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="{{.Root}}iodoc.css">
<script src="{{.Root}}iodoc.js"></script>
{{- if .LiveReload}}
<script>` + liveReloadScript + `</script>
{{- end}}
</head>
<body>
`))

func init() {
	template.Must(pages.New("foot").Parse(`</body>
</html>
`))

	template.Must(pages.New("index").Parse(`{{template "head" .}}<h1>{{.Title}}</h1>
<p class="status">{{.Manifest.Stats.Rendered}} of {{.Manifest.Stats.Functions}} functions have an I/O example.</p>
<table class="fieldtable"><tbody>
<tr><th>function</th><th>I/O example</th><th>rows</th></tr>
{{- range .Manifest.Functions}}
<tr><td class="entry"><a href="{{.Page}}">{{.Name}}</a></td><td class="status {{.Status}}">{{.Status}}</td><td>{{.Rows}}</td></tr>
{{- end}}
</tbody></table>
{{template "foot" .}}`))

	template.Must(pages.New("function").Parse(`{{template "head" .}}<p><a href="{{.Root}}index.html">{{.Title}}</a></p>
<h1>{{.Name}}</h1>
{{if .Example}}{{.Example}}{{else}}<p class="skipped">No I/O example ({{.Status}}).</p>
{{end}}
{{- range .Parameters}}
<h3 id="param-{{.Name}}">{{.Name}}{{if .Type}} <code>{{.Type}}</code>{{end}}</h3>
{{if .Table}}{{.Table}}{{else}}<p class="skipped">No values recorded ({{.Status}}).</p>
{{end}}
{{- end}}
{{template "foot" .}}`))
}
