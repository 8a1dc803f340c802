package generator

import (
	"html/template"
	"strings"
)

var htmlTemplate = template.Must(template.New("document").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>pguml</title>
<style type="text/css">
body { font-family: sans-serif; margin-right: 18em; }
table { border-collapse: collapse; margin: 1em 0; border: 0; }
table th, table td { line-height: 18px; padding: 8px 12px; text-align: left; }
table th { background-color: #2A7AD2; color: #fff; text-align: center; }
table tbody td { border-bottom: solid 1px #eee; }
a { color: #329ECC; text-decoration: none; border-bottom: 1px solid #A1CFD4; }
a:hover { background-color: #E2EFFF; }
.menu { position: fixed; right: 0; top: 0; bottom: 0; overflow: auto; width: 16em; background-color: #f0f0f0; padding: 0 1em; }
.meta { color: #666; }
</style>
</head>
<body>
<nav class="menu">
{{- range .Schemas}}
<span>{{.Name}}</span>
<ul>
{{- range .Tables}}
<li><a href="#{{.Node}}">{{.Name}}</a></li>
{{- end}}
</ul>
{{- end}}
</nav>
{{range .Tables}}
<div class="tbl">
<h2 id="{{.Node}}">{{.OutputName}}</h2>
<p class="meta">{{.Kind}}{{with .Description}} &mdash; {{.}}{{end}}</p>
<table>
<tr><th></th><th>Column</th><th>Type</th><th>Default</th><th>Description</th></tr>
{{- range .Columns}}
<tr>
<td>{{.Marker}}</td>
<td id="{{.Anchor}}">{{if .Target}}<a href="#{{.Target}}" title="{{.Target}}">{{.Name}}</a>{{else}}{{.Name}}{{end}}</td>
<td>{{.Type}}</td>
<td>{{with .Default}}{{.}}{{end}}</td>
<td>{{.Description}}</td>
</tr>
{{- end}}
{{- if .Uniques}}
<tr><td colspan="5" height="1"></td></tr>
{{- range .Uniques}}
<tr><td colspan="5">{{.}}</td></tr>
{{- end}}
{{- end}}
{{- if and $.ShowConstraints .Checks}}
<tr><td colspan="5" height="1"></td></tr>
{{- range .Checks}}
<tr><td colspan="5">{{with .Name}}{{.}}: {{end}}{{.Expression}}</td></tr>
{{- end}}
{{- end}}
</table>
</div>
{{end -}}
</body>
</html>
`))

func renderHTML(v *view) (string, error) {
	var b strings.Builder
	if err := htmlTemplate.Execute(&b, v); err != nil {
		return "", err
	}
	return b.String(), nil
}
