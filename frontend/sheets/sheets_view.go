package sheets

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var printPage = html.MustPage("print", `
<form method="get" action="/keepstock/print" class="search">
  {{if not .Nav.Branch}}
  <select name="branch">
    <option value="">All branches</option>
    {{range .Branches}}<option value="{{.}}"{{if eq . $.Branch}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  <input type="search" name="q" value="{{.Query}}" placeholder="Box number, SKU or name">
  <select name="category">
    {{range .Categories}}<option value="{{.}}"{{if eq . $.Category}} selected{{end}}>{{if eq . "all"}}All categories{{else}}Category {{.}}{{end}}</option>{{end}}
  </select>
  <button type="submit">Filter</button>
</form>
{{if .Rows}}
<p><a class="button" target="_blank" href="/keepstock/print/sheets.pdf?branch={{.Branch}}&q={{.Query}}&category={{.Category}}">Print all {{len .Rows}} sheets</a></p>
<table>
  <thead><tr><th>Box</th><th>Category</th><th>Branch</th><th>SKUs</th><th>Total qty</th><th></th></tr></thead>
  <tbody>
  {{range .Rows}}
  <tr>
    <td>{{.Number}}</td>
    <td>{{.Category}}</td>
    <td>{{.Branch}}</td>
    <td>{{.SKUCount}}</td>
    <td>{{.TotalQuantity}}</td>
    <td><a href="/keepstock/print/{{.ID}}.pdf" target="_blank">Print sheet</a></td>
  </tr>
  {{end}}
  </tbody>
</table>
{{else}}<p>No boxes found.</p>{{end}}`)

func PrintPage(data PageData) templ.Component {
	return html.Render(printPage, data)
}
