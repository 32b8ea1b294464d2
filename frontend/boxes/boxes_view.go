package boxes

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var boxesPage = html.MustPage("boxes", `
<form method="get" action="/keepstock/boxes" class="search">
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
<table>
  <thead><tr><th>Box</th><th>Category</th><th>Branch</th><th>SKUs</th><th>Total qty</th><th>Status</th><th></th></tr></thead>
  <tbody>
  {{range .Rows}}
  <tr>
    <td>{{.Number}}</td>
    <td>{{.Category}}</td>
    <td>{{.Branch}}</td>
    <td>{{.SKUCount}}</td>
    <td>{{.TotalQuantity}}</td>
    <td><span class="badge {{.Status}}">{{.Status}}</span></td>
    <td>{{if $.Nav.Can "/keepstock/print"}}<a href="/keepstock/print/{{.ID}}.pdf" target="_blank">Print</a>{{end}}</td>
  </tr>
  {{else}}
  <tr><td colspan="7">No boxes found.</td></tr>
  {{end}}
  </tbody>
</table>`)

func BoxesPage(data PageData) templ.Component {
	return html.Render(boxesPage, data)
}
