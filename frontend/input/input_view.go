package input

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var inputPage = html.MustPage("input", `
<form method="get" action="/keepstock/input" class="search">
  {{if not .Nav.Branch}}
  <select name="branch">
    <option value="">Choose branch</option>
    {{range .Branches}}<option value="{{.}}"{{if eq . $.Branch}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  <input type="search" name="q" value="{{.Query}}" placeholder="Search SKU or name" autofocus>
  <button type="submit">Search</button>
</form>
{{if .NextNumber}}
<p class="hint">Next new box: {{range $.Categories}}<span class="badge">{{index $.NextNumber .}}</span> {{end}}</p>
{{end}}
{{if .Products}}
<table>
  <thead><tr><th>SKU</th><th>Name</th><th>Rack</th><th>Price</th><th>Branch</th><th>In boxes</th><th></th></tr></thead>
  <tbody>
  {{range .Products}}
  <tr{{if .Selected}} class="selected"{{end}}>
    <td>{{.Product.SKU}}</td>
    <td>{{.Product.Name}}</td>
    <td>{{.Product.RackNumber}}</td>
    <td>{{rupiah .Product.Price}}</td>
    <td>{{.Product.Branch}}</td>
    <td>{{range .Holders}}<span class="badge">{{.}}</span> {{else}}-{{end}}</td>
    <td>
      <form method="post" action="/keepstock/input" class="inline">
        <input type="hidden" name="sku" value="{{.Product.SKU}}">
        <input type="hidden" name="branch" value="{{.Product.Branch}}">
        <input type="hidden" name="q" value="{{$.Query}}">
        <select name="category">{{range $.Categories}}<option value="{{.}}">{{.}}</option>{{end}}</select>
        <input type="number" name="quantity" min="1" value="1" required>
        <button type="submit">Add to box</button>
      </form>
    </td>
  </tr>
  {{end}}
  </tbody>
</table>
{{else}}<p>No products found.</p>{{end}}`)

func InputPage(data PageData) templ.Component {
	return html.Render(inputPage, data)
}
