package refill

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var refillPage = html.MustPage("refill", `
<form method="get" action="/keepstock/refill" class="search">
  {{if not .Nav.Branch}}
  <select name="branch">
    <option value="">All branches</option>
    {{range .Branches}}<option value="{{.}}"{{if eq . $.Branch}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  <input type="search" name="q" value="{{.Query}}" placeholder="Search SKU" autofocus>
  <button type="submit">Search</button>
</form>
{{range .Boxes}}
{{$box := .}}
<section class="box">
  <h2>Box {{.Number}} <small>{{.Category}} · {{.Branch}}</small></h2>
  <table>
    <thead><tr><th>SKU</th><th>Name</th><th>Available</th><th></th></tr></thead>
    <tbody>
    {{range .Items}}
    <tr>
      <td>{{.SKU}}</td>
      <td>{{.Name}}</td>
      <td>{{.Quantity}}</td>
      <td>
        <form method="post" action="/keepstock/refill" class="inline">
          <input type="hidden" name="box_id" value="{{$box.ID}}">
          <input type="hidden" name="sku" value="{{.SKU}}">
          <input type="hidden" name="branch" value="{{$box.Branch}}">
          <input type="hidden" name="q" value="{{$.Query}}">
          <input type="number" name="quantity" min="1" max="{{.Quantity}}" value="1" required>
          <button type="submit">Refill</button>
        </form>
      </td>
    </tr>
    {{end}}
    </tbody>
  </table>
</section>
{{else}}<p>No boxes hold a matching SKU.</p>{{end}}`)

func RefillPage(data PageData) templ.Component {
	return html.Render(refillPage, data)
}
