package catalogupload

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var catalogUploadPage = html.MustPage("catalog-upload", `
<form method="post" action="/keepstock/catalog/upload" enctype="multipart/form-data" class="upload">
  <label>Branch
    {{if .Nav.Branch}}<input type="text" name="branch" value="{{.Branch}}" readonly>
    {{else}}<input type="text" name="branch" value="{{.Branch}}" list="branches" required>
    <datalist id="branches">{{range .Branches}}<option value="{{.}}">{{end}}</datalist>{{end}}
  </label>
  <label>CSV file <input type="file" name="file" accept=".csv,text/csv" required></label>
  <button type="submit">Upload</button>
  <p class="hint">Required columns: {{range $i, $c := .Columns}}{{if $i}}, {{end}}<code>{{$c}}</code>{{end}}</p>
</form>
<h2>Catalog{{if .Branch}} · {{.Branch}}{{end}}</h2>
<table>
  <thead><tr><th>SKU</th><th>Name</th><th>Rack</th><th>Price</th><th>Stock</th><th>Branch</th></tr></thead>
  <tbody>
  {{range .Products}}
  <tr><td>{{.SKU}}</td><td>{{.Name}}</td><td>{{.RackNumber}}</td><td>{{rupiah .Price}}</td><td>{{.StockNew}}</td><td>{{.Branch}}</td></tr>
  {{else}}
  <tr><td colspan="6">No products yet.</td></tr>
  {{end}}
  </tbody>
</table>`)

func CatalogUploadPage(data PageData) templ.Component {
	return html.Render(catalogUploadPage, data)
}
