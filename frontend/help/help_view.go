package help

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

type PageData struct {
	html.Frame
	IsAdmin bool
	IsStore bool
}

var helpPage = html.MustPage("help", `
<section class="card">
  <h2>Boxes</h2>
  <p>Box numbers are the category letter followed by a three digit sequence, counted per branch: A001, A002, B001.
  A box with no items, or only zero quantities, shows as <span class="badge empty">empty</span>.</p>
</section>
{{if .Nav.Can "/keepstock/input"}}
<section class="card">
  <h2>Input product</h2>
  <ol>
    <li>Search the branch catalog by SKU or name and pick a product.</li>
    <li>Choose the category and the quantity.</li>
    <li>If a box already holds that SKU the units are added to it. Otherwise a new box is opened in the chosen category.</li>
  </ol>
</section>
<section class="card">
  <h2>Refill stock</h2>
  <p>Search boxes by SKU, choose the box and enter how many units go to the sales floor.
  The quantity cannot exceed what the box holds. A line that reaches zero is removed from the box.</p>
</section>
{{end}}
{{if .Nav.Can "/keepstock/print"}}
<section class="card">
  <h2>Print sheets</h2>
  <p>Every box sheet carries a barcode of the box id. Tape it to the box and tick the check column when counting.</p>
</section>
{{end}}
<section class="card">
  <h2>Activity logs</h2>
  <p>{{if .IsStore}}You see the history of your own branch.{{else}}Pick a branch or leave it empty to see every branch.{{end}}
  Use Export CSV to download the filtered list.</p>
</section>
{{if .IsAdmin}}
<section class="card">
  <h2>Catalog upload</h2>
  <p>The CSV needs the columns <code>SKU</code>, <code>No Rak</code>, <code>Nama Barang</code>, <code>Harga</code> and <code>Stock Baru</code>.
  Rows replace products with the same SKU in the branch. One bad row rejects the whole file.</p>
</section>
{{end}}`)

func HelpPage(data PageData) templ.Component {
	return html.Render(helpPage, data)
}
