package dashboard

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var dashboardPage = html.MustPage("dashboard", `
{{if not .Nav.Branch}}
<form method="get" action="/keepstock/dashboard" class="inline">
  <label>Branch
    <select name="branch" onchange="this.form.submit()">
      <option value="">All branches</option>
      {{range .Branches}}<option value="{{.}}"{{if eq . $.Branch}} selected{{end}}>{{.}}</option>{{end}}
    </select>
  </label>
</form>
{{end}}
<section class="stats">
  <div class="stat"><span>Total SKUs</span><strong>{{.Stats.TotalSKUs}}</strong></div>
  <div class="stat"><span>Active boxes</span><strong>{{.Stats.ActiveBoxes}} / {{.Stats.TotalBoxes}}</strong></div>
  <div class="stat"><span>Refills today</span><strong>{{.Stats.RefillsToday}}</strong></div>
  <div class="stat"><span>Activity entries</span><strong>{{.Stats.LogCount}}</strong></div>
</section>
<section>
  <h2>Boxes by category</h2>
  <table>
    <thead><tr><th>Category</th><th>Boxes</th><th>SKU lines</th></tr></thead>
    <tbody>
    {{range .Stats.Categories}}<tr><td>{{.Category}}</td><td>{{.Boxes}}</td><td>{{.SKUs}}</td></tr>{{end}}
    </tbody>
  </table>
</section>
<section>
  <h2>Input vs refill</h2>
  <div class="periods">
    <button type="button" data-period="day">Day</button>
    <button type="button" data-period="week" class="active">Week</button>
    <button type="button" data-period="month">Month</button>
  </div>
  <div id="activity-chart" class="chart" data-src="/keepstock/api/activity-chart?branch={{.Branch}}"></div>
</section>
<section>
  <h2>Recent activity</h2>
  {{if .Stats.Recent}}
  <ul class="activity">
    {{range .Stats.Recent}}<li><span class="badge {{.Action}}">{{.Action}}</span> {{.Details}} <small>{{.Username}} · {{datetime .Timestamp}}</small></li>{{end}}
  </ul>
  {{else}}<p>No recent activity.</p>{{end}}
</section>`)

func DashboardPage(data PageData) templ.Component {
	return html.Render(dashboardPage, data)
}
