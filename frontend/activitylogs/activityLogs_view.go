package activitylogs

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var activityLogsPage = html.MustPage("activity", `
<form method="get" action="/keepstock/activity" class="search">
  {{if .ShowBranch}}
  <select name="branch">
    <option value="">All branches</option>
    {{range .Branches}}<option value="{{.}}"{{if eq . $.Branch}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  {{end}}
  <input type="search" name="q" value="{{.Text}}" placeholder="Details or SKU">
  <select name="action">
    <option value="all">All actions</option>
    {{range .Actions}}<option value="{{.}}"{{if eq . $.Action}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <input type="date" name="start" value="{{.Start}}">
  <input type="date" name="end" value="{{.End}}">
  <button type="submit">Filter</button>
  {{if .ExportURL}}<a class="button" href="{{.ExportURL}}">Export CSV</a>{{end}}
</form>
<table>
  <thead><tr><th>Time</th><th>User</th>{{if .ShowBranch}}<th>Branch</th>{{end}}<th>Action</th><th>Details</th></tr></thead>
  <tbody>
  {{range .Logs}}
  <tr>
    <td>{{datetime .Timestamp}}</td>
    <td>{{.Username}}</td>
    {{if $.ShowBranch}}<td>{{.Branch}}</td>{{end}}
    <td><span class="badge {{.Action}}">{{.Action}}</span></td>
    <td>{{.Details}}</td>
  </tr>
  {{else}}
  <tr><td colspan="{{if .ShowBranch}}5{{else}}4{{end}}">No activity found.</td></tr>
  {{end}}
  </tbody>
</table>`)

func ActivityLogsPage(data PageData) templ.Component {
	return html.Render(activityLogsPage, data)
}
