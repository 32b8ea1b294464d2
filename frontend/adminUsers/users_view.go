package adminusers

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var usersPage = html.MustPage("users", `
<form method="post" action="/keepstock/admin/users" class="card">
  <input type="text" name="username" placeholder="Username" required>
  <input type="text" name="name" placeholder="Display name">
  <input type="password" name="password" placeholder="Password" required>
  <select name="role">
    {{range .Roles}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  <select name="branch">
    <option value="">No branch</option>
    {{range .Branches}}<option value="{{.}}">{{.}}</option>{{end}}
  </select>
  <button type="submit">Save user</button>
  <p class="hint">An existing username is updated. Store users need a branch.</p>
</form>
<table>
  <thead><tr><th>Username</th><th>Name</th><th>Role</th><th>Branch</th></tr></thead>
  <tbody>
  {{range .Users}}
  <tr><td>{{.Username}}</td><td>{{.Name}}</td><td>{{.Role}}</td><td>{{.Branch}}</td></tr>
  {{else}}
  <tr><td colspan="4">No users.</td></tr>
  {{end}}
  </tbody>
</table>`)

func UsersListPage(data PageData) templ.Component {
	return html.Render(usersPage, data)
}
