package login

import (
	"github.com/a-h/templ"

	"keepstock/frontend/shared/html"
)

var loginPage = html.MustPage("login", `
<form method="post" action="/login" class="card narrow">
  <label>Username <input type="text" name="username" autocomplete="username" required autofocus></label>
  <label>Password <input type="password" name="password" autocomplete="current-password" required></label>
  <button type="submit">Sign in</button>
</form>
<p class="hint">Demo accounts: store1 / password123, manager1 / password123, admin / admin123. Usernames ignore case; passwords do not.</p>`)

func GetLoginScreen(errorMessage, status string) templ.Component {
	return html.Render(loginPage, html.Frame{Title: "Sign in", Error: errorMessage, Status: status})
}
