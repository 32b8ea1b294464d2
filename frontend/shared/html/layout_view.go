// Package html renders the server-side pages. Every screen parses its
// "content" template on top of the shared layout and is exposed as a
// templ.Component.
package html

import (
	"context"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"keepstock/frontend/shared/nav"
)

// Frame is embedded in every page's data.
type Frame struct {
	Title  string
	Nav    nav.TopNavData
	Status string
	Error  string
}

const layoutSrc = `{{define "layout"}}<!doctype html>
<html lang="id">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · Keepstock</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
{{if .Nav.Username}}
<header class="topnav">
  <a class="brand" href="/keepstock/dashboard">Keepstock</a>
  <nav>{{range .Nav.Links}}<a href="{{.Href}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a>{{end}}</nav>
  <div class="user">
    <span>{{.Nav.Name}} ({{.Nav.Role}}{{if .Nav.Branch}} · {{.Nav.Branch}}{{end}})</span>
    <form method="post" action="/logout"><button type="submit">Logout</button></form>
  </div>
</header>
{{end}}
<main>
<h1>{{.Title}}</h1>
{{if .Status}}<p class="alert success">{{.Status}}</p>{{end}}
{{if .Error}}<p class="alert error">{{.Error}}</p>{{end}}
{{template "content" .}}
</main>
<script src="/assets/app.js" defer></script>
</body>
</html>{{end}}`

var printer = message.NewPrinter(language.Indonesian)

var funcs = template.FuncMap{
	"rupiah":   Rupiah,
	"datetime": DateTime,
	"date":     func(t time.Time) string { return t.Format("02/01/2006") },
	"lower":    strings.ToLower,
}

var layout = template.Must(template.New("layout").Funcs(funcs).Parse(layoutSrc))

// MustPage parses a page's "content" template on a copy of the layout.
func MustPage(name, contentSrc string) *template.Template {
	t := template.Must(layout.Clone())
	return template.Must(t.New(name).Parse(`{{define "content"}}` + contentSrc + `{{end}}`))
}

// Render exposes a parsed page as a templ component.
func Render(page *template.Template, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return page.ExecuteTemplate(w, "layout", data)
	})
}

// Rupiah formats an amount with Indonesian digit grouping, e.g. Rp 15.000.
func Rupiah(amount decimal.Decimal) string {
	return "Rp " + printer.Sprint(number.Decimal(amount.InexactFloat64(), number.MaxFractionDigits(2)))
}

func DateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006 15:04")
}
