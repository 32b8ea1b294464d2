package input

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/sqlite"
)

const inputPath = "/keepstock/input"

// InputPageQueryHandler renders the product search used to store new units.
func InputPageQueryHandler(products *catalog.Store, boxes *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))
		query := strings.TrimSpace(q.Get("q"))

		rows, next, err := LoadPageData(r.Context(), products, boxes, query, branch, q.Get("sku"))
		if err != nil {
			slog.Error("load input page", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load products", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := InputPage(PageData{
			Frame: html.Frame{
				Title:  "Input Product",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Query:      query,
			Branch:     branch,
			Branches:   branches,
			Categories: keepstock.Categories,
			NextNumber: next,
			Products:   rows,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render input page", http.StatusInternalServerError)
			return
		}
	}
}

// InputCommandHandler stores units of a product into a box.
func InputCommandHandler(db *sqlite.DB, products *catalog.Store, boxes *keepstock.Store, logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, inputPath+"?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		branch := sessioncontext.ScopeBranch(session, r.FormValue("branch"))
		back := inputPath + "?branch=" + url.QueryEscape(branch) + "&q=" + url.QueryEscape(r.FormValue("q"))

		qty, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("quantity")), 10, 64)
		if err != nil {
			http.Redirect(w, r, back+"&error="+url.QueryEscape("quantity must be a whole number"), http.StatusSeeOther)
			return
		}

		res, err := StoreProduct(r.Context(), db, products, boxes, logs, Request{
			SKU:      r.FormValue("sku"),
			Category: strings.ToUpper(strings.TrimSpace(r.FormValue("category"))),
			Quantity: qty,
			Branch:   branch,
			Username: session.User.Username,
		})
		if err != nil {
			if !apperr.IsValidation(err) {
				slog.Error("store product", slog.String("sku", r.FormValue("sku")), slog.Any("err", err))
			}
			http.Redirect(w, r, back+"&error="+url.QueryEscape(apperr.UserMessage(err, "failed to store product")), http.StatusSeeOther)
			return
		}

		msg := res.Log.Details
		if res.Created {
			msg += " (new box)"
		}
		http.Redirect(w, r, back+"&status="+url.QueryEscape(msg), http.StatusSeeOther)
	}
}
