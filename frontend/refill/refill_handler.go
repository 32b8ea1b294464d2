package refill

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

const refillPath = "/keepstock/refill"

// RefillPageQueryHandler lists boxes holding the searched sku.
func RefillPageQueryHandler(products *catalog.Store, boxes *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))
		query := strings.TrimSpace(q.Get("q"))

		found, err := boxes.FindByItemSku(r.Context(), query, branch)
		if err != nil {
			slog.Error("find boxes by sku", slog.String("q", query), slog.Any("err", err))
			http.Error(w, "failed to search boxes", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := RefillPage(PageData{
			Frame: html.Frame{
				Title:  "Refill Stock",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Query:    query,
			Branch:   branch,
			Branches: branches,
			Boxes:    found,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render refill page", http.StatusInternalServerError)
			return
		}
	}
}

// RefillCommandHandler takes units out of a box.
func RefillCommandHandler(db *sqlite.DB, boxes *keepstock.Store, logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, refillPath+"?error="+url.QueryEscape("invalid form"), http.StatusSeeOther)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		branch := sessioncontext.ScopeBranch(session, r.FormValue("branch"))
		back := refillPath + "?branch=" + url.QueryEscape(branch) + "&q=" + url.QueryEscape(r.FormValue("q"))

		qty, err := strconv.ParseInt(strings.TrimSpace(r.FormValue("quantity")), 10, 64)
		if err != nil {
			http.Redirect(w, r, back+"&error="+url.QueryEscape("quantity must be a whole number"), http.StatusSeeOther)
			return
		}

		res, err := TakeFromBox(r.Context(), db, boxes, logs, Request{
			BoxID:    r.FormValue("box_id"),
			SKU:      r.FormValue("sku"),
			Quantity: qty,
			Username: session.User.Username,
		})
		if err != nil {
			if !apperr.IsValidation(err) {
				slog.Error("refill", slog.String("box", r.FormValue("box_id")), slog.Any("err", err))
			}
			http.Redirect(w, r, back+"&error="+url.QueryEscape(apperr.UserMessage(err, "failed to refill stock")), http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, back+"&status="+url.QueryEscape(res.Log.Details), http.StatusSeeOther)
	}
}
