package boxes

import (
	"log/slog"
	"net/http"
	"strings"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
)

// BoxesPageQueryHandler renders the box management table.
func BoxesPageQueryHandler(products *catalog.Store, store *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))
		query := strings.TrimSpace(q.Get("q"))
		category := strings.TrimSpace(q.Get("category"))
		if category == "" {
			category = "all"
		}

		rows, err := LoadRows(r.Context(), store, branch, query, category)
		if err != nil {
			slog.Error("load boxes", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load boxes", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := BoxesPage(PageData{
			Frame: html.Frame{
				Title:  "Box Management",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Query:      query,
			Category:   category,
			Branch:     branch,
			Branches:   branches,
			Categories: append([]string{"all"}, keepstock.Categories...),
			Rows:       rows,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render boxes page", http.StatusInternalServerError)
			return
		}
	}
}
