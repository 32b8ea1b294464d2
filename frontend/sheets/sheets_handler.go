package sheets

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"keepstock/frontend/boxes"
	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/models"
)

// PrintPageQueryHandler lists boxes that can be printed.
func PrintPageQueryHandler(products *catalog.Store, store *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))
		query := strings.TrimSpace(q.Get("q"))
		category := defaultCategory(q.Get("category"))

		rows, err := boxes.LoadRows(r.Context(), store, branch, query, category)
		if err != nil {
			slog.Error("load printable boxes", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load boxes", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := PrintPage(PageData{
			Frame: html.Frame{
				Title:  "Print Sheets",
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
			http.Error(w, "failed to render print page", http.StatusInternalServerError)
			return
		}
	}
}

// BoxSheetPDFQueryHandler serves the content sheet of one box.
func BoxSheetPDFQueryHandler(store *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSuffix(chi.URLParam(r, "file"), ".pdf")
		box, ok, err := store.Get(r.Context(), id)
		if err != nil {
			slog.Error("load box for sheet", slog.String("box", id), slog.Any("err", err))
			http.Error(w, "failed to load box", http.StatusInternalServerError)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		if !ok || (session.User.Branch != "" && box.Branch != session.User.Branch) {
			http.Error(w, "box not found", http.StatusNotFound)
			return
		}
		writeSheets(w, []models.Box{box}, "box-"+box.ID+".pdf")
	}
}

// BoxSheetsPDFQueryHandler prints every box matching the print screen filter
// into one document.
func BoxSheetsPDFQueryHandler(store *keepstock.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))

		all, err := store.List(r.Context(), branch)
		if err != nil {
			slog.Error("load boxes for sheets", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load boxes", http.StatusInternalServerError)
			return
		}
		matched := keepstock.Filter(all, q.Get("q"), defaultCategory(q.Get("category")))
		if len(matched) == 0 {
			http.Error(w, "no boxes match the filter", http.StatusNotFound)
			return
		}
		writeSheets(w, matched, "box-sheets.pdf")
	}
}

func writeSheets(w http.ResponseWriter, list []models.Box, filename string) {
	pdfBytes, err := renderBoxSheetsPDF(list, time.Now())
	if err != nil {
		slog.Error("render box sheets", slog.Int("boxes", len(list)), slog.Any("err", err))
		http.Error(w, "failed to build sheet pdf", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	_, _ = w.Write(pdfBytes)
}

func defaultCategory(c string) string {
	c = strings.TrimSpace(c)
	if c == "" {
		return "all"
	}
	return c
}
