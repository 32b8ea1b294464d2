package catalogupload

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/sqlite"
)

const uploadPath = "/keepstock/catalog/upload"

const maxUploadBytes = 10 << 20

// CatalogUploadPageQueryHandler shows the upload form and the branch catalog.
func CatalogUploadPageQueryHandler(products *catalog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		branch := sessioncontext.ScopeBranch(session, q.Get("branch"))

		list, err := products.List(r.Context(), branch)
		if err != nil {
			slog.Error("list products", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load catalog", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := CatalogUploadPage(PageData{
			Frame: html.Frame{
				Title:  "Upload CSV",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Branch:   branch,
			Branches: branches,
			Columns:  catalog.RequiredColumns,
			Products: list,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render upload page", http.StatusInternalServerError)
			return
		}
	}
}

// CatalogUploadCommandHandler imports an uploaded catalog CSV into a branch.
func CatalogUploadCommandHandler(db *sqlite.DB, products *catalog.Store, logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Redirect(w, r, uploadPath+"?error="+url.QueryEscape("invalid upload"), http.StatusSeeOther)
			return
		}
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		branch := sessioncontext.ScopeBranch(session, r.FormValue("branch"))
		back := uploadPath + "?branch=" + url.QueryEscape(branch)

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Redirect(w, r, back+"&error="+url.QueryEscape("file is required"), http.StatusSeeOther)
			return
		}
		defer file.Close()

		res, err := ImportCSV(r.Context(), db, products, logs, Request{
			Branch:   branch,
			Username: session.User.Username,
			Filename: header.Filename,
		}, file)
		if err != nil {
			if apperr.As(err) == nil {
				slog.Error("import catalog csv", slog.String("branch", branch), slog.Any("err", err))
			}
			http.Redirect(w, r, back+"&error="+url.QueryEscape(apperr.UserMessage(err, "failed to import catalog")), http.StatusSeeOther)
			return
		}

		status := fmt.Sprintf("Imported %d rows: %d added, %d updated", res.Rows, res.Summary.Added, res.Summary.Updated)
		http.Redirect(w, r, back+"&status="+url.QueryEscape(status), http.StatusSeeOther)
	}
}
