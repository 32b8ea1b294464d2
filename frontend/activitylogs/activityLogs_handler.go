package activitylogs

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/catalog"
)

// ActivityLogsPageQueryHandler renders the searchable history.
func ActivityLogsPageQueryHandler(products *catalog.Store, logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		q := r.URL.Query()
		data := PageData{
			Frame: html.Frame{
				Title:  "Activity Logs",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: q.Get("status"),
				Error:  q.Get("error"),
			},
			Text:       q.Get("q"),
			Action:     q.Get("action"),
			Start:      q.Get("start"),
			End:        q.Get("end"),
			Actions:    activity.Actions,
			ShowBranch: session.User.Branch == "",
		}

		criteria, err := criteriaFromQuery(q, session, time.Local)
		if err != nil {
			data.Error = apperr.UserMessage(err, "invalid filter")
		} else {
			data.Branch = criteria.Branch
			data.ExportURL = "/keepstock/activity.csv?" + q.Encode()
			if data.Logs, err = logs.Search(r.Context(), criteria); err != nil {
				slog.Error("search activity", slog.Any("err", err))
				http.Error(w, "failed to load activity logs", http.StatusInternalServerError)
				return
			}
		}
		if data.Branches, err = products.Branches(r.Context()); err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := ActivityLogsPage(data).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render activity logs", http.StatusInternalServerError)
			return
		}
	}
}

// ActivityLogsCSVHandler exports the filtered history.
func ActivityLogsCSVHandler(logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		criteria, err := criteriaFromQuery(r.URL.Query(), session, time.Local)
		if err != nil {
			http.Error(w, apperr.UserMessage(err, "invalid filter"), http.StatusBadRequest)
			return
		}
		entries, err := logs.Search(r.Context(), criteria)
		if err != nil {
			slog.Error("search activity for export", slog.Any("err", err))
			http.Error(w, "failed to load activity logs", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("activity-%s.csv", time.Now().Format("20060102-150405"))
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := activity.WriteCSV(w, entries); err != nil {
			slog.Error("write activity csv", slog.Any("err", err))
		}
	}
}
