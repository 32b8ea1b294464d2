package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/frontend/shared/html"
	"keepstock/frontend/shared/nav"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
)

// DashboardPageQueryHandler renders branch statistics and recent activity.
func DashboardPageQueryHandler(products *catalog.Store, boxes *keepstock.Store, logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		branch := sessioncontext.ScopeBranch(session, r.URL.Query().Get("branch"))

		stats, err := LoadStats(r.Context(), boxes, logs, branch, time.Now())
		if err != nil {
			slog.Error("load dashboard stats", slog.String("branch", branch), slog.Any("err", err))
			http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
			return
		}
		branches, err := products.Branches(r.Context())
		if err != nil {
			slog.Error("list branches", slog.Any("err", err))
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := DashboardPage(PageData{
			Frame: html.Frame{
				Title:  "Dashboard",
				Nav:    nav.BuildTopNavData(session, r.URL.Path),
				Status: r.URL.Query().Get("status"),
				Error:  r.URL.Query().Get("error"),
			},
			Branch:   branch,
			Branches: branches,
			Stats:    stats,
		}).Render(r.Context(), w); err != nil {
			http.Error(w, "failed to render dashboard", http.StatusInternalServerError)
			return
		}
	}
}

// ActivityChartQueryHandler returns the input and refill series as JSON.
func ActivityChartQueryHandler(logs *activity.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessioncontext.GetSessionFromContext(r.Context())
		branch := sessioncontext.ScopeBranch(session, r.URL.Query().Get("branch"))
		period := r.URL.Query().Get("period")
		now := time.Now()

		entries, err := logs.ListByDateRange(r.Context(), activity.SeriesStart(period, now), now, branch)
		if err != nil {
			slog.Error("load chart activity", slog.Any("err", err))
			http.Error(w, "failed to load activity", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(activity.BuildSeries(entries, period, now)); err != nil {
			slog.Error("encode chart", slog.Any("err", err))
		}
	}
}
