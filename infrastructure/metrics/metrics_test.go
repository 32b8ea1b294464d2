package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestActivityMetricsCountsPerAction(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewActivityMetrics(reg)
	m.IncAppended("input", "Branch 1")
	m.IncAppended("input", "Branch 1")
	m.IncAppended("login", "")

	if got := testutil.ToFloat64(m.appended.WithLabelValues("input", "Branch 1")); got != 2 {
		t.Fatalf("expected input=2, got %f", got)
	}
	if got := testutil.ToFloat64(m.appended.WithLabelValues("login", "unknown")); got != 1 {
		t.Fatalf("expected login=1, got %f", got)
	}
}

func TestNilRegistererDisablesMetrics(t *testing.T) {
	m := NewActivityMetrics(nil)
	m.IncAppended("input", "Branch 1")

	var nilMetrics *ActivityMetrics
	nilMetrics.IncAppended("input", "Branch 1")

	h := NewHTTPMetrics(nil).Middleware(http.NotFoundHandler())
	if h == nil {
		t.Fatalf("expected passthrough handler")
	}
}

func TestHTTPMetricsUsesRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/boxes/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boxes/A001-Branch1", nil))

	if got := testutil.CollectAndCount(m.duration, "keepstock_http_request_duration_seconds"); got != 1 {
		t.Fatalf("expected one series, got %d", got)
	}
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	found := false
	for _, mf := range mfs {
		for _, metric := range mf.GetMetric() {
			for _, lp := range metric.GetLabel() {
				if lp.GetName() == "route" && lp.GetValue() == "/boxes/{id}" {
					found = true
				}
			}
		}
	}
	if !found {
		t.Fatalf("expected route label /boxes/{id}")
	}
}
