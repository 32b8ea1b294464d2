package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// ActivityMetrics counts appended activity log entries.
type ActivityMetrics struct {
	appended *prometheus.CounterVec
}

// NewActivityMetrics registers the activity counters on the provided registerer.
func NewActivityMetrics(reg prometheus.Registerer) *ActivityMetrics {
	if reg == nil {
		return &ActivityMetrics{}
	}
	appended := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "keepstock",
		Name:      "activity_appended_total",
		Help:      "Activity log entries appended, by action.",
	}, []string{"action", "branch"})
	reg.MustRegister(appended)
	return &ActivityMetrics{appended: appended}
}

func (m *ActivityMetrics) IncAppended(action, branch string) {
	if m == nil || m.appended == nil {
		return
	}
	m.appended.WithLabelValues(normalizeLabel(action), normalizeLabel(branch)).Inc()
}

// HTTPMetrics observes request latency per chi route pattern.
type HTTPMetrics struct {
	duration *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		return &HTTPMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "keepstock",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
	reg.MustRegister(duration)
	return &HTTPMetrics{duration: duration}
}

func (m *HTTPMetrics) Middleware(next http.Handler) http.Handler {
	if m == nil || m.duration == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.duration.WithLabelValues(r.Method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
	})
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
