package http

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	sessioncontext "keepstock/frontend/shared/context"
	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/metrics"
	"keepstock/infrastructure/rbac"
	sessioncookie "keepstock/infrastructure/session"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

//go:embed assets/*
var assets embed.FS

var ShutdownTimeout = 2 * time.Second

// Deps are the stores and services the routes are wired to.
type Deps struct {
	DB       *sqlite.DB
	Auth     *auth.Service
	Products *catalog.Store
	Boxes    *keepstock.Store
	Activity *activity.Store
	Rbac     *rbac.Rbac
	Registry *prometheus.Registry
}

// Server bundles dependencies and route wiring.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	Deps
}

// NewServer creates a new http server.
func NewServer(addr string, deps Deps) *Server {
	s := &Server{
		Addr:   addr,
		router: chi.NewRouter(),
		Deps:   deps,
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	// Secure headers first.
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-XSS-Protection", "1; mode=block")
			next.ServeHTTP(w, r)
		})
	})

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	var reg prometheus.Registerer
	if deps.Registry != nil {
		reg = deps.Registry
	}
	s.router.Use(metrics.NewHTTPMetrics(reg).Middleware)
	s.router.Use(middleware.Compress(5))
	s.router.Use(s.CSRFMiddleware)

	// Handle root requests - check auth status but don't require it.
	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := s.resolveSession(r); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, "/keepstock/dashboard", http.StatusSeeOther)
	})

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if deps.Registry != nil {
		s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{DisableCompression: true}))
	}

	// Serve assets from embedded FS.
	var assetsFS fs.FS = assets
	if sub, err := fs.Sub(assets, "assets"); err == nil {
		assetsFS = sub
	} else {
		slog.Error("assets subfs init failed; serving fallback fs", slog.Any("err", err))
	}
	s.router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assetsFS))))

	s.RegisterLoginRoutes()

	s.router.Route("/keepstock", func(r chi.Router) {
		r.Use(s.AuthenticateMiddleware)
		s.RegisterKeepstockRoutes(r)
	})

	s.server.Handler = s.router
	return s
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// AuthenticateMiddleware loads the session into the request context.
// Screens are not checked against the role; navigation hides what a role
// does not use.
func (s *Server) AuthenticateMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.resolveSession(r)
		if !ok {
			if sessioncookie.TokenFromRequest(r) != "" {
				slog.Warn("session not found or expired", slog.String("method", r.Method), slog.String("path", r.URL.Path))
				http.SetCookie(w, sessioncookie.Cookie("", 0))
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		ctx := sessioncontext.NewContextWithSession(r.Context(), session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) resolveSession(r *http.Request) (sess models.Session, ok bool) {
	token := sessioncookie.TokenFromRequest(r)
	if token == "" {
		return sess, false
	}
	found, ok, err := s.Auth.Session(r.Context(), token)
	if err != nil {
		slog.Error("load session failed", slog.String("session_id", token), slog.Any("err", err))
		return sess, false
	}
	return found, ok
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %v", err)
	}
	s.ln = nil
	return nil
}
