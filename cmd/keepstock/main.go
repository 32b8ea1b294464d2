package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/cache"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/config"
	httpserver "keepstock/infrastructure/http"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/metrics"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/seed"
	"keepstock/infrastructure/sqlite"
)

const sessionPurgeInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", slog.Any("err", err))
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		slog.Error("open db", slog.String("path", cfg.SQLitePath), slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(ctx, db, cfg.Migrations); err != nil {
		slog.Error("apply migrations", slog.Any("err", err))
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rbacSvc := rbac.New(cache.NewRbacRolesCache())
	logs := activity.NewStore(db, metrics.NewActivityMetrics(reg))
	deps := httpserver.Deps{
		DB:       db,
		Products: catalog.NewStore(db),
		Boxes:    keepstock.NewStore(db),
		Activity: logs,
		Rbac:     rbacSvc,
		Registry: reg,
		Auth:     auth.NewService(db, logs, cache.NewUserSessionCache(), cache.NewUserCache(), rbacSvc, auth.WithTTL(cfg.SessionTTL)),
	}

	if err := seed.Startup(ctx, db, seed.Stores{
		Catalog:  deps.Products,
		Boxes:    deps.Boxes,
		Activity: deps.Activity,
		Auth:     deps.Auth,
	}, cfg.SeedDemo); err != nil {
		slog.Error("seed startup data", slog.Bool("demo", cfg.SeedDemo), slog.Any("err", err))
		os.Exit(1)
	}

	server := httpserver.NewServer(cfg.Addr, deps)
	if err := server.Start(); err != nil {
		slog.Error("start server", slog.Any("err", err))
		os.Exit(1)
	}
	slog.Info("keepstock listening", slog.String("addr", cfg.Addr), slog.String("db", cfg.SQLitePath))

	go purgeSessions(ctx, deps.Auth)

	<-ctx.Done()
	if err := server.Stop(); err != nil {
		slog.Error("graceful shutdown error", slog.Any("err", err))
	}
}

func purgeSessions(ctx context.Context, authSvc *auth.Service) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := authSvc.PurgeExpired(ctx)
			if err != nil {
				slog.Error("purge expired sessions", slog.Any("err", err))
				continue
			}
			if n > 0 {
				slog.Debug("purged expired sessions", slog.Int("count", n))
			}
		}
	}
}
