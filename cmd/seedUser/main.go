// Command seedUser prepares a file database for local development: it
// applies migrations, loads the demo data set and upserts one account
// taken from KEEPSTOCK_USER*.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/cache"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/config"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/seed"
	"keepstock/infrastructure/sqlite"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("seed user", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	migrationsDir, err := resolveMigrationsDir()
	if err != nil {
		return fmt.Errorf("resolve migrations dir: %w", err)
	}

	dbPath := cfg.SQLitePath
	if dbPath == sqlite.MemoryPath {
		dbPath = defaultDBPath(migrationsDir)
	}
	db, err := sqlite.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := sqlite.ApplyMigrations(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	rbacSvc := rbac.New(cache.NewRbacRolesCache())
	logs := activity.NewStore(db, nil)
	authSvc := auth.NewService(db, logs, cache.NewUserSessionCache(), cache.NewUserCache(), rbacSvc)

	err = seed.Startup(ctx, db, seed.Stores{
		Catalog:  catalog.NewStore(db),
		Boxes:    keepstock.NewStore(db),
		Activity: logs,
		Auth:     authSvc,
	}, cfg.SeedDemo)
	if err != nil {
		return err
	}
	fmt.Printf("seeded staff accounts (demo data: %t) into %s\n", cfg.SeedDemo, dbPath)

	c, ok := credentialFromEnv()
	if !ok {
		return nil
	}
	if err := authSvc.UpsertUser(ctx, c); err != nil {
		return fmt.Errorf("upsert %s: %w", c.Username, err)
	}
	fmt.Printf("seeded user (username=%s role=%s)\n", c.Username, c.Role)
	return nil
}

// credentialFromEnv reads KEEPSTOCK_USER, _PASSWORD, _ROLE (default admin),
// _BRANCH and _NAME. ok is false when no username is set.
func credentialFromEnv() (auth.Credential, bool) {
	username := strings.TrimSpace(os.Getenv("KEEPSTOCK_USER"))
	if username == "" {
		return auth.Credential{}, false
	}
	branch := strings.TrimSpace(os.Getenv("KEEPSTOCK_USER_BRANCH"))
	role := getenv("KEEPSTOCK_USER_ROLE", rbac.RoleAdmin)
	if os.Getenv("KEEPSTOCK_USER_ROLE") == "" && branch != "" {
		role = rbac.RoleStore
	}
	return auth.Credential{
		Username: username,
		Name:     getenv("KEEPSTOCK_USER_NAME", username),
		Password: os.Getenv("KEEPSTOCK_USER_PASSWORD"),
		Role:     role,
		Branch:   branch,
	}, true
}

func defaultDBPath(migrationsDir string) string {
	return filepath.Join(filepath.Dir(filepath.Dir(filepath.Dir(migrationsDir))), "keepstock.db")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func resolveMigrationsDir() (string, error) {
	candidates := []string{
		filepath.Join("infrastructure", "sqlite", "migrations"),
		filepath.Join("..", "..", "infrastructure", "sqlite", "migrations"),
	}

	if _, file, _, ok := runtime.Caller(0); ok {
		candidates = append(candidates, filepath.Join(filepath.Dir(file), "..", "..", "infrastructure", "sqlite", "migrations"))
	}

	tried := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		absPath, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		tried = append(tried, absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			return absPath, nil
		}
	}

	return "", fmt.Errorf("migrations dir not found; tried: %s", strings.Join(tried, ", "))
}
