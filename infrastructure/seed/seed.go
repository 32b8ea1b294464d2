// Package seed loads the demo data set: catalog, boxes, history and the
// static staff accounts.
package seed

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/sqlite"
)

type Stores struct {
	Catalog  *catalog.Store
	Boxes    *keepstock.Store
	Activity *activity.Store
	Auth     *auth.Service
}

// Demo seeds the staff accounts and the demo data set.
func Demo(ctx context.Context, db *sqlite.DB, s Stores) error {
	return Startup(ctx, db, s, true)
}

// Startup always seeds the static staff accounts, since they are the only
// way to sign in, and adds catalog, boxes and history when demo is set.
// Everything runs in one write transaction. Each step skips itself when
// its table already holds data, so Startup is safe on restart.
func Startup(ctx context.Context, db *sqlite.DB, s Stores, demo bool) error {
	return db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if s.Auth != nil {
			if err := s.Auth.SeedTx(ctx, tx, auth.StaticCredentials); err != nil {
				return fmt.Errorf("seed users: %w", err)
			}
		}
		if !demo {
			return nil
		}
		if err := s.Catalog.SeedTx(ctx, tx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
		if err := s.Boxes.SeedTx(ctx, tx); err != nil {
			return fmt.Errorf("seed boxes: %w", err)
		}
		if err := s.Activity.SeedTx(ctx, tx); err != nil {
			return fmt.Errorf("seed activity: %w", err)
		}
		return nil
	})
}
