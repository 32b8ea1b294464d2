package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/uptrace/bun"
)

func TestApplyEmbeddedMigrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "embedded.db")
	db, err := OpenDB(dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply embedded migrations: %v", err)
	}

	for _, table := range []string{"users", "sessions", "products", "boxes", "box_items", "activity_logs"} {
		var count int64
		err = db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
			return tx.NewRaw(
				`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
			).Scan(ctx, &count)
		})
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected %s table after embedded migrations, got %d", table, count)
		}
	}
}

func TestApplyEmbeddedMigrationsTwiceIsIdempotent(t *testing.T) {
	db, err := OpenDB(MemoryPath)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	for i := 0; i < 2; i++ {
		if err := ApplyEmbeddedMigrations(context.Background(), db); err != nil {
			t.Fatalf("apply embedded migrations run %d: %v", i+1, err)
		}
	}
}

func TestMemoryDBSharesStateBetweenReadAndWrite(t *testing.T) {
	db, err := OpenDB(MemoryPath)
	if err != nil {
		t.Fatalf("open memory db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply embedded migrations: %v", err)
	}

	err = db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO boxes (id, category, seq, number, branch) VALUES ('A001-Branch1', 'A', 1, 'A001', 'Branch 1')`)
		return err
	})
	if err != nil {
		t.Fatalf("insert box: %v", err)
	}

	var count int
	if err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(*) FROM boxes`).Scan(ctx, &count)
	}); err != nil {
		t.Fatalf("count boxes: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 box visible to reads, got %d", count)
	}
}
