// Package catalog holds the per-branch product catalog.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"
	"golang.org/x/text/cases"

	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

// Store reads and writes products. Products are returned in insertion order.
type Store struct {
	db *sqlite.DB
}

func NewStore(db *sqlite.DB) *Store {
	return &Store{db: db}
}

// UpsertSummary counts the outcome of a BulkUpsert.
type UpsertSummary struct {
	Added   int
	Updated int
}

const selectProducts = `
SELECT id, sku, name, price, rack_number, branch, stock_new, created_at, updated_at
FROM products`

// List returns every product, or only those of branch when it is not empty.
func (s *Store) List(ctx context.Context, branch string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		products, err = listProducts(ctx, tx, branch)
		return err
	})
	return products, err
}

func listProducts(ctx context.Context, idb bun.IDB, branch string) ([]models.Product, error) {
	products := make([]models.Product, 0)
	q := selectProducts
	args := []any{}
	if branch != "" {
		q += ` WHERE branch = ?`
		args = append(args, branch)
	}
	q += ` ORDER BY id ASC`
	if err := idb.NewRaw(q, args...).Scan(ctx, &products); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Get returns the first product in insertion order whose sku matches exactly.
// The same sku may exist in several branches; use GetInBranch when the branch
// is known.
func (s *Store) Get(ctx context.Context, sku string) (models.Product, bool, error) {
	return s.getOne(ctx, selectProducts+` WHERE sku = ? ORDER BY id ASC LIMIT 1`, sku)
}

func (s *Store) GetInBranch(ctx context.Context, sku, branch string) (models.Product, bool, error) {
	return s.getOne(ctx, selectProducts+` WHERE sku = ? AND branch = ?`, sku, branch)
}

func (s *Store) getOne(ctx context.Context, query string, args ...any) (models.Product, bool, error) {
	var p models.Product
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(query, args...).Scan(ctx, &p)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, false, nil
	}
	if err != nil {
		return models.Product{}, false, fmt.Errorf("get product: %w", err)
	}
	return p, true, nil
}

// Search matches query against sku or name, ignoring case. An empty query
// returns List(branch) unchanged.
func (s *Store) Search(ctx context.Context, query, branch string) ([]models.Product, error) {
	products, err := s.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return products, nil
	}

	fold := cases.Fold()
	needle := fold.String(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(fold.String(p.SKU), needle) || strings.Contains(fold.String(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Count returns the number of products across all branches.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM products`).Scan(ctx, &n)
	})
	return n, err
}

// BulkUpsert replaces or appends rows keyed by (sku, branch) in one write
// transaction. Rows are validated first; an invalid row changes nothing.
func (s *Store) BulkUpsert(ctx context.Context, branch string, rows []Row) (UpsertSummary, error) {
	var summary UpsertSummary
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		summary, err = s.BulkUpsertTx(ctx, tx, branch, rows)
		return err
	})
	if err != nil {
		return UpsertSummary{}, err
	}
	return summary, nil
}

func (s *Store) BulkUpsertTx(ctx context.Context, tx bun.Tx, branch string, rows []Row) (UpsertSummary, error) {
	summary := UpsertSummary{}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return summary, validationErr("branch is required")
	}
	if err := ValidateRows(rows); err != nil {
		return summary, err
	}

	for _, row := range rows {
		var exists int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM products WHERE sku = ? AND branch = ?`, row.SKU, branch).Scan(ctx, &exists); err != nil {
			return summary, err
		}
		if exists > 0 {
			summary.Updated++
		} else {
			summary.Added++
		}

		if _, err := tx.ExecContext(ctx, `
INSERT INTO products (sku, name, price, rack_number, branch, stock_new, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
ON CONFLICT(sku, branch) DO UPDATE SET
  name = excluded.name,
  price = excluded.price,
  rack_number = excluded.rack_number,
  stock_new = excluded.stock_new,
  updated_at = CURRENT_TIMESTAMP`,
			row.SKU, row.Name, row.Price.String(), row.RackNumber, branch, row.StockNew); err != nil {
			return summary, fmt.Errorf("upsert product %s: %w", row.SKU, err)
		}
	}
	return summary, nil
}

// Branches lists every branch known from products or boxes, sorted.
func (s *Store) Branches(ctx context.Context) ([]string, error) {
	branches := make([]string, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT branch FROM products
UNION
SELECT branch FROM boxes
ORDER BY branch ASC`).Scan(ctx, &branches)
	})
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}
	return branches, nil
}
