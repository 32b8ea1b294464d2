package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

const DemoBranch = "Branch 1"

// DemoRows is the starting catalog of DemoBranch.
func DemoRows() []Row {
	return []Row{
		{SKU: "SKU001", Name: "Product One", Price: decimal.NewFromInt(15000), RackNumber: "R101", StockNew: 100},
		{SKU: "SKU002", Name: "Product Two", Price: decimal.NewFromInt(25000), RackNumber: "R102", StockNew: 50},
		{SKU: "SKU003", Name: "Product Three", Price: decimal.NewFromInt(10000), RackNumber: "R201", StockNew: 75},
	}
}

// SeedTx loads DemoRows when the catalog is empty.
func (s *Store) SeedTx(ctx context.Context, tx bun.Tx) error {
	var n int
	if err := tx.NewRaw(`SELECT COUNT(1) FROM products`).Scan(ctx, &n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	_, err := s.BulkUpsertTx(ctx, tx, DemoBranch, DemoRows())
	return err
}
