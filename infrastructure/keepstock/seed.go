package keepstock

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"

	"keepstock/models"
)

// DemoBoxes are the starting boxes of Branch 1. Their ids predate the
// <number>-<branch> scheme and are kept as printed on the physical labels.
func DemoBoxes() []models.Box {
	return []models.Box{
		{
			ID: "A001-B1", Category: CategoryA, Seq: 1, Number: "A001", Branch: "Branch 1",
			Items: []models.BoxItem{
				{SKU: "SKU001", Name: "Product One", Quantity: 25, Price: decimal.NewFromInt(15000)},
				{SKU: "SKU002", Name: "Product Two", Quantity: 10, Price: decimal.NewFromInt(25000)},
			},
		},
		{
			ID: "B001-B1", Category: CategoryB, Seq: 1, Number: "B001", Branch: "Branch 1",
			Items: []models.BoxItem{
				{SKU: "SKU003", Name: "Product Three", Quantity: 15, Price: decimal.NewFromInt(10000)},
			},
		},
	}
}

// SeedTx inserts DemoBoxes when no box exists yet.
func (s *Store) SeedTx(ctx context.Context, tx bun.Tx) error {
	var n int
	if err := tx.NewRaw(`SELECT COUNT(1) FROM boxes`).Scan(ctx, &n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	for _, box := range DemoBoxes() {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO boxes (id, category, seq, number, branch)
VALUES (?, ?, ?, ?, ?)`, box.ID, box.Category, box.Seq, box.Number, box.Branch); err != nil {
			return err
		}
		for _, item := range box.Items {
			if err := s.AddItemTx(ctx, tx, box.ID, item); err != nil {
				return err
			}
		}
	}
	return nil
}
