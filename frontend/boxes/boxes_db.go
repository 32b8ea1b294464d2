package boxes

import (
	"context"

	"keepstock/infrastructure/keepstock"
)

// LoadRows lists the branch boxes matching query and category.
func LoadRows(ctx context.Context, store *keepstock.Store, branch, query, category string) ([]BoxRow, error) {
	all, err := store.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	matched := keepstock.Filter(all, query, category)
	rows := make([]BoxRow, 0, len(matched))
	for _, box := range matched {
		rows = append(rows, BoxRow{
			ID:            box.ID,
			Number:        box.Number,
			Category:      box.Category,
			Branch:        box.Branch,
			SKUCount:      len(box.Items),
			TotalQuantity: box.TotalQuantity(),
			Status:        keepstock.Status(box),
		})
	}
	return rows, nil
}
