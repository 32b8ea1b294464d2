package refill

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

// TakeFromBox moves quantity units of sku from a box to the sales floor.
// The quantity must lie within 1 and what the box holds. A line that reaches
// zero is removed. The box change and the refill log commit together.
func TakeFromBox(ctx context.Context, db *sqlite.DB, boxes *keepstock.Store, logs *activity.Store, req Request) (Result, error) {
	req.BoxID = strings.TrimSpace(req.BoxID)
	req.SKU = strings.TrimSpace(req.SKU)
	if req.BoxID == "" || req.SKU == "" {
		return Result{}, apperr.Validation("select a box and an item first")
	}
	if req.Quantity <= 0 {
		return Result{}, apperr.Validation("quantity must be greater than 0")
	}

	var res Result
	err := db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		box, ok, err := boxes.GetTx(ctx, tx, req.BoxID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("box %s no longer exists", req.BoxID)
		}
		var line *models.BoxItem
		for i := range box.Items {
			if box.Items[i].SKU == req.SKU {
				line = &box.Items[i]
				break
			}
		}
		if line == nil {
			return apperr.Validation("box %s does not hold %s", box.Number, req.SKU)
		}
		if req.Quantity > line.Quantity {
			return apperr.Validation("quantity must be between 1 and %d", line.Quantity)
		}

		res.Remaining = line.Quantity - req.Quantity
		if err := boxes.SetItemQuantityTx(ctx, tx, box.ID, line.SKU, res.Remaining); err != nil {
			return err
		}
		res.Log, err = logs.AppendTx(ctx, tx, models.ActivityLog{
			Username: req.Username,
			Branch:   box.Branch,
			Action:   activity.ActionRefill,
			Details:  fmt.Sprintf("Refilled %d units of %s from box %s", req.Quantity, line.SKU, box.Number),
			SKU:      line.SKU,
			BoxID:    box.ID,
			Category: box.Category,
		})
		return err
	})
	if err != nil {
		return Result{}, err
	}
	logs.Committed(res.Log)
	return res, nil
}
