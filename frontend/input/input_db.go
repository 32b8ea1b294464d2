package input

import (
	"context"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

// StoreProduct puts quantity units of a catalog product into the first box of
// the branch already holding it, or into a new box of the chosen category.
// The box change and the input log commit together.
func StoreProduct(ctx context.Context, db *sqlite.DB, products *catalog.Store, boxes *keepstock.Store, logs *activity.Store, req Request) (Result, error) {
	req.SKU = strings.TrimSpace(req.SKU)
	req.Branch = strings.TrimSpace(req.Branch)
	switch {
	case req.Branch == "":
		return Result{}, apperr.Validation("branch is required")
	case req.SKU == "":
		return Result{}, apperr.Validation("select a product first")
	case req.Quantity <= 0:
		return Result{}, apperr.Validation("quantity must be greater than 0")
	case !keepstock.ValidCategory(req.Category):
		return Result{}, apperr.Validation("unknown box category %q", req.Category)
	}

	product, ok, err := products.GetInBranch(ctx, req.SKU, req.Branch)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return Result{}, apperr.Validation("product %s is not in the %s catalog", req.SKU, req.Branch)
	}

	var res Result
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		box, found, err := boxes.FindHolderTx(ctx, tx, product.SKU, req.Branch)
		if err != nil {
			return err
		}
		if !found {
			if box, err = boxes.CreateTx(ctx, tx, req.Category, req.Branch); err != nil {
				return err
			}
			res.Created = true
		}

		if err := boxes.AddItemTx(ctx, tx, box.ID, models.BoxItem{
			SKU:      product.SKU,
			Name:     product.Name,
			Quantity: req.Quantity,
			Price:    product.Price,
		}); err != nil {
			return err
		}

		if res.Log, err = logs.AppendTx(ctx, tx, models.ActivityLog{
			Username: req.Username,
			Branch:   req.Branch,
			Action:   activity.ActionInput,
			Details:  fmt.Sprintf("Added %d units of %s to box %s", req.Quantity, product.SKU, box.Number),
			SKU:      product.SKU,
			BoxID:    box.ID,
			Category: box.Category,
		}); err != nil {
			return err
		}

		res.Box, _, err = boxes.GetTx(ctx, tx, box.ID)
		return err
	})
	if err != nil {
		return Result{}, err
	}
	logs.Committed(res.Log)
	return res, nil
}

// LoadPageData searches the branch catalog and lists which boxes already
// hold each product.
func LoadPageData(ctx context.Context, products *catalog.Store, boxes *keepstock.Store, query, branch, selected string) ([]ProductRow, map[string]string, error) {
	found, err := products.Search(ctx, query, branch)
	if err != nil {
		return nil, nil, err
	}
	all, err := boxes.List(ctx, branch)
	if err != nil {
		return nil, nil, err
	}

	holders := make(map[string][]string)
	for _, box := range all {
		for _, item := range box.Items {
			key := box.Branch + "\x00" + item.SKU
			holders[key] = append(holders[key], box.Number)
		}
	}

	rows := make([]ProductRow, 0, len(found))
	for _, p := range found {
		rows = append(rows, ProductRow{
			Product:  p,
			Holders:  holders[p.Branch+"\x00"+p.SKU],
			Selected: p.SKU == selected,
		})
	}

	next := make(map[string]string, len(keepstock.Categories))
	if branch != "" {
		for _, c := range keepstock.Categories {
			if next[c], err = boxes.NextBoxNumber(ctx, c, branch); err != nil {
				return nil, nil, err
			}
		}
	}
	return rows, next, nil
}
