package catalogupload

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

// ImportCSV parses the whole file before touching the catalog, then upserts
// every row and records the upload in one transaction. Any bad row rejects
// the file.
func ImportCSV(ctx context.Context, db *sqlite.DB, products *catalog.Store, logs *activity.Store, req Request, reader io.Reader) (Result, error) {
	req.Branch = strings.TrimSpace(req.Branch)
	if req.Branch == "" {
		return Result{}, apperr.Validation("branch is required")
	}
	rows, err := catalog.ParseCSV(reader)
	if err != nil {
		return Result{}, err
	}
	if len(rows) == 0 {
		return Result{}, apperr.Validation("the file has no product rows")
	}

	res := Result{Rows: len(rows)}
	var logged models.ActivityLog
	err = db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		if res.Summary, err = products.BulkUpsertTx(ctx, tx, req.Branch, rows); err != nil {
			return err
		}
		details := fmt.Sprintf("Uploaded %d products to %s (%d added, %d updated)", len(rows), req.Branch, res.Summary.Added, res.Summary.Updated)
		if name := strings.TrimSpace(req.Filename); name != "" {
			details += " from " + name
		}
		logged, err = logs.AppendTx(ctx, tx, models.ActivityLog{
			Username: req.Username,
			Branch:   req.Branch,
			Action:   activity.ActionCSVUpload,
			Details:  details,
		})
		return err
	})
	if err != nil {
		return Result{}, err
	}
	logs.Committed(logged)
	return res, nil
}
