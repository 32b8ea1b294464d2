package activity

import (
	"encoding/csv"
	"io"

	"keepstock/models"
)

var csvHeader = []string{"timestamp", "username", "branch", "action", "details", "sku", "box_id", "category"}

// WriteCSV writes logs in the order given, timestamps as RFC 3339 UTC.
func WriteCSV(w io.Writer, logs []models.ActivityLog) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, l := range logs {
		record := []string{
			l.Timestamp.UTC().Format("2006-01-02T15:04:05Z07:00"),
			l.Username,
			l.Branch,
			l.Action,
			l.Details,
			l.SKU,
			l.BoxID,
			l.Category,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
