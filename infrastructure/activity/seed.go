package activity

import (
	"context"
	"time"

	"github.com/uptrace/bun"

	"keepstock/models"
)

// SeedTx records the demo history of Branch 1 when the log is empty.
func (s *Store) SeedTx(ctx context.Context, tx bun.Tx) error {
	var n int
	if err := tx.NewRaw(`SELECT COUNT(1) FROM activity_logs`).Scan(ctx, &n); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := s.now()
	seeds := []struct {
		age   time.Duration
		entry models.ActivityLog
	}{
		{2 * time.Hour, models.ActivityLog{
			Username: "store1", Branch: "Branch 1", Action: ActionRefill,
			Details: "Removed 5 units of SKU003 from box B001", SKU: "SKU003", BoxID: "B001-B1", Category: "B",
		}},
		{time.Hour, models.ActivityLog{
			Username: "store1", Branch: "Branch 1", Action: ActionInput,
			Details: "Added 25 units of SKU001 to box A001", SKU: "SKU001", BoxID: "A001-B1", Category: "A",
		}},
	}
	for _, seed := range seeds {
		stamped := NewStore(s.db, nil, WithClock(func() time.Time { return now.Add(-seed.age) }))
		if _, err := stamped.AppendTx(ctx, tx, seed.entry); err != nil {
			return err
		}
	}
	return nil
}
