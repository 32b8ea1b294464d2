// Package activity is the append-only history of keepstock actions.
//
// Entries are stamped by the store and listed newest first. Mutating flows
// append inside their own write transaction through AppendTx, so a box
// change and its log entry commit together, then report the entry through
// Committed.
package activity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/metrics"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

const (
	ActionInput     = "input"
	ActionRefill    = "refill"
	ActionUpdate    = "update"
	ActionLogin     = "login"
	ActionLogout    = "logout"
	ActionCSVUpload = "csv_upload"
)

var Actions = []string{ActionInput, ActionRefill, ActionUpdate, ActionLogin, ActionLogout, ActionCSVUpload}

type Store struct {
	db      *sqlite.DB
	metrics *metrics.ActivityMetrics
	now     func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now as the source of entry timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(db *sqlite.DB, m *metrics.ActivityMetrics, opts ...Option) *Store {
	s := &Store{db: db, metrics: m, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Filter selects entries by exact equality on every non-empty field.
type Filter struct {
	Username string
	Branch   string
	Action   string
	SKU      string
	BoxID    string
	Category string
}

// Criteria drives the activity log screen.
type Criteria struct {
	Branch string
	Text   string // matched against details or sku, ignoring case
	Action string
	Start  time.Time
	End    time.Time
}

func validAction(action string) bool {
	for _, a := range Actions {
		if a == action {
			return true
		}
	}
	return false
}

func (s *Store) Append(ctx context.Context, entry models.ActivityLog) (models.ActivityLog, error) {
	var out models.ActivityLog
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		out, err = s.AppendTx(ctx, tx, entry)
		return err
	})
	if err != nil {
		return models.ActivityLog{}, err
	}
	s.Committed(out)
	return out, nil
}

// AppendTx assigns id and timestamp and inserts the entry in tx. Callers
// report the entry through Committed once tx has committed.
func (s *Store) AppendTx(ctx context.Context, tx bun.Tx, entry models.ActivityLog) (models.ActivityLog, error) {
	if !validAction(entry.Action) {
		return models.ActivityLog{}, apperr.Validation("unknown activity action %q", entry.Action)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("activity id: %w", err)
	}
	ts := s.now().UTC()
	entry.Seq = 0
	entry.ID = id.String()
	entry.Timestamp = ts
	entry.UnixNano = ts.UnixNano()

	if _, err := tx.NewInsert().Model(&entry).Exec(ctx); err != nil {
		return models.ActivityLog{}, fmt.Errorf("append activity: %w", err)
	}
	return entry, nil
}

// Committed counts entries whose transaction has committed.
func (s *Store) Committed(entries ...models.ActivityLog) {
	for _, e := range entries {
		s.metrics.IncAppended(e.Action, e.Branch)
	}
}

// List returns matching entries newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]models.ActivityLog, error) {
	return s.query(ctx, filter.conds(), 0)
}

// Recent returns at most limit entries of branch, newest first.
func (s *Store) Recent(ctx context.Context, branch string, limit int) ([]models.ActivityLog, error) {
	return s.query(ctx, Filter{Branch: branch}.conds(), limit)
}

// ListByDateRange returns entries stamped within [start, end].
func (s *Store) ListByDateRange(ctx context.Context, start, end time.Time, branch string) ([]models.ActivityLog, error) {
	conds := Filter{Branch: branch}.conds()
	conds = append(conds,
		cond{"al.unix_nano >= ?", []any{start.UTC().UnixNano()}},
		cond{"al.unix_nano <= ?", []any{end.UTC().UnixNano()}},
	)
	return s.query(ctx, conds, 0)
}

// Search applies the activity screen criteria. Zero Start or End leaves that
// side open.
func (s *Store) Search(ctx context.Context, c Criteria) ([]models.ActivityLog, error) {
	conds := Filter{Branch: c.Branch, Action: c.Action}.conds()
	if text := strings.TrimSpace(c.Text); text != "" {
		like := "%" + escapeLike(strings.ToLower(text)) + "%"
		conds = append(conds, cond{
			`(LOWER(al.details) LIKE ? ESCAPE '\' OR LOWER(COALESCE(al.sku, '')) LIKE ? ESCAPE '\')`,
			[]any{like, like},
		})
	}
	if !c.Start.IsZero() {
		conds = append(conds, cond{"al.unix_nano >= ?", []any{c.Start.UTC().UnixNano()}})
	}
	if !c.End.IsZero() {
		conds = append(conds, cond{"al.unix_nano <= ?", []any{c.End.UTC().UnixNano()}})
	}
	return s.query(ctx, conds, 0)
}

type cond struct {
	expr string
	args []any
}

func (f Filter) conds() []cond {
	out := make([]cond, 0, 6)
	add := func(column, value string) {
		if value != "" {
			out = append(out, cond{column + " = ?", []any{value}})
		}
	}
	add("al.username", f.Username)
	add("al.branch", f.Branch)
	add("al.action", f.Action)
	add("al.sku", f.SKU)
	add("al.box_id", f.BoxID)
	add("al.category", f.Category)
	return out
}

func (s *Store) query(ctx context.Context, conds []cond, limit int) ([]models.ActivityLog, error) {
	logs := make([]models.ActivityLog, 0)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		q := tx.NewSelect().Model(&logs)
		for _, c := range conds {
			q = q.Where(c.expr, c.args...)
		}
		q = q.OrderExpr("al.seq DESC")
		if limit > 0 {
			q = q.Limit(limit)
		}
		return q.Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	for i := range logs {
		logs[i].Timestamp = time.Unix(0, logs[i].UnixNano).UTC()
	}
	return logs, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
