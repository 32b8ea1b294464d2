// Package keepstock stores numbered storage boxes and the item lines in
// them. Unknown boxes and skus are ignored by the item mutations, so stale
// references from an old page never fail a request.
package keepstock

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/uptrace/bun"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

const (
	CategoryA = "A"
	CategoryB = "B"
	CategoryC = "C"

	StatusActive = "active"
	StatusEmpty  = "empty"
)

var Categories = []string{CategoryA, CategoryB, CategoryC}

var whitespace = regexp.MustCompile(`\s+`)

type Store struct {
	db *sqlite.DB
}

func NewStore(db *sqlite.DB) *Store {
	return &Store{db: db}
}

func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// BoxNumber formats a sequence as e.g. A001.
func BoxNumber(category string, seq int) string {
	return fmt.Sprintf("%s%03d", category, seq)
}

// BoxID joins the number with the branch name folded to ASCII and stripped
// of whitespace, so the id always fits a Code128 label.
func BoxID(number, branch string) string {
	suffix := whitespace.ReplaceAllString(ASCIIFold(branch), "")
	if suffix == "" {
		return number
	}
	return number + "-" + suffix
}

// ASCIIFold drops accents (Ü becomes U) and then any rune outside ASCII.
func ASCIIFold(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(func(r rune) bool { return r > unicode.MaxASCII })),
	)
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}

// List returns boxes in creation order, optionally limited to one branch.
func (s *Store) List(ctx context.Context, branch string) ([]models.Box, error) {
	var boxes []models.Box
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		boxes, err = listBoxes(ctx, tx, branch)
		return err
	})
	return boxes, err
}

func (s *Store) Get(ctx context.Context, id string) (models.Box, bool, error) {
	var (
		box models.Box
		ok  bool
	)
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		box, ok, err = getBox(ctx, tx, id)
		return err
	})
	return box, ok, err
}

func (s *Store) GetTx(ctx context.Context, tx bun.Tx, id string) (models.Box, bool, error) {
	return getBox(ctx, tx, id)
}

// NextBoxNumber previews the number Create would assign.
func (s *Store) NextBoxNumber(ctx context.Context, category, branch string) (string, error) {
	if !ValidCategory(category) {
		return "", apperr.Validation("unknown box category %q", category)
	}
	var seq int
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		seq, err = nextSeq(ctx, tx, category, branch)
		return err
	})
	if err != nil {
		return "", err
	}
	return BoxNumber(category, seq), nil
}

// Create appends an empty box numbered one past the highest number of its
// category in branch.
func (s *Store) Create(ctx context.Context, category, branch string) (models.Box, error) {
	var box models.Box
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		var err error
		box, err = s.CreateTx(ctx, tx, category, branch)
		return err
	})
	return box, err
}

func (s *Store) CreateTx(ctx context.Context, tx bun.Tx, category, branch string) (models.Box, error) {
	if !ValidCategory(category) {
		return models.Box{}, apperr.Validation("unknown box category %q", category)
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return models.Box{}, apperr.Validation("branch is required")
	}

	seq, err := nextSeq(ctx, tx, category, branch)
	if err != nil {
		return models.Box{}, err
	}
	number := BoxNumber(category, seq)
	id, err := freeBoxID(ctx, tx, BoxID(number, branch))
	if err != nil {
		return models.Box{}, err
	}
	box := models.Box{
		ID:       id,
		Category: category,
		Seq:      seq,
		Number:   number,
		Branch:   branch,
		Items:    []models.BoxItem{},
	}
	if _, err := tx.ExecContext(ctx, `
INSERT INTO boxes (id, category, seq, number, branch)
VALUES (?, ?, ?, ?, ?)`, box.ID, box.Category, box.Seq, box.Number, box.Branch); err != nil {
		return models.Box{}, fmt.Errorf("create box %s: %w", box.ID, err)
	}
	return box, nil
}

// freeBoxID returns base, or base with a -2, -3, ... suffix when another
// branch already owns it ("Branch 1" and "Branch1" both strip to Branch1).
func freeBoxID(ctx context.Context, tx bun.Tx, base string) (string, error) {
	id := base
	for n := 2; ; n++ {
		var taken int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM boxes WHERE id = ?`, id).Scan(ctx, &taken); err != nil {
			return "", fmt.Errorf("check box id %s: %w", id, err)
		}
		if taken == 0 {
			return id, nil
		}
		id = fmt.Sprintf("%s-%d", base, n)
	}
}

// FindByItemSku returns boxes holding an item whose sku contains query,
// ignoring case.
func (s *Store) FindByItemSku(ctx context.Context, query, branch string) ([]models.Box, error) {
	boxes, err := s.List(ctx, branch)
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]models.Box, 0)
	for _, box := range boxes {
		for _, item := range box.Items {
			if strings.Contains(strings.ToLower(item.SKU), needle) {
				out = append(out, box)
				break
			}
		}
	}
	return out, nil
}

// FindHolderTx returns the first box in branch holding exactly sku.
func (s *Store) FindHolderTx(ctx context.Context, tx bun.Tx, sku, branch string) (models.Box, bool, error) {
	var id string
	err := tx.NewRaw(`
SELECT b.id
FROM boxes b
JOIN box_items bi ON bi.box_id = b.id
WHERE bi.sku = ? AND b.branch = ?
ORDER BY b.rowid ASC
LIMIT 1`, sku, branch).Scan(ctx, &id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Box{}, false, nil
	}
	if err != nil {
		return models.Box{}, false, err
	}
	return getBox(ctx, tx, id)
}

// AddItem merges item into the box. An existing line keeps its name and
// price and gains the quantity.
func (s *Store) AddItem(ctx context.Context, boxID string, item models.BoxItem) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.AddItemTx(ctx, tx, boxID, item)
	})
}

func (s *Store) AddItemTx(ctx context.Context, tx bun.Tx, boxID string, item models.BoxItem) error {
	if item.Quantity <= 0 {
		return apperr.Validation("quantity must be greater than 0")
	}
	found, err := boxExists(ctx, tx, boxID)
	if err != nil || !found {
		return err
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO box_items (box_id, sku, name, quantity, price)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(box_id, sku) DO UPDATE SET
  quantity = box_items.quantity + excluded.quantity`,
		boxID, item.SKU, item.Name, item.Quantity, item.Price.String())
	if err != nil {
		return fmt.Errorf("add %s to box %s: %w", item.SKU, boxID, err)
	}
	return nil
}

// SetItemQuantity sets an absolute quantity. Zero or less removes the line.
func (s *Store) SetItemQuantity(ctx context.Context, boxID, sku string, quantity int64) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.SetItemQuantityTx(ctx, tx, boxID, sku, quantity)
	})
}

func (s *Store) SetItemQuantityTx(ctx context.Context, tx bun.Tx, boxID, sku string, quantity int64) error {
	if quantity <= 0 {
		return s.RemoveItemTx(ctx, tx, boxID, sku)
	}
	if _, err := tx.ExecContext(ctx, `UPDATE box_items SET quantity = ? WHERE box_id = ? AND sku = ?`, quantity, boxID, sku); err != nil {
		return fmt.Errorf("set quantity of %s in box %s: %w", sku, boxID, err)
	}
	return nil
}

func (s *Store) RemoveItem(ctx context.Context, boxID, sku string) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return s.RemoveItemTx(ctx, tx, boxID, sku)
	})
}

func (s *Store) RemoveItemTx(ctx context.Context, tx bun.Tx, boxID, sku string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM box_items WHERE box_id = ? AND sku = ?`, boxID, sku); err != nil {
		return fmt.Errorf("remove %s from box %s: %w", sku, boxID, err)
	}
	return nil
}

// IsEmpty reports whether the box holds nothing. Unknown boxes are empty.
func (s *Store) IsEmpty(ctx context.Context, boxID string) (bool, error) {
	box, ok, err := s.Get(ctx, boxID)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return Status(box) == StatusEmpty, nil
}

func Status(box models.Box) string {
	if len(box.Items) == 0 || box.TotalQuantity() == 0 {
		return StatusEmpty
	}
	return StatusActive
}

// Filter narrows boxes for the management and print screens. query matches
// the box number, an item sku or an item name; category is A, B, C or all.
func Filter(boxes []models.Box, query, category string) []models.Box {
	needle := strings.ToLower(strings.TrimSpace(query))
	category = strings.TrimSpace(category)
	out := make([]models.Box, 0, len(boxes))
	for _, box := range boxes {
		if category != "" && !strings.EqualFold(category, "all") && box.Category != category {
			continue
		}
		if needle == "" || matchesBox(box, needle) {
			out = append(out, box)
		}
	}
	return out
}

func matchesBox(box models.Box, needle string) bool {
	if strings.Contains(strings.ToLower(box.Number), needle) {
		return true
	}
	for _, item := range box.Items {
		if strings.Contains(strings.ToLower(item.SKU), needle) || strings.Contains(strings.ToLower(item.Name), needle) {
			return true
		}
	}
	return false
}

func nextSeq(ctx context.Context, idb bun.IDB, category, branch string) (int, error) {
	var maxSeq int
	if err := idb.NewRaw(`
SELECT COALESCE(MAX(seq), 0)
FROM boxes
WHERE category = ? AND branch = ?`, category, branch).Scan(ctx, &maxSeq); err != nil {
		return 0, fmt.Errorf("next box number: %w", err)
	}
	return maxSeq + 1, nil
}

func boxExists(ctx context.Context, idb bun.IDB, id string) (bool, error) {
	var n int
	if err := idb.NewRaw(`SELECT COUNT(1) FROM boxes WHERE id = ?`, id).Scan(ctx, &n); err != nil {
		return false, err
	}
	return n > 0, nil
}

func getBox(ctx context.Context, idb bun.IDB, id string) (models.Box, bool, error) {
	boxes, err := queryBoxes(ctx, idb, `WHERE b.id = ?`, id)
	if err != nil {
		return models.Box{}, false, err
	}
	if len(boxes) == 0 {
		return models.Box{}, false, nil
	}
	return boxes[0], true, nil
}

func listBoxes(ctx context.Context, idb bun.IDB, branch string) ([]models.Box, error) {
	if branch == "" {
		return queryBoxes(ctx, idb, "")
	}
	return queryBoxes(ctx, idb, `WHERE b.branch = ?`, branch)
}

func queryBoxes(ctx context.Context, idb bun.IDB, where string, args ...any) ([]models.Box, error) {
	boxes := make([]models.Box, 0)
	if err := idb.NewRaw(`
SELECT b.id, b.category, b.seq, b.number, b.branch
FROM boxes b
`+where+`
ORDER BY b.rowid ASC`, args...).Scan(ctx, &boxes); err != nil {
		return nil, fmt.Errorf("list boxes: %w", err)
	}
	if len(boxes) == 0 {
		return boxes, nil
	}

	items := make([]models.BoxItem, 0)
	if err := idb.NewRaw(`
SELECT bi.id, bi.box_id, bi.sku, bi.name, bi.quantity, bi.price
FROM box_items bi
JOIN boxes b ON b.id = bi.box_id
`+where+`
ORDER BY bi.id ASC`, args...).Scan(ctx, &items); err != nil {
		return nil, fmt.Errorf("list box items: %w", err)
	}

	byBox := make(map[string][]models.BoxItem, len(boxes))
	for _, item := range items {
		byBox[item.BoxID] = append(byBox[item.BoxID], item)
	}
	for i := range boxes {
		boxes[i].Items = byBox[boxes[i].ID]
		if boxes[i].Items == nil {
			boxes[i].Items = []models.BoxItem{}
		}
	}
	return boxes, nil
}
