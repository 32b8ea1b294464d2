package keepstock

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlite.OpenDB(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.ApplyEmbeddedMigrations(context.Background(), db))
	return NewStore(db)
}

func item(sku string, qty int64) models.BoxItem {
	return models.BoxItem{SKU: sku, Name: "Product " + sku, Quantity: qty, Price: decimal.NewFromInt(1000)}
}

func TestCreateNumbersSequentiallyPerCategoryAndBranch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	create := func(category, branch string) models.Box {
		t.Helper()
		box, err := store.Create(ctx, category, branch)
		require.NoError(t, err)
		return box
	}

	require.Equal(t, "A001", create("A", "Branch 1").Number)
	require.Equal(t, "A002", create("A", "Branch 1").Number)
	require.Equal(t, "B001", create("B", "Branch 1").Number)
	require.Equal(t, "A001", create("A", "Branch 2").Number)

	third := create("A", "Branch 1")
	require.Equal(t, "A003", third.Number)
	require.Equal(t, "A003-Branch1", third.ID)
	require.Empty(t, third.Items)

	next, err := store.NextBoxNumber(ctx, "A", "Branch 1")
	require.NoError(t, err)
	require.Equal(t, "A004", next)

	next, err = store.NextBoxNumber(ctx, "C", "Branch 1")
	require.NoError(t, err)
	require.Equal(t, "C001", next)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	store := newTestStore(t)
	_, err := store.Create(context.Background(), "D", "Branch 1")
	require.True(t, apperr.IsValidation(err))
}

func TestListKeepsCreationOrderAndBranchScope(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, c := range []string{"C", "A", "B"} {
		_, err := store.Create(ctx, c, "Branch 1")
		require.NoError(t, err)
	}
	_, err := store.Create(ctx, "A", "Branch 2")
	require.NoError(t, err)

	boxes, err := store.List(ctx, "Branch 1")
	require.NoError(t, err)
	require.Len(t, boxes, 3)
	require.Equal(t, []string{"C001", "A001", "B001"}, []string{boxes[0].Number, boxes[1].Number, boxes[2].Number})

	all, err := store.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestAddItemMergesSameSku(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	box, err := store.Create(ctx, "A", "Branch 1")
	require.NoError(t, err)

	require.NoError(t, store.AddItem(ctx, box.ID, item("SKU001", 3)))
	second := item("SKU001", 4)
	second.Name = "Renamed"
	second.Price = decimal.NewFromInt(99)
	require.NoError(t, store.AddItem(ctx, box.ID, second))
	require.NoError(t, store.AddItem(ctx, box.ID, item("SKU002", 1)))

	got, ok, err := store.Get(ctx, box.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got.Items, 2)
	require.Equal(t, "SKU001", got.Items[0].SKU)
	require.Equal(t, int64(7), got.Items[0].Quantity)
	require.Equal(t, "Product SKU001", got.Items[0].Name, "existing name wins")
	require.True(t, decimal.NewFromInt(1000).Equal(got.Items[0].Price), "existing price wins")
	require.Equal(t, int64(8), got.TotalQuantity())
}

func TestUnknownBoxOrSkuIsNoOp(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddItem(ctx, "Z999-Nowhere", item("SKU001", 1)))
	require.NoError(t, store.SetItemQuantity(ctx, "Z999-Nowhere", "SKU001", 4))
	require.NoError(t, store.RemoveItem(ctx, "Z999-Nowhere", "SKU001"))

	box, err := store.Create(ctx, "A", "Branch 1")
	require.NoError(t, err)
	require.NoError(t, store.SetItemQuantity(ctx, box.ID, "SKU404", 4))
	require.NoError(t, store.RemoveItem(ctx, box.ID, "SKU404"))

	got, ok, err := store.Get(ctx, box.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Empty(t, got.Items, "set on an absent sku must not create it")

	_, ok, err = store.Get(ctx, "Z999-Nowhere")
	require.NoError(t, err)
	require.False(t, ok)

	empty, err := store.IsEmpty(ctx, "Z999-Nowhere")
	require.NoError(t, err)
	require.True(t, empty)
}

func TestSetItemQuantityZeroRemovesItem(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	box, err := store.Create(ctx, "B", "Branch 1")
	require.NoError(t, err)
	require.NoError(t, store.AddItem(ctx, box.ID, item("SKU001", 5)))
	require.NoError(t, store.AddItem(ctx, box.ID, item("SKU002", 5)))

	require.NoError(t, store.SetItemQuantity(ctx, box.ID, "SKU001", 0))
	require.NoError(t, store.SetItemQuantity(ctx, box.ID, "SKU002", -3))

	got, _, err := store.Get(ctx, box.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
	require.Equal(t, StatusEmpty, Status(got))
}

func TestRemoveItemIgnoresQuantity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	box, err := store.Create(ctx, "C", "Branch 1")
	require.NoError(t, err)
	require.NoError(t, store.AddItem(ctx, box.ID, item("SKU001", 50)))

	require.NoError(t, store.RemoveItem(ctx, box.ID, "SKU001"))
	empty, err := store.IsEmpty(ctx, box.ID)
	require.NoError(t, err)
	require.True(t, empty)
}

func TestInputThenRefillScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	box, err := store.Create(ctx, "A", "Branch 1")
	require.NoError(t, err)
	require.Equal(t, "A001", box.Number)

	require.NoError(t, store.AddItem(ctx, box.ID, models.BoxItem{SKU: "SKU001", Name: "Product One", Quantity: 5, Price: decimal.NewFromInt(15000)}))
	require.NoError(t, store.SetItemQuantity(ctx, box.ID, "SKU001", 2))

	got, _, err := store.Get(ctx, box.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	require.Equal(t, int64(2), got.Items[0].Quantity)
	require.Equal(t, StatusActive, Status(got))

	require.NoError(t, store.SetItemQuantity(ctx, box.ID, "SKU001", 0))
	got, _, err = store.Get(ctx, box.ID)
	require.NoError(t, err)
	require.Empty(t, got.Items)
}

func TestFindByItemSkuMatchesSubstringIgnoringCase(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return store.SeedTx(ctx, tx)
	}))
	other, err := store.Create(ctx, "A", "Branch 2")
	require.NoError(t, err)
	require.NoError(t, store.AddItem(ctx, other.ID, item("SKU001", 1)))

	boxes, err := store.FindByItemSku(ctx, "sku00", "Branch 1")
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	boxes, err = store.FindByItemSku(ctx, "sku001", "")
	require.NoError(t, err)
	require.Len(t, boxes, 2)
	require.Equal(t, "A001-B1", boxes[0].ID)
	require.Equal(t, other.ID, boxes[1].ID)

	boxes, err = store.FindByItemSku(ctx, "SKU003", "Branch 2")
	require.NoError(t, err)
	require.Empty(t, boxes)
}

func TestFindHolderTxMatchesExactSkuInBranch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if err := store.SeedTx(ctx, tx); err != nil {
			return err
		}
		box, ok, err := store.FindHolderTx(ctx, tx, "SKU003", "Branch 1")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "B001-B1", box.ID)

		_, ok, err = store.FindHolderTx(ctx, tx, "SKU00", "Branch 1")
		require.NoError(t, err)
		require.False(t, ok)
		return nil
	}))
}

func TestSeedContinuesNumbering(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return store.SeedTx(ctx, tx)
	}))

	box, err := store.Create(ctx, "A", "Branch 1")
	require.NoError(t, err)
	require.Equal(t, "A002", box.Number)

	seeded, ok, err := store.Get(ctx, "A001-B1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, int64(35), seeded.TotalQuantity())
}

func TestFilter(t *testing.T) {
	boxes := []models.Box{
		{Number: "A001", Category: "A", Items: []models.BoxItem{{SKU: "SKU001", Name: "Teh Botol"}}},
		{Number: "B001", Category: "B", Items: []models.BoxItem{{SKU: "SKU777", Name: "Kopi"}}},
		{Number: "B002", Category: "B"},
	}

	require.Len(t, Filter(boxes, "", "all"), 3)
	require.Len(t, Filter(boxes, "", ""), 3)
	require.Len(t, Filter(boxes, "", "B"), 2)
	require.Equal(t, "A001", Filter(boxes, "teh", "all")[0].Number)
	require.Equal(t, "B001", Filter(boxes, "sku777", "")[0].Number)
	require.Equal(t, "B002", Filter(boxes, "b002", "B")[0].Number)
	require.Empty(t, Filter(boxes, "kopi", "A"))
}

func TestBoxIDStripsWhitespace(t *testing.T) {
	require.Equal(t, "A001-MainStreet2", BoxID("A001", "Main  Street\t2"))
	require.Equal(t, "C010", BoxNumber("C", 10))
}

func TestCreateKeepsIDsUniqueAcrossLookalikeBranches(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	spaced, err := store.Create(ctx, "A", "Branch 1")
	require.NoError(t, err)
	joined, err := store.Create(ctx, "A", "Branch1")
	require.NoError(t, err)
	require.Equal(t, "A001-Branch1", spaced.ID)
	require.Equal(t, "A001-Branch1-2", joined.ID)
	require.Equal(t, "A001", joined.Number)

	got, ok, err := store.Get(ctx, joined.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Branch1", got.Branch)
}

func TestCreateAfterSeedDoesNotCollideWithDemoIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return store.SeedTx(ctx, tx)
	}))

	box, err := store.Create(ctx, "A", "B1")
	require.NoError(t, err)
	require.Equal(t, "A001", box.Number)
	require.Equal(t, "A001-B1-2", box.ID)
	require.Equal(t, "B1", box.Branch)

	seeded, ok, err := store.Get(ctx, "A001-B1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Branch 1", seeded.Branch)
}

func TestBoxIDFoldsBranchToASCII(t *testing.T) {
	require.Equal(t, "A001-CabangDepokU", BoxID("A001", "Cabang Depok Ü"))
	require.Equal(t, "B002-Jakarta", BoxID("B002", "Jakarta 東京"))
	require.Equal(t, "C003", BoxID("C003", "東京"))

	store := newTestStore(t)
	box, err := store.Create(context.Background(), "A", "Cabang Depok Ü")
	require.NoError(t, err)
	require.Equal(t, "A001-CabangDepokU", box.ID)
	require.Equal(t, "Cabang Depok Ü", box.Branch)
}
