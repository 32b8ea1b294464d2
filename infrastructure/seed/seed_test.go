package seed

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/argon"
	"keepstock/infrastructure/auth"
	"keepstock/infrastructure/cache"
	"keepstock/infrastructure/catalog"
	"keepstock/infrastructure/keepstock"
	"keepstock/infrastructure/metrics"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/sqlite"
)

func newTestStores(t *testing.T) (*sqlite.DB, Stores) {
	t.Helper()
	db, err := sqlite.OpenDB(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.ApplyEmbeddedMigrations(context.Background(), db))

	logs := activity.NewStore(db, metrics.NewActivityMetrics(prometheus.NewRegistry()))
	return db, Stores{
		Catalog:  catalog.NewStore(db),
		Boxes:    keepstock.NewStore(db),
		Activity: logs,
		Auth: auth.NewService(db, logs, cache.NewUserSessionCache(), cache.NewUserCache(),
			rbac.New(cache.NewRbacRolesCache()), auth.WithHashParams(argon.FastParams)),
	}
}

func TestDemoSeedsEveryStoreOnce(t *testing.T) {
	ctx := context.Background()
	db, stores := newTestStores(t)
	logs := stores.Activity

	for i := 0; i < 2; i++ {
		require.NoError(t, Demo(ctx, db, stores))
	}

	n, err := stores.Catalog.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	boxes, err := stores.Boxes.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, boxes, 2)

	entries, err := logs.List(ctx, activity.Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	_, _, ok, err := stores.Auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestStartupWithoutDemoStillSeedsAccounts(t *testing.T) {
	ctx := context.Background()
	db, stores := newTestStores(t)

	require.NoError(t, Startup(ctx, db, stores, false))

	n, err := stores.Catalog.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)

	boxes, err := stores.Boxes.List(ctx, "")
	require.NoError(t, err)
	require.Empty(t, boxes)

	user, _, ok, err := stores.Auth.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rbac.RoleAdmin, user.Role)

	_, _, ok, err = stores.Auth.Login(ctx, "admin", "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}
