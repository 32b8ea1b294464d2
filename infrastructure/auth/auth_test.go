package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/argon"
	"keepstock/infrastructure/cache"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/sqlite"
)

type testEnv struct {
	svc      *Service
	activity *activity.Store
	sessions *cache.UserSessionCache
	now      time.Time
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := sqlite.OpenDB(sqlite.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ctx := context.Background()
	require.NoError(t, sqlite.ApplyEmbeddedMigrations(ctx, db))

	env := &testEnv{now: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return env.now }

	r := rbac.New(cache.NewRbacRolesCache())
	r.AddRoles(rbac.Roles, rbac.ScreenDashboard, "GET", "/keepstock/dashboard")
	r.Add(rbac.RoleAdmin, rbac.ScreenUpload, "GET", "/keepstock/catalog/upload")

	env.activity = activity.NewStore(db, nil, activity.WithClock(clock))
	env.sessions = cache.NewUserSessionCache()
	env.svc = NewService(db, env.activity, env.sessions, cache.NewUserCache(), r,
		WithHashParams(argon.FastParams), WithClock(clock))

	require.NoError(t, db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return env.svc.SeedTx(ctx, tx, StaticCredentials)
	}))
	return env
}

func TestAdminLogsIn(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, sess, ok, err := env.svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rbac.RoleAdmin, user.Role)
	require.Equal(t, "Super Admin", user.Name)
	require.Empty(t, user.Branch)
	require.NotEmpty(t, sess.ID)
	require.Equal(t, env.now.Add(12*time.Hour), sess.ExpiresAt)
	require.Equal(t, 1, sess.ScreenPermissions[rbac.ScreenUpload])

	got, ok, err := env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "admin", got.User.Username)

	logs, err := env.activity.List(ctx, activity.Filter{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.Equal(t, activity.ActionLogin, logs[0].Action)
	require.Equal(t, "admin", logs[0].Username)
}

func TestLoginIgnoresUsernameCaseButNotPasswordCase(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user, sess, ok, err := env.svc.Login(ctx, "  ADMIN ", "admin123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "admin", user.Username)
	require.NotEmpty(t, sess.ID)

	_, _, ok, err = env.svc.Login(ctx, "Store1", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	_, _, ok, err = env.svc.Login(ctx, "admin", "ADMIN123")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestWrongPasswordFailsWithoutSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"admin", ""},
		{"nobody", "admin123"},
		{"", ""},
	} {
		_, sess, ok, err := env.svc.Login(ctx, tc.username, tc.password)
		require.NoError(t, err)
		require.False(t, ok, "%s/%s", tc.username, tc.password)
		require.Empty(t, sess.ID)
	}
	require.Equal(t, 0, env.sessions.Len())

	logs, err := env.activity.List(ctx, activity.Filter{})
	require.NoError(t, err)
	require.Empty(t, logs)
}

func TestStoreUserCarriesBranch(t *testing.T) {
	env := newTestEnv(t)
	user, sess, ok, err := env.svc.Login(context.Background(), "store1", "password123")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, rbac.RoleStore, user.Role)
	require.Equal(t, "Branch 1", user.Branch)
	require.Equal(t, 0, sess.ScreenPermissions[rbac.ScreenUpload])
	require.Equal(t, 1, sess.ScreenPermissions[rbac.ScreenDashboard])
}

func TestLogoutClearsSessionAndLogs(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, sess, ok, err := env.svc.Login(ctx, "manager1", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, env.svc.Logout(ctx, sess.ID))
	_, ok, err = env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.False(t, ok)

	logs, err := env.activity.List(ctx, activity.Filter{Username: "manager1"})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, activity.ActionLogout, logs[0].Action)

	require.NoError(t, env.svc.Logout(ctx, sess.ID), "second logout is a no-op")
	require.NoError(t, env.svc.Logout(ctx, ""))
}

func TestSessionSurvivesCacheLossAndExpires(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, sess, ok, err := env.svc.Login(ctx, "store1", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	env.sessions.DeleteSessionBySessionToken(sess.ID)
	got, ok, err := env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.True(t, ok, "session reloads from the database")
	require.Equal(t, "Branch 1", got.User.Branch)
	require.Equal(t, []string{rbac.RoleStore}, got.UserRoles)

	env.now = env.now.Add(13 * time.Hour)
	_, ok, err = env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, env.sessions.Len())
}

func TestSeedIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.svc.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return env.svc.SeedTx(ctx, tx, StaticCredentials)
	}))
	var n int
	require.NoError(t, env.svc.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM users`).Scan(ctx, &n)
	}))
	require.Equal(t, len(StaticCredentials), n)
}

func TestSeedRejectsStoreWithoutBranch(t *testing.T) {
	env := newTestEnv(t)
	err := env.svc.db.WithWriteTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return env.svc.SeedTx(ctx, tx, []Credential{{Username: "store9", Password: "x", Role: rbac.RoleStore}})
	})
	require.Error(t, err)
}

func TestUpsertUserEnforcesPolicyAndReplacesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.svc.UpsertUser(ctx, Credential{Username: "store2", Password: "short", Role: rbac.RoleStore, Branch: "Branch 2"})
	require.True(t, apperr.IsValidation(err))

	err = env.svc.UpsertUser(ctx, Credential{Username: "store2", Password: "gudang2026", Role: rbac.RoleStore})
	require.True(t, apperr.IsValidation(err), "store users need a branch")

	require.NoError(t, env.svc.UpsertUser(ctx, Credential{Username: "store2", Password: "gudang2026", Role: rbac.RoleStore, Branch: "Branch 2"}))
	user, _, ok, err := env.svc.Login(ctx, "store2", "gudang2026")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "Branch 2", user.Branch)

	require.NoError(t, env.svc.UpsertUser(ctx, Credential{Username: "admin", Password: "newAdmin2026", Role: rbac.RoleAdmin}))
	_, _, ok, err = env.svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.False(t, ok)
	_, _, ok, err = env.svc.Login(ctx, "admin", "newAdmin2026")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestUpsertUserRefreshesLiveSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, sess, ok, err := env.svc.Login(ctx, "store1", "password123")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, env.svc.UpsertUser(ctx, Credential{Username: "STORE1", Name: "Store One", Password: "gudang2026", Role: rbac.RoleStore, Branch: "Branch 3"}))

	live, ok, err := env.svc.Session(ctx, sess.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "store1", live.User.Username, "stored spelling is kept")
	require.Equal(t, "Branch 3", live.User.Branch)
	require.Equal(t, 1, live.ScreenPermissions[rbac.ScreenDashboard])
}
