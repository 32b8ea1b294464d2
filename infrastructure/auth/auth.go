// Package auth signs staff in against the credential table and keeps their
// sessions.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"keepstock/infrastructure/activity"
	"keepstock/infrastructure/apperr"
	"keepstock/infrastructure/argon"
	"keepstock/infrastructure/cache"
	"keepstock/infrastructure/rbac"
	"keepstock/infrastructure/session"
	"keepstock/infrastructure/sqlite"
	"keepstock/models"
)

// Credential is one entry of the static sign-in table.
type Credential struct {
	Username string
	Password string
	Name     string
	Role     string
	Branch   string
}

// StaticCredentials are the accounts available at startup.
var StaticCredentials = []Credential{
	{Username: "store1", Password: "password123", Name: "Store User", Role: rbac.RoleStore, Branch: "Branch 1"},
	{Username: "manager1", Password: "password123", Name: "Manager User", Role: rbac.RoleManager},
	{Username: "admin", Password: "admin123", Name: "Super Admin", Role: rbac.RoleAdmin},
}

type Service struct {
	db       *sqlite.DB
	activity *activity.Store
	sessions *cache.UserSessionCache
	users    *cache.UserCache
	rbac     *rbac.Rbac

	ttl    time.Duration
	params argon.Params
	now    func() time.Time
}

type Option func(*Service)

func WithTTL(ttl time.Duration) Option {
	return func(s *Service) { s.ttl = ttl }
}

func WithHashParams(p argon.Params) Option {
	return func(s *Service) { s.params = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(db *sqlite.DB, activityStore *activity.Store, sessions *cache.UserSessionCache, users *cache.UserCache, r *rbac.Rbac, opts ...Option) *Service {
	s := &Service{
		db:       db,
		activity: activityStore,
		sessions: sessions,
		users:    users,
		rbac:     r,
		ttl:      session.DefaultTTL,
		params:   argon.DefaultParams,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// SeedTx stores each credential whose username is not taken yet.
func (s *Service) SeedTx(ctx context.Context, tx bun.Tx, creds []Credential) error {
	for _, c := range creds {
		if !rbac.ValidRole(c.Role) {
			return fmt.Errorf("credential %s: unknown role %q", c.Username, c.Role)
		}
		if c.Role == rbac.RoleStore && c.Branch == "" {
			return fmt.Errorf("credential %s: store users need a branch", c.Username)
		}
		var exists int
		if err := tx.NewRaw(`SELECT COUNT(1) FROM users WHERE LOWER(username) = ?`, strings.ToLower(c.Username)).Scan(ctx, &exists); err != nil {
			return err
		}
		if exists > 0 {
			continue
		}
		hash, err := s.params.Hash(c.Password)
		if err != nil {
			return fmt.Errorf("hash %s: %w", c.Username, err)
		}
		user := &models.User{
			Username:     c.Username,
			Name:         c.Name,
			PasswordHash: hash,
			Role:         c.Role,
			Branch:       c.Branch,
		}
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return fmt.Errorf("seed user %s: %w", c.Username, err)
		}
	}
	return nil
}

// UpsertUser creates or updates one account. Unlike SeedTx it enforces the
// password policy and replaces an existing password.
func (s *Service) UpsertUser(ctx context.Context, c Credential) error {
	c.Username = strings.TrimSpace(c.Username)
	if c.Username == "" {
		return apperr.Validation("username is required")
	}
	if !rbac.ValidRole(c.Role) {
		return apperr.Validation("unknown role %q", c.Role)
	}
	if c.Role == rbac.RoleStore && strings.TrimSpace(c.Branch) == "" {
		return apperr.Validation("store users need a branch")
	}
	if c.Role != rbac.RoleStore {
		c.Branch = ""
	}
	if err := ValidatePasswordPolicy(c.Password); err != nil {
		return err
	}
	hash, err := s.params.Hash(c.Password)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.Name) == "" {
		c.Name = c.Username
	}
	// Usernames match case-insensitively; keep the stored spelling.
	if existing, ok, err := s.findUser(ctx, c.Username); err != nil {
		return err
	} else if ok {
		c.Username = existing.Username
	}

	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		user := &models.User{
			Username:     c.Username,
			Name:         c.Name,
			PasswordHash: hash,
			Role:         c.Role,
			Branch:       strings.TrimSpace(c.Branch),
		}
		_, err := tx.NewInsert().
			Model(user).
			On("CONFLICT (username) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("password_hash = EXCLUDED.password_hash").
			Set("role = EXCLUDED.role").
			Set("branch = EXCLUDED.branch").
			Set("updated_at = CURRENT_TIMESTAMP").
			Exec(ctx)
		return err
	})
	if err != nil {
		return err
	}
	s.refreshSignedIn(ctx, c.Username)
	return nil
}

// refreshSignedIn pushes a changed account into live sessions so the menu
// follows a new role or branch without signing out.
func (s *Service) refreshSignedIn(ctx context.Context, username string) {
	if _, ok := s.users.Get(username); !ok {
		return
	}
	user, ok, err := s.findUser(ctx, username)
	if err != nil || !ok {
		slog.Error("cannot refresh signed-in user", slog.String("username", username), slog.Any("err", err))
		return
	}
	s.users.Add(user)
	s.sessions.ReplaceUser(user, s.decorate)
}

// Login checks the credentials and opens a session. A wrong username or
// password yields ok=false and no error.
func (s *Service) Login(ctx context.Context, username, password string) (models.User, models.Session, bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, models.Session{}, false, nil
	}

	user, found, err := s.findUser(ctx, username)
	if err != nil {
		return models.User{}, models.Session{}, false, err
	}
	if !found {
		return models.User{}, models.Session{}, false, nil
	}
	match, err := argon.Verify(password, user.PasswordHash)
	if err != nil {
		return models.User{}, models.Session{}, false, fmt.Errorf("verify %s: %w", user.Username, err)
	}
	if !match {
		return models.User{}, models.Session{}, false, nil
	}

	sess := models.Session{
		ID:        session.NewToken(),
		UserID:    user.ID,
		User:      user,
		ExpiresAt: s.now().Add(s.ttl),
	}
	var logged models.ActivityLog
	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(&models.Session{
			ID:        sess.ID,
			UserID:    sess.UserID,
			ExpiresAt: sess.ExpiresAt,
		}).Exec(ctx); err != nil {
			return err
		}
		var err error
		logged, err = s.activity.AppendTx(ctx, tx, models.ActivityLog{
			Username: user.Username,
			Branch:   user.Branch,
			Action:   activity.ActionLogin,
			Details:  fmt.Sprintf("%s signed in", user.Name),
		})
		return err
	})
	if err != nil {
		return models.User{}, models.Session{}, false, fmt.Errorf("create session: %w", err)
	}
	s.activity.Committed(logged)

	s.decorate(&sess)
	s.sessions.AddSession(sess)
	s.users.Add(user)
	return user, sess, true, nil
}

// Logout ends the session behind token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	sess, ok, err := s.Session(ctx, token)
	if err != nil {
		return err
	}
	s.sessions.DeleteSessionBySessionToken(token)

	var logged []models.ActivityLog
	err = s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx); err != nil {
			return err
		}
		if !ok {
			return nil
		}
		entry, err := s.activity.AppendTx(ctx, tx, models.ActivityLog{
			Username: sess.User.Username,
			Branch:   sess.User.Branch,
			Action:   activity.ActionLogout,
			Details:  fmt.Sprintf("%s signed out", sess.User.Name),
		})
		if err != nil {
			return err
		}
		logged = append(logged, entry)
		return nil
	})
	if err != nil {
		return err
	}
	s.activity.Committed(logged...)
	return nil
}

// Session resolves a live session, from the cache first. Expired sessions
// are removed and reported as missing.
func (s *Service) Session(ctx context.Context, token string) (models.Session, bool, error) {
	if token == "" {
		return models.Session{}, false, nil
	}
	sess, ok := s.sessions.FindSessionBySessionToken(token)
	if !ok {
		var err error
		sess, ok, err = s.loadSession(ctx, token)
		if err != nil || !ok {
			return models.Session{}, false, err
		}
		s.decorate(&sess)
		s.sessions.AddSession(sess)
		s.users.Add(sess.User)
	}

	if sess.ExpiredAt(s.now()) {
		s.sessions.DeleteSessionBySessionToken(token)
		if err := s.deleteSession(ctx, token); err != nil {
			slog.Error("cannot delete expired session", slog.String("session_id", token), slog.Any("err", err))
		}
		return models.Session{}, false, nil
	}
	return sess, true, nil
}

// PurgeExpired drops expired sessions from the cache and the database.
func (s *Service) PurgeExpired(ctx context.Context) (int, error) {
	now := s.now()
	s.sessions.PurgeExpired(now)
	var n int64
	err := s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, now)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})
	return int(n), err
}

func (s *Service) decorate(sess *models.Session) {
	sess.UserRoles = []string{sess.User.Role}
	sess.ScreenPermissions = s.rbac.Permissions(sess.UserRoles)
}

func (s *Service) findUser(ctx context.Context, username string) (models.User, bool, error) {
	var user models.User
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&user).
			Where("LOWER(username) = ?", strings.ToLower(username)).
			Limit(1).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, false, nil
	}
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user: %w", err)
	}
	return user, true, nil
}

func (s *Service) loadSession(ctx context.Context, token string) (models.Session, bool, error) {
	var sess models.Session
	err := s.db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewSelect().
			Model(&sess).
			Relation("User").
			Where("s.id = ?", token).
			Limit(1).
			Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, false, nil
	}
	if err != nil {
		return models.Session{}, false, fmt.Errorf("load session: %w", err)
	}
	return sess, true, nil
}

func (s *Service) deleteSession(ctx context.Context, token string) error {
	return s.db.WithWriteTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		_, err := tx.NewDelete().Model((*models.Session)(nil)).Where("id = ?", token).Exec(ctx)
		return err
	})
}
