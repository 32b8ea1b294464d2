package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps split read/write Bun connections.
type DB struct {
	WriteSQL *sql.DB
	ReadSQL  *sql.DB
	W        *bun.DB
	R        *bun.DB

	shared bool
}

// MemoryPath selects a process-local database that lives as long as the DB.
const MemoryPath = ":memory:"

// OpenDB initializes sqlite handles for immediate writer tx and pooled reads.
//
// MemoryPath opens a single shared connection used for both reads and
// writes, since every connection to ":memory:" is a separate database.
func OpenDB(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if path == MemoryPath {
		return openMemoryDB()
	}

	writeDSN := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate", path)
	readDSN := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&mode=ro&_query_only=1", path)

	wsql, err := sql.Open("sqlite3", writeDSN)
	if err != nil {
		return nil, fmt.Errorf("open write db: %w", err)
	}
	wsql.SetMaxOpenConns(1)
	wsql.SetConnMaxLifetime(15 * time.Minute)

	rsql, err := sql.Open("sqlite3", readDSN)
	if err != nil {
		wsql.Close()
		return nil, fmt.Errorf("open read db: %w", err)
	}
	rsql.SetMaxOpenConns(8)
	rsql.SetConnMaxIdleTime(5 * time.Minute)
	rsql.SetConnMaxLifetime(15 * time.Minute)

	// If read-only mode fails because DB is new/missing, fallback to read-write for bootstrap.
	if err := rsql.Ping(); err != nil && strings.Contains(err.Error(), "unable to open database file") {
		rsql.Close()
		rsql, err = sql.Open("sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000&_query_only=1", path))
		if err != nil {
			wsql.Close()
			return nil, fmt.Errorf("open fallback read db: %w", err)
		}
	}

	if _, err := rsql.Exec("PRAGMA query_only = ON"); err != nil {
		wsql.Close()
		rsql.Close()
		return nil, fmt.Errorf("enable read query_only: %w", err)
	}

	db := &DB{
		WriteSQL: wsql,
		ReadSQL:  rsql,
		W:        bun.NewDB(wsql, sqlitedialect.New()),
		R:        bun.NewDB(rsql, sqlitedialect.New()),
	}
	return db, nil
}

func openMemoryDB() (*DB, error) {
	sqldb, err := sql.Open("sqlite3", "file::memory:?_foreign_keys=on&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open memory db: %w", err)
	}
	// The database disappears with its last connection.
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)
	sqldb.SetConnMaxIdleTime(0)
	if err := sqldb.Ping(); err != nil {
		sqldb.Close()
		return nil, fmt.Errorf("ping memory db: %w", err)
	}

	bdb := bun.NewDB(sqldb, sqlitedialect.New())
	return &DB{
		WriteSQL: sqldb,
		ReadSQL:  sqldb,
		W:        bdb,
		R:        bdb,
		shared:   true,
	}, nil
}

type txKind string

const (
	readTx  txKind = "read"
	writeTx txKind = "write"
)

// WithWriteTx runs fn in the single writer's transaction. Box and catalog
// mutations and their activity entries share one call so they commit
// together.
func (db *DB) WithWriteTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return db.run(ctx, nil, writeTx, fn)
	}
	return db.run(ctx, db.W, writeTx, fn)
}

// WithReadTx runs fn in a read transaction. On a MemoryPath database it
// shares the writer's connection, so it must not be called from inside
// WithWriteTx.
func (db *DB) WithReadTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	if db == nil {
		return db.run(ctx, nil, readTx, fn)
	}
	return db.run(ctx, db.R, readTx, fn)
}

func (db *DB) run(ctx context.Context, conn *bun.DB, kind txKind, fn func(ctx context.Context, tx bun.Tx) error) error {
	if conn == nil {
		return fmt.Errorf("%s db is not initialized", kind)
	}
	return conn.RunInTx(ctx, &sql.TxOptions{ReadOnly: kind == readTx}, fn)
}

// Close closes read and write handles.
func (db *DB) Close() error {
	if db == nil {
		return nil
	}
	var errs []error
	if db.W != nil {
		errs = appendErr(errs, db.W.Close())
	}
	if db.R != nil && !db.shared {
		errs = appendErr(errs, db.R.Close())
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func appendErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
