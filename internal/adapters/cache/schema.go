package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// InitSchema creates the reference_route_cache table and its index.
func InitSchema(ctx context.Context, db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch dialect {
	case DialectPostgres:
		statements = []string{
			`
			CREATE TABLE IF NOT EXISTS reference_route_cache (
				route_key TEXT PRIMARY KEY,
				payload BYTEA NOT NULL,
				point_count INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
			`,
			`
			CREATE INDEX IF NOT EXISTS idx_reference_route_cache_created_at
			ON reference_route_cache(created_at);
			`,
		}
	case DialectMySQL:
		// MySQL has no CREATE INDEX IF NOT EXISTS; the index is declared inline.
		statements = []string{
			`
			CREATE TABLE IF NOT EXISTS reference_route_cache (
				route_key VARCHAR(191) PRIMARY KEY,
				payload MEDIUMBLOB NOT NULL,
				point_count INT NOT NULL,
				created_at DATETIME(6) NOT NULL,
				INDEX idx_reference_route_cache_created_at (created_at)
			);
			`,
		}
	default:
		return fmt.Errorf("init schema: unsupported dialect %q", dialect)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// PurgeExpired deletes rows created before cutoff and reports how many went.
func PurgeExpired(ctx context.Context, db *sql.DB, dialect Dialect, cutoff time.Time) (int64, error) {
	if db == nil {
		return 0, errors.New("purge route cache: DB is nil")
	}

	q := `DELETE FROM reference_route_cache WHERE created_at < $1;`
	if dialect == DialectMySQL {
		q = `DELETE FROM reference_route_cache WHERE created_at < ?;`
	}

	res, err := db.ExecContext(ctx, q, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("purge route cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge route cache: rows affected: %w", err)
	}
	return n, nil
}
