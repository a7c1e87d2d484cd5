package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"caslkey/pkg/platform/sentinel"
)

// Postgres stores values in the kv_snapshots table. Expired rows are hidden
// from Get and removed by PurgeExpired.
type Postgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgres constructs a PostgreSQL-backed store.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, now: time.Now}
}

func (p *Postgres) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `
		SELECT value FROM kv_snapshots
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > $2)
	`, key, p.now()).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return value, nil
}

func (p *Postgres) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	now := p.now()
	var expiresAt sql.NullTime
	if ttl > 0 {
		expiresAt = sql.NullTime{Time: now.Add(ttl), Valid: true}
	}
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_snapshots (key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = EXCLUDED.updated_at
	`, key, value, expiresAt, now)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM kv_snapshots WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and reports how many went.
func (p *Postgres) PurgeExpired(ctx context.Context) (int, error) {
	res, err := p.db.ExecContext(ctx, `DELETE FROM kv_snapshots WHERE expires_at IS NOT NULL AND expires_at <= $1`, p.now())
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge snapshots: %w", err)
	}
	return int(n), nil
}
