package storage

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// PostgresStore keeps keys in a single kv_entries table. Fits deployments
// that already run Postgres for the backend and do not want a second
// datastore for the gateway.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Initialize creates the table when it is missing.
func (p *PostgresStore) Initialize(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS kv_entries (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "create kv_entries")
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	const query = `SELECT value FROM kv_entries WHERE key = $1`
	var value string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", errors.Wrap(err, "select kv entry")
	}
	return value, nil
}

func (p *PostgresStore) Set(ctx context.Context, key, value string) error {
	const query = `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()
	`
	if _, err := p.db.ExecContext(ctx, query, key, value); err != nil {
		return errors.Wrap(err, "upsert kv entry")
	}
	return nil
}

func (p *PostgresStore) Remove(ctx context.Context, key string) error {
	const query = `DELETE FROM kv_entries WHERE key = $1`
	if _, err := p.db.ExecContext(ctx, query, key); err != nil {
		return errors.Wrap(err, "delete kv entry")
	}
	return nil
}
