package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// DefaultTable is the table used when none is configured
const DefaultTable = "wellness_kv"

// PostgresStore keeps each key as a row of a single key/value table
type PostgresStore struct {
	db     *pgxpool.Pool
	table  string
	logger *zap.Logger
}

// NewPostgresStore creates a new PostgresStore. The table name is quoted,
// so any identifier is accepted.
func NewPostgresStore(db *pgxpool.Pool, table string, logger *zap.Logger) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}

	return &PostgresStore{
		db:     db,
		table:  pq.QuoteIdentifier(table),
		logger: logger,
	}
}

// EnsureSchema creates the backing table if it does not exist
func (r *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, r.table)

	if _, err := r.db.Exec(ctx, query); err != nil {
		r.logger.Error("failed to create key/value table",
			zap.Error(err),
			zap.String("table", r.table),
		)
		return fmt.Errorf("failed to create key/value table: %w", err)
	}

	return nil
}

// Get retrieves the value stored under key
func (r *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, r.table)

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		r.logger.Error("failed to read key", zap.Error(err), zap.String("key", key))
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, true, nil
}

// Set upserts the value stored under key
func (r *PostgresStore) Set(ctx context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = NOW()
	`, r.table)

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		r.logger.Error("failed to write key",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE key = $1`, r.table)

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		r.logger.Error("failed to delete key",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
