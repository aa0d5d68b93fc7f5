package idempotency

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresStore persists idempotency records in the gateway's own
// database. Expired rows are removed by the janitor worker.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, error) {
	query := `
		SELECT token
		FROM idempotency_records
		WHERE record_key = $1
		AND (expires_at IS NULL OR expires_at > NOW())
	`

	var token string
	err := s.db.GetContext(ctx, &token, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read idempotency record: %w", err)
	}
	return token, nil
}

func (s *PostgresStore) Put(ctx context.Context, key, token string, ttl time.Duration) (string, error) {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	// A live row keeps its token so concurrent writers converge on the
	// first write; only expired rows are replaced.
	query := `
		INSERT INTO idempotency_records (record_key, token, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (record_key) DO UPDATE
		SET token = CASE
				WHEN idempotency_records.expires_at IS NOT NULL AND idempotency_records.expires_at <= NOW()
					THEN EXCLUDED.token
				ELSE idempotency_records.token
			END,
			expires_at = CASE
				WHEN idempotency_records.expires_at IS NOT NULL AND idempotency_records.expires_at <= NOW()
					THEN EXCLUDED.expires_at
				ELSE idempotency_records.expires_at
			END,
			updated_at = NOW()
		RETURNING token
	`

	var stored string
	if err := s.db.GetContext(ctx, &stored, query, key, token, expiresAt); err != nil {
		return "", fmt.Errorf("failed to store idempotency record: %w", err)
	}
	return stored, nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM idempotency_records WHERE record_key = $1`

	if _, err := s.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete idempotency record: %w", err)
	}
	return nil
}

// Sweep removes records that expired before the cutoff.
func (s *PostgresStore) Sweep(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM idempotency_records WHERE expires_at IS NOT NULL AND expires_at < $1`

	result, err := s.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to sweep idempotency records: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
