package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sulik0/woking-time-record/internal/models"
)

// PostgresRecordRepository implements the same single-key, whole-collection
// contract as the Redis store, keeping the serialized collection in one
// document row. Useful where a durable SQL instance is already running.
type PostgresRecordRepository struct {
	db  *sqlx.DB
	key string
}

// NewPostgresRecordRepository constructs a Postgres-backed record store.
func NewPostgresRecordRepository(db *sqlx.DB, key string) *PostgresRecordRepository {
	return &PostgresRecordRepository{db: db, key: key}
}

// List returns every stored record in insertion order.
func (r *PostgresRecordRepository) List(ctx context.Context) ([]models.TimeRecord, error) {
	var payload []byte
	err := r.db.GetContext(ctx, &payload, `SELECT payload FROM record_store WHERE store_key = $1`, r.key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []models.TimeRecord{}, nil
		}
		return nil, fmt.Errorf("select record store %s: %w", r.key, err)
	}

	var records []models.TimeRecord
	if err := json.Unmarshal(payload, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records at %s: %w", r.key, err)
	}
	return records, nil
}

// ReplaceAll overwrites the stored collection with the provided records.
func (r *PostgresRecordRepository) ReplaceAll(ctx context.Context, records []models.TimeRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO record_store (store_key, payload, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (store_key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		r.key, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert record store %s: %w", r.key, err)
	}
	return nil
}
