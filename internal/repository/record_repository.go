package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sulik0/woking-time-record/internal/models"
)

// RecordRepository stores the full record collection under a single fixed
// key. Reads of an absent key return an empty collection; writes replace the
// whole collection, there is no partial update.
type RecordRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewRecordRepository constructs a Redis-backed record store.
func NewRecordRepository(client *redis.Client, key string, logger *zap.Logger) *RecordRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordRepository{client: client, key: key, logger: logger}
}

// List returns every stored record in insertion order.
func (r *RecordRepository) List(ctx context.Context) ([]models.TimeRecord, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []models.TimeRecord{}, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var records []models.TimeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("unmarshal records at %s: %w", r.key, err)
	}
	return records, nil
}

// ReplaceAll overwrites the stored collection with the provided records.
func (r *RecordRepository) ReplaceAll(ctx context.Context, records []models.TimeRecord) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal records: %w", err)
	}
	if err := r.client.Set(ctx, r.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}
