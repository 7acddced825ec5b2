package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-arena/internal/entity"
)

var ErrRecordNotFound = errors.New("record not found")

const recordListKey = "records"

// RecordRepository archives finished game records. Cancelled games are never
// handed to it; the in-memory registry remains the source of truth for the
// current process, the archive survives restarts.
type RecordRepository interface {
	Save(ctx context.Context, record *entity.GameRecord) error
	GetByID(ctx context.Context, id string) (*entity.GameRecord, error)
	ListRecent(ctx context.Context, limit int64) ([]*entity.GameRecord, error)
}

type dbRecord struct {
	client *redis.Client
}

func NewRecordRepository(client *redis.Client) RecordRepository {
	return &dbRecord{
		client: client,
	}
}

func (that *dbRecord) Save(ctx context.Context, record *entity.GameRecord) error {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("could not marshal record: %w", err)
	}

	recordKey := "record:" + record.ID
	if err = that.client.Set(ctx, recordKey, recordJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to set record: %w", err)
	}

	if err = that.client.RPush(ctx, recordListKey, record.ID).Err(); err != nil {
		return fmt.Errorf("failed to append record index: %w", err)
	}

	return nil
}

func (that *dbRecord) GetByID(ctx context.Context, id string) (*entity.GameRecord, error) {
	recordKey := "record:" + id

	response, err := that.client.Get(ctx, recordKey).Result()

	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get record by ID: %w", err)
	}

	var record entity.GameRecord
	if err = json.Unmarshal([]byte(response), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &record, nil
}

// ListRecent returns up to limit of the most recently archived records, in
// creation order.
func (that *dbRecord) ListRecent(ctx context.Context, limit int64) ([]*entity.GameRecord, error) {
	ids, err := that.client.LRange(ctx, recordListKey, -limit, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read record index: %w", err)
	}

	records := make([]*entity.GameRecord, 0, len(ids))
	for _, id := range ids {
		record, err := that.GetByID(ctx, id)
		if errors.Is(err, ErrRecordNotFound) {
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to load record %s: %w", id, err)
		}

		records = append(records, record)
	}

	return records, nil
}
