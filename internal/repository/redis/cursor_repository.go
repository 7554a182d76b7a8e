package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"myWellnessCentre/domain"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CursorRepository keeps page cursor chains as one hash per query: field = page number,
// value = cursor of that page's last record.
type CursorRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCursorRepository(client *redis.Client, ttl time.Duration) *CursorRepository {
	return &CursorRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *CursorRepository) Load(ctx context.Context, chainKey string) (map[int]domain.Cursor, error) {
	fields, err := r.client.HGetAll(ctx, cursorKey(chainKey)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load cursor chain: %w", err)
	}

	chain := make(map[int]domain.Cursor, len(fields))
	for field, val := range fields {
		page, err := strconv.Atoi(field)
		if err != nil {
			continue
		}

		var c domain.Cursor
		if err := json.Unmarshal([]byte(val), &c); err != nil {
			continue
		}
		chain[page] = c
	}

	return chain, nil
}

func (r *CursorRepository) Save(ctx context.Context, chainKey string, page int, cursor domain.Cursor) error {
	val, err := json.Marshal(cursor)
	if err != nil {
		return fmt.Errorf("failed to marshal cursor: %w", err)
	}

	key := cursorKey(chainKey)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, strconv.Itoa(page), val)
	pipe.Expire(ctx, key, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store cursor: %w", err)
	}

	return nil
}

func (r *CursorRepository) Reset(ctx context.Context, chainKey string) error {
	if err := r.client.Del(ctx, cursorKey(chainKey)).Err(); err != nil {
		return fmt.Errorf("failed to reset cursor chain: %w", err)
	}

	return nil
}

func cursorKey(chainKey string) string {
	return "pagecursor:" + chainKey
}
