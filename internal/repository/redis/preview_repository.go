package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"myWellnessCentre/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

type PreviewRepository struct {
	client *redis.Client
}

func NewPreviewRepository(client *redis.Client) *PreviewRepository {
	return &PreviewRepository{
		client: client,
	}
}

func (r *PreviewRepository) Save(ctx context.Context, preview domain.PaymentPreview, ttl time.Duration) error {
	val, err := json.Marshal(preview)
	if err != nil {
		return fmt.Errorf("failed to marshal payment preview: %w", err)
	}

	if err := r.client.Set(ctx, previewKey(preview.ConfirmationID), val, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store payment preview: %w", err)
	}

	return nil
}

// Take returns the preview and deletes it, so a confirmation id works only once.
func (r *PreviewRepository) Take(ctx context.Context, confirmationID string) (domain.PaymentPreview, error) {
	val, err := r.client.GetDel(ctx, previewKey(confirmationID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.PaymentPreview{}, domain.ErrPreviewNotFound
		}
		return domain.PaymentPreview{}, fmt.Errorf("failed to load payment preview: %w", err)
	}

	var preview domain.PaymentPreview
	if err := json.Unmarshal([]byte(val), &preview); err != nil {
		return domain.PaymentPreview{}, fmt.Errorf("failed to unmarshal payment preview: %w", err)
	}

	return preview, nil
}

func previewKey(id string) string {
	return fmt.Sprintf("payment:preview:%s", id)
}
