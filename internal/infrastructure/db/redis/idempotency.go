package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const idempotencyTTL = 24 * time.Hour

// IdempotencyChecker provides replay detection for message sends, backed by
// Redis. Key format: send:<sender_id>:<idempotency_key>; the value is the id
// of the message created under that key.
type IdempotencyChecker struct {
	client *redis.Client
}

func NewIdempotencyChecker(client *redis.Client) *IdempotencyChecker {
	return &IdempotencyChecker{client: client}
}

// Seen reports whether a message was already created under the key, and if so
// which one.
func (c *IdempotencyChecker) Seen(ctx context.Context, sub int64, key string) (int64, bool, error) {
	val, err := c.client.Get(ctx, c.key(sub, key)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("idempotency check: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("idempotency value %q: %w", val, err)
	}
	return id, true, nil
}

// Mark records the message created under the key (expires after idempotencyTTL).
func (c *IdempotencyChecker) Mark(ctx context.Context, sub int64, key string, messageID int64) error {
	return c.client.Set(ctx, c.key(sub, key), strconv.FormatInt(messageID, 10), idempotencyTTL).Err()
}

func (c *IdempotencyChecker) key(sub int64, key string) string {
	return fmt.Sprintf("send:%d:%s", sub, key)
}
