// Package cache implements Redis-backed caching for computed results.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/taxfolio/backend/internal/application/adapter"
)

// summaryCache implements adapter.SummaryCache on Redis. Keys embed the
// ruleset version, so finalizing a placeholder year naturally misses every
// entry computed under the old version.
type summaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *redis.Client, ttl time.Duration) adapter.SummaryCache {
	return &summaryCache{
		client: client,
		ttl:    ttl,
	}
}

// Get retrieves the cached summary payload for the key.
func (c *summaryCache) Get(ctx context.Context, key adapter.SummaryCacheKey) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, summaryKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores the summary payload for the key.
func (c *summaryCache) Set(ctx context.Context, key adapter.SummaryCacheKey, payload []byte) error {
	return c.client.Set(ctx, summaryKey(key), payload, c.ttl).Err()
}

// InvalidateUser drops every cached summary for the user.
func (c *summaryCache) InvalidateUser(ctx context.Context, userID uuid.UUID) error {
	pattern := fmt.Sprintf("summary:%s:*", userID)
	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func summaryKey(key adapter.SummaryCacheKey) string {
	return fmt.Sprintf("summary:%s:%s:%s", key.UserID, key.TaxYear, key.RulesetVersion)
}
