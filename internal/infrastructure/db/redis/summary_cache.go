package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ledgerly/bookkeeping-api/internal/core/analytics"
)

const defaultSummaryTTL = time.Minute

// SummaryCache stores serialized analytics summaries keyed by owner.
// Key format: summary:<owner_id>
//
// Entries expire by TTL only; writes never invalidate, so a summary may lag
// the store by up to one TTL. Callers treat every error as a miss.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a SummaryCache wrapping the given Redis client.
// A non-positive ttl falls back to one minute.
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	if ttl <= 0 {
		ttl = defaultSummaryTTL
	}
	return &SummaryCache{client: client, ttl: ttl}
}

// Get returns the cached summary for ownerID, or (nil, nil) on a miss.
func (c *SummaryCache) Get(ctx context.Context, ownerID string) (*analytics.Summary, error) {
	raw, err := c.client.Get(ctx, c.key(ownerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("summary cache get: %w", err)
	}

	var s analytics.Summary
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("summary cache decode: %w", err)
	}
	return &s, nil
}

// Set stores the summary for ownerID, expiring after the configured TTL.
func (c *SummaryCache) Set(ctx context.Context, ownerID string, s *analytics.Summary) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("summary cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(ownerID), raw, c.ttl).Err()
}

func (c *SummaryCache) key(ownerID string) string {
	return "summary:" + ownerID
}
