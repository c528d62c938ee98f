package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Key prefixes for the summary cache
const (
	KeyBudgetDetail        = "summary:budget:"
	KeyBudgetStats         = "summary:stats:"
	KeyUserHistory         = "summary:history:"
	KeyUserCategorySummary = "summary:categories:"
)

// SummaryCache is a redis-backed read-through cache for summary views.
// A nil cache (or one built without a client) is a valid no-op: every Get
// is a miss and Set/Invalidate do nothing, so the summary engine works the
// same with redis absent.
type SummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSummaryCache creates a new SummaryCache
func NewSummaryCache(client *redis.Client, ttl time.Duration) *SummaryCache {
	return &SummaryCache{client: client, ttl: ttl}
}

// Get loads a cached value into dest, reporting whether it was found.
// Redis errors are treated as misses.
func (c *SummaryCache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil || c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// Set stores a value under key with the cache TTL. Failures are ignored;
// the next read falls through to storage.
func (c *SummaryCache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, data, c.ttl)
}

// Invalidate drops the given keys
func (c *SummaryCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	c.client.Del(ctx, keys...)
}

// InvalidateBudget drops every key derived from a budget and its owner
func (c *SummaryCache) InvalidateBudget(ctx context.Context, budgetUUID, username string) {
	c.Invalidate(ctx,
		KeyBudgetDetail+budgetUUID,
		KeyBudgetStats+budgetUUID,
		KeyUserHistory+username,
		KeyUserCategorySummary+username,
	)
}
