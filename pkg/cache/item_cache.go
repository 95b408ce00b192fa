package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = 24 * time.Hour

	itemCacheKeyPrefix = "item"
)

// CachedItem is the denormalized read model stored in Redis.
// Fields are stored as a Redis hash. Additional fields from other aggregates
// can be added here for read optimization without touching the domain model.
type CachedItem struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Qty       int64     `json:"qty"`
	CreatedAt time.Time `json:"created_at"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Keys are scoped by ownerID to prevent cross-owner data leakage.
// Key format: "item:{ownerID}:{itemID}"
type ItemCache struct {
	client *RedisClient
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r}
}

// Get retrieves a cached item by owner + item ID.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, ownerID, itemID uuid.UUID) (*CachedItem, error) {
	key := c.key(ownerID, itemID)
	vals, err := c.client.Client().HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil // key not found
	}

	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	oid, err := uuid.Parse(vals["owner_id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse owner_id: %w", err)
	}
	qty, err := strconv.ParseInt(vals["qty"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("cache parse qty: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}

	return &CachedItem{
		ID:        id,
		OwnerID:   oid,
		Name:      vals["name"],
		Qty:       qty,
		CreatedAt: createdAt,
	}, nil
}

// Set writes a cached item as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	key := c.key(item.OwnerID, item.ID)
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key,
		"id", item.ID.String(),
		"owner_id", item.OwnerID.String(),
		"name", item.Name,
		"qty", strconv.FormatInt(item.Qty, 10),
		"created_at", item.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// SetQty updates the qty field of an existing cache entry and refreshes its TTL.
// Missing entries are left alone; the next read-through repopulates them.
func (c *ItemCache) SetQty(ctx context.Context, ownerID, itemID uuid.UUID, qty int64) error {
	key := c.key(ownerID, itemID)
	n, err := c.client.Client().Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("cache exists: %w", err)
	}
	if n == 0 {
		return nil
	}
	pipe := c.client.Client().Pipeline()
	pipe.HSet(ctx, key, "qty", strconv.FormatInt(qty, 10))
	pipe.Expire(ctx, key, ItemCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set qty: %w", err)
	}
	return nil
}

// Delete removes a cached item.
func (c *ItemCache) Delete(ctx context.Context, ownerID, itemID uuid.UUID) error {
	if err := c.client.Client().Del(ctx, c.key(ownerID, itemID)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{ownerID}:{itemID}"
func (c *ItemCache) key(ownerID, itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", itemCacheKeyPrefix, ownerID, itemID)
}
