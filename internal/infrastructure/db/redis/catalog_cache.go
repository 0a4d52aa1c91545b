package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sweetshop/sweetshop-api/internal/core/domain"
)

const (
	catalogKey = "sweets:catalog"
	catalogTTL = 30 * time.Second
)

// CatalogCache stores a short-lived JSON snapshot of the full catalog listing
// under a single key. The TTL bounds staleness for readers that race an
// invalidation.
type CatalogCache struct {
	client *redis.Client
}

// NewCatalogCache creates a CatalogCache wrapping the given Redis client.
func NewCatalogCache(client *redis.Client) *CatalogCache {
	return &CatalogCache{client: client}
}

// Get returns the cached listing and whether a snapshot was present.
func (c *CatalogCache) Get(ctx context.Context) ([]domain.Sweet, bool, error) {
	raw, err := c.client.Get(ctx, catalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("catalog cache get: %w", err)
	}

	var sweets []domain.Sweet
	if err := json.Unmarshal(raw, &sweets); err != nil {
		return nil, false, fmt.Errorf("catalog cache decode: %w", err)
	}
	return sweets, true, nil
}

// Set stores the listing, replacing any previous snapshot.
func (c *CatalogCache) Set(ctx context.Context, sweets []domain.Sweet) error {
	raw, err := json.Marshal(sweets)
	if err != nil {
		return fmt.Errorf("catalog cache encode: %w", err)
	}
	return c.client.Set(ctx, catalogKey, raw, catalogTTL).Err()
}

// Invalidate drops the snapshot after a catalog write.
func (c *CatalogCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey).Err()
}
