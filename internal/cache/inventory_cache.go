// backend-go/internal/cache/inventory_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rcabanilla/schoolclinic/backend-go/internal/config"
	"github.com/rcabanilla/schoolclinic/backend-go/internal/domain"
)

const (
	inventorySummaryKeyPrefix = "inventory:summary"
	inventoryScanBatchSize    = 100
)

// InventoryCache caches per-item stock summaries keyed by their filter.
type InventoryCache interface {
	GetSummary(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, bool, error)
	SetSummary(ctx context.Context, filter domain.SummaryFilter, summaries []domain.ItemStockSummary) error
	InvalidateAll(ctx context.Context) error
}

type redisInventoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopInventoryCache struct{}

// NewInventoryCache returns a redis-backed cache when enabled in config,
// otherwise a noop cache.
func NewInventoryCache(cfg config.CacheConfig) (InventoryCache, error) {
	if !cfg.Enabled {
		return &noopInventoryCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisInventoryCache{
		client: client,
		ttl:    ttl,
	}, nil
}

func NewNoopInventoryCache() InventoryCache {
	return &noopInventoryCache{}
}

func (c *redisInventoryCache) GetSummary(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, bool, error) {
	key := buildInventorySummaryKey(filter)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var summaries []domain.ItemStockSummary
	if err := json.Unmarshal(payload, &summaries); err != nil {
		return nil, false, fmt.Errorf("decode inventory summary cache: %w", err)
	}

	return summaries, true, nil
}

func (c *redisInventoryCache) SetSummary(ctx context.Context, filter domain.SummaryFilter, summaries []domain.ItemStockSummary) error {
	key := buildInventorySummaryKey(filter)
	payload, err := json.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("encode inventory summary cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisInventoryCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, inventorySummaryKeyPrefix, inventoryScanBatchSize)
}

func (n *noopInventoryCache) GetSummary(ctx context.Context, filter domain.SummaryFilter) ([]domain.ItemStockSummary, bool, error) {
	return nil, false, nil
}

func (n *noopInventoryCache) SetSummary(ctx context.Context, filter domain.SummaryFilter, summaries []domain.ItemStockSummary) error {
	return nil
}

func (n *noopInventoryCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildInventorySummaryKey(filter domain.SummaryFilter) string {
	canonical, err := json.Marshal(filter)
	if err != nil {
		canonical = []byte(fmt.Sprintf("%v", filter))
	}

	sum := sha1.Sum(canonical)
	return inventorySummaryKeyPrefix + ":" + hex.EncodeToString(sum[:])
}
