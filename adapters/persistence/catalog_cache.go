package persistence

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/quangdng/starlog/internal/application/service"
	"github.com/quangdng/starlog/internal/domain/media"
	"github.com/quangdng/starlog/pkg/logger"
)

const (
	catalogRecentKey = "catalog:recent"
	catalogRecentTTL = 60 * time.Second
)

type redisCatalogCache struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisCatalogCache(rdb *redis.Client, log logger.Logger) service.CatalogCache {
	return &redisCatalogCache{rdb: rdb, logger: log}
}

func (c *redisCatalogCache) GetRecent(ctx context.Context) ([]*media.Media, bool) {
	raw, err := c.rdb.Get(ctx, catalogRecentKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Failed to read catalog cache", zap.Error(err))
		}
		return nil, false
	}

	var items []*media.Media
	if err := json.Unmarshal(raw, &items); err != nil {
		c.logger.Warn("Corrupt catalog cache entry, dropping", zap.Error(err))
		c.rdb.Del(ctx, catalogRecentKey)
		return nil, false
	}
	return items, true
}

func (c *redisCatalogCache) SetRecent(ctx context.Context, items []*media.Media) {
	raw, err := json.Marshal(items)
	if err != nil {
		c.logger.Warn("Failed to marshal catalog page for cache", zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, catalogRecentKey, raw, catalogRecentTTL).Err(); err != nil {
		c.logger.Warn("Failed to write catalog cache", zap.Error(err))
	}
}

func (c *redisCatalogCache) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, catalogRecentKey).Err()
}
