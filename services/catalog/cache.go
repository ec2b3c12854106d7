package catalog

import (
	"context"
	"encoding/json"
	"time"

	"jenga/models"
	"jenga/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const serviceCacheTTL = 5 * time.Minute

// serviceCache is a small read-through cache for service documents. A nil
// receiver is a no-op, so tests and cache-less deployments can pass nil.
type serviceCache struct {
	client *redis.Client
}

// NewServiceCache wraps the redis client for catalog use.
func NewServiceCache(client *redis.Client) *serviceCache {
	return &serviceCache{client: client}
}

func cacheKey(id string) string {
	return "service:" + id
}

func (c *serviceCache) get(ctx context.Context, id string) *models.Service {
	if c == nil || c.client == nil {
		return nil
	}
	data, err := c.client.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		return nil
	}
	var svc models.Service
	if err := json.Unmarshal(data, &svc); err != nil {
		return nil
	}
	return &svc
}

func (c *serviceCache) set(ctx context.Context, svc *models.Service) {
	if c == nil || c.client == nil || svc == nil {
		return
	}
	data, err := json.Marshal(svc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey(svc.ID), data, serviceCacheTTL).Err(); err != nil {
		utils.GetLogger().Warn("failed to cache service", zap.String("serviceId", svc.ID), zap.Error(err))
	}
}

func (c *serviceCache) invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, cacheKey(id)).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate service cache", zap.String("serviceId", id), zap.Error(err))
	}
}
