package servicecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railnav/pkg/railmodel"
)

const DefaultExpiration = 2 * time.Minute

// ServiceDetailsCache keeps mapped service details in Redis for a short time so repeated
// lookups of the same service don't go back to LDBWS
type ServiceDetailsCache struct {
	Cache *cache.Cache[string]
}

func New(client *redis.Client, expiration time.Duration) *ServiceDetailsCache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &ServiceDetailsCache{
		Cache: cache.New[string](redisStore),
	}
}

func (c *ServiceDetailsCache) Get(ctx context.Context, serviceID string) (*railmodel.TrainService, bool) {
	value, err := c.Cache.Get(ctx, cacheKey(serviceID))
	if err != nil || value == "" {
		return nil, false
	}

	var service *railmodel.TrainService
	if err := json.Unmarshal([]byte(value), &service); err != nil {
		log.Warn().Err(err).Str("service", serviceID).Msg("Ignoring unreadable cached service")
		return nil, false
	}

	return service, service != nil
}

func (c *ServiceDetailsCache) Set(ctx context.Context, serviceID string, service *railmodel.TrainService) {
	serviceJSON, err := json.Marshal(service)
	if err != nil {
		log.Error().Err(err).Str("service", serviceID).Msg("Failed to encode service for cache")
		return
	}

	if err := c.Cache.Set(ctx, cacheKey(serviceID), string(serviceJSON)); err != nil {
		log.Warn().Err(err).Str("service", serviceID).Msg("Failed to cache service")
	}
}

func cacheKey(serviceID string) string {
	return fmt.Sprintf("railnav:service:%s", serviceID)
}
