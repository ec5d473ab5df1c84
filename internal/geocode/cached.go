package geocode

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Resolver - источник адресов по координатам
type Resolver interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// CachedResolver хранит найденные адреса в Redis.
// Недоступность Redis не мешает обращению к источнику.
type CachedResolver struct {
	next        Resolver
	redisClient *redis.Client
	ttl         time.Duration
	logger      *logrus.Logger
}

func NewCachedResolver(next Resolver, redisClient *redis.Client, ttl time.Duration, logger *logrus.Logger) *CachedResolver {
	return &CachedResolver{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

// cacheKey округляет координаты до ~1 м
func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("geocode:%.5f:%.5f", lat, lng)
}

func (c *CachedResolver) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	log := c.logger.WithFields(logrus.Fields{
		"service": "geocode",
		"method":  "Reverse",
	})
	key := cacheKey(lat, lng)

	if c.redisClient != nil {
		address, err := c.redisClient.Get(ctx, key).Result()
		switch {
		case err == nil:
			return address, nil
		case !errors.Is(err, redis.Nil):
			log.WithError(err).Warn("Failed to read address from cache")
		}
	}

	address, err := c.next.Reverse(ctx, lat, lng)
	if err != nil {
		return "", err
	}
	if address == "" || c.redisClient == nil {
		return address, nil
	}
	if err := c.redisClient.Set(ctx, key, address, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to store address in cache")
	}
	return address, nil
}
