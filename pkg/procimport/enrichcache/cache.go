// Package enrichcache caches CNPJ registry lookups in redis.
package enrichcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sidneyoliveira/licitaprofront-sub001/pkg/procimport/models"
)

// DefaultTTL is how long a lookup result stays cached.
const DefaultTTL = 24 * time.Hour

const keyPrefix = "cnpj:"

// Enricher is the lookup being cached.
type Enricher interface {
	LookupCNPJ(ctx context.Context, cnpj string) (models.SupplierRecord, error)
}

// Cache is a read-through cache in front of an Enricher. Redis failures fall
// through to the wrapped enricher; failed lookups are never stored.
type Cache struct {
	client redis.Cmdable
	next   Enricher
	ttl    time.Duration
	logger *zap.Logger
}

// New wraps next with a redis cache.
func New(client redis.Cmdable, next Enricher, ttl time.Duration, logger *zap.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		client: client,
		next:   next,
		ttl:    ttl,
		logger: logger.Named("enrichcache"),
	}
}

// NewRedisClient connects to the redis server at rawURL.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// Key returns the cache key of a CNPJ.
func Key(cnpj string) string {
	return keyPrefix + models.CleanCNPJ(cnpj)
}

// LookupCNPJ returns the cached record for cnpj, or looks it up and caches it.
func (c *Cache) LookupCNPJ(ctx context.Context, cnpj string) (models.SupplierRecord, error) {
	key := Key(cnpj)

	val, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var supplier models.SupplierRecord
		if jsonErr := json.Unmarshal([]byte(val), &supplier); jsonErr == nil {
			return supplier, nil
		}
		c.logger.Warn("Discarding malformed cache entry", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	supplier, err := c.next.LookupCNPJ(ctx, cnpj)
	if err != nil {
		return models.SupplierRecord{}, err
	}

	b, err := json.Marshal(supplier)
	if err != nil {
		return supplier, nil
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		c.logger.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return supplier, nil
}
