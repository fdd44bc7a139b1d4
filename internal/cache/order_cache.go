package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"tram-kitchen/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// OrderCache is a best-effort Redis read cache for public order lookups.
// Every failure degrades to a miss so the lookup path falls through to
// the database.
type OrderCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewOrderCache creates an order read cache backed by the given client.
func NewOrderCache(client *redis.Client, logger zerolog.Logger) *OrderCache {
	return &OrderCache{
		client: client,
		logger: logger.With().Str("component", "order-cache").Logger(),
	}
}

// Get returns the cached order, or nil on a miss or cache failure.
func (c *OrderCache) Get(ctx context.Context, code string) *model.Order {
	data, err := c.client.Get(ctx, fmt.Sprintf(KeyOrderLookup, code)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn().Err(err).Str("order_code", code).Msg("order cache read failed")
		}
		return nil
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		c.logger.Warn().Err(err).Str("order_code", code).Msg("discarding unreadable cached order")
		return nil
	}
	return &order
}

// Set stores the order under its code with a bounded TTL.
func (c *OrderCache) Set(ctx context.Context, order *model.Order) {
	data, err := json.Marshal(order)
	if err != nil {
		c.logger.Warn().Err(err).Str("order_code", order.OrderCode).Msg("failed to encode order for cache")
		return
	}
	if err := c.client.Set(ctx, fmt.Sprintf(KeyOrderLookup, order.OrderCode), data, TTLOrderLookup).Err(); err != nil {
		c.logger.Warn().Err(err).Str("order_code", order.OrderCode).Msg("order cache write failed")
	}
}
