package cache

import (
	"github.com/google/uuid"

	"github.com/tavakkoli/shop_events_system/internal/domain/models"
	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

type CacheI[K uuid.UUID, V *models.Order] interface {
	Get(key K) (value V, ok bool)
	Add(key K, value V) (evicted bool)
}

// OrderCache fronts order reads with an expirable LRU.
type OrderCache struct {
	cache CacheI[uuid.UUID, *models.Order]
	log   logger.Logger
}

func NewOrderCache(
	cache CacheI[uuid.UUID, *models.Order],
	log logger.Logger,
) *OrderCache {
	return &OrderCache{
		cache: cache,
		log:   log,
	}
}

func (c *OrderCache) Add(key uuid.UUID, value *models.Order) (evicted bool) {
	return c.cache.Add(key, value)
}

func (c *OrderCache) Get(key uuid.UUID) (value *models.Order, ok bool) {
	return c.cache.Get(key)
}
