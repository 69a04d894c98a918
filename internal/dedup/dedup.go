package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// Store suppresses duplicate notification sends on broker redelivery. Keys
// are event uuid + channel so one delivered channel does not mask the other.
type Store struct {
	log    logger.Logger
	client *redis.Client
	ttl    time.Duration
}

func NewStore(log logger.Logger, client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		log:    log,
		client: client,
		ttl:    ttl,
	}
}

// FirstDelivery reports whether this event/channel pair has not been seen yet
// and marks it seen. The check fails open: when redis is unavailable we would
// rather send a duplicate than drop a notification.
func (s *Store) FirstDelivery(ctx context.Context, eventUUID, channel string) bool {
	const op = "dedup.Store.FirstDelivery"

	key := fmt.Sprintf("notify:seen:%s:%s", eventUUID, channel)

	ok, err := s.client.SetNX(ctx, key, 1, s.ttl).Result()
	if err != nil {
		s.log.Warn(op,
			logger.String("key", key),
			logger.String("error", err.Error()),
		)
		return true
	}

	return ok
}
