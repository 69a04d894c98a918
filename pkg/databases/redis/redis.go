package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tavakkoli/shop_events_system/pkg/logger"
)

// NewClient connects to redis and verifies the connection with a short ping.
func NewClient(ctx context.Context, log logger.Logger, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Error("redis status", logger.String("status", "down"))
		return nil, err
	}
	log.Info("redis status", logger.String("status", "up"))

	return client, nil
}
