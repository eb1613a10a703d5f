package redisclient

import (
	"context"
	"fmt"

	"github.com/alphadeveloper12/Link-Up-sub000/internal/config"
	"github.com/redis/go-redis/v9"
)

// Init connects to redis and verifies the connection.
func Init(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
