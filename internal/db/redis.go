package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mentorlink/backend/internal/config"
	"github.com/mentorlink/backend/internal/pkg/logger"
)

// NewRedisClient connects to Redis for rate limiting. Returns nil when Redis
// is disabled in configuration; callers treat a nil client as "no limiting".
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		logger.Info().Msg("Redis disabled, rate limiting will be skipped")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr, err)
	}

	logger.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connection established")
	return client, nil
}
