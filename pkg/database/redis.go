package database

import (
	"context"
	"fmt"
	"time"

	"hanja_edu_backend/internal/config"

	"github.com/go-redis/redis/v8"
)

// InitRedis connects the optional cache backend. Callers only invoke this
// when redis.enabled is set.
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return rdb, nil
}
