package utils

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gracepoint/church-admin-backend/config"
)

var redisClient *redis.Client

// InitRedis connects the shared client used for password-reset tokens.
func InitRedis(cfg *config.Config) error {
	addr := cfg.RedisAddr
	if addr == "" {
		addr = "localhost:6379"
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return redisClient.Ping(ctx).Err()
}

func SetToken(key, value string, ttl time.Duration) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Set(context.Background(), key, value, ttl).Err()
}

func GetToken(key string) (string, error) {
	if redisClient == nil {
		return "", errors.New("redis not initialized")
	}
	return redisClient.Get(context.Background(), key).Result()
}

func DeleteToken(key string) error {
	if redisClient == nil {
		return errors.New("redis not initialized")
	}
	return redisClient.Del(context.Background(), key).Err()
}
