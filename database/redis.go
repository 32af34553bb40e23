// database/redis.go - Optional Redis client for streak/leaderboard caching
package database

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedis connects to Redis if configured. Caching is optional: when the
// connection fails the client stays nil and callers fall back to computing
// results from PostgreSQL on every request.
func InitRedis() {
	addr := getEnvOrDefault("REDIS_ADDR", "")
	if addr == "" {
		host := getEnvOrDefault("REDIS_HOST", "")
		port := getEnvOrDefault("REDIS_PORT", "6379")
		if host == "" {
			log.Println("Redis not configured, streak caching disabled")
			return
		}
		addr = host + ":" + port
	}

	dbNum := 0
	if dbStr := getEnvOrDefault("REDIS_DB", ""); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			dbNum = n
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:       dbNum,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable (%v), streak caching disabled", err)
		return
	}

	redisClient = client
	log.Println("✅ Redis connected, streak caching enabled")
}

// GetRedis returns the Redis client, or nil when caching is disabled.
func GetRedis() *redis.Client {
	return redisClient
}

// CloseRedis closes the Redis connection if one was established.
func CloseRedis() {
	if redisClient != nil {
		_ = redisClient.Close()
	}
}
