package utils

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"

	"stayflow/config"
)

var (
	// HoldsClient is the redis client backing reservation holds and sessions.
	HoldsClient *redis.Client
	// QueueClient is the redis client backing the background task queue.
	QueueClient *redis.Client
)

// InitHoldsCache initializes the redis client for reservation holds.
func InitHoldsCache() {
	HoldsClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisHoldsDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := HoldsClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (holds): %v", err)
	}
}

// GetHoldsClient returns the holds redis client.
func GetHoldsClient() *redis.Client {
	if HoldsClient == nil {
		InitHoldsCache()
	}
	return HoldsClient
}

// InitQueueCache initializes the redis client for the task queue.
func InitQueueCache() {
	QueueClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := QueueClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (queue): %v", err)
	}
}

// GetQueueClient returns the queue redis client.
func GetQueueClient() *redis.Client {
	if QueueClient == nil {
		InitQueueCache()
	}
	return QueueClient
}
