package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// OverviewKey caches the superadmin cross-tenant overview, which walks every
// tenant's hostels and students and is too expensive to recompute per request.
const OverviewKey = "overview:all"

const overviewTTL = 2 * time.Minute

var client *redis.Client

// Init initializes the Redis connection. Redis is optional: when unavailable
// the server runs without caching and every read goes to PostgreSQL.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis" // fallback to service name
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetJSON loads a cached value into dest. Returns false on miss or when the
// cache is disabled.
func GetJSON(ctx context.Context, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetJSON stores a value under key with the overview TTL. A no-op when the
// cache is disabled.
func SetJSON(ctx context.Context, key string, value interface{}) {
	if client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, overviewTTL)
}

// Ping reports whether the cache is connected and responding.
func Ping(ctx context.Context) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}

// Invalidate drops a cached key, used after writes that change the overview.
func Invalidate(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}
