// Package cache wraps an optional Redis instance. When Redis is unreachable
// the client stays nil and every helper degrades to a miss, so the rest of
// the application never has to care.
package cache

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	CompanyProfileKey = "company:profile"
	InvoicePDFKeyFmt  = "invoice:pdf:%s:%d"
)

var client *redis.Client

// Init initializes the Redis connection.
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
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
		client.Close()
		client = nil
		return err
	}
	return nil
}

// Enabled reports whether a Redis client is connected.
func Enabled() bool {
	return client != nil
}

// GetJSON unmarshals the cached value under key into dest, reporting whether
// there was a hit.
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

// SetJSON caches v under key for ttl. Failures are ignored.
func SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// GetBytes returns the raw cached value under key.
func GetBytes(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetBytes caches raw bytes under key for ttl.
func SetBytes(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// Delete drops a key, if Redis is up.
func Delete(ctx context.Context, key string) {
	if client == nil {
		return
	}
	client.Del(ctx, key)
}
