package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// CacheTTL is the expiry applied to cached read responses
const CacheTTL = 60 * time.Second

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// DenyToken records a logged-out token id until the token would have expired
func DenyToken(ctx context.Context, rdb *redis.Client, tokenID string, ttl time.Duration) error {
	return rdb.Set(ctx, "denylist:"+tokenID, "1", ttl).Err() // Mark the token id as revoked
}

// IsTokenDenied reports whether a token id was revoked by logout
func IsTokenDenied(ctx context.Context, rdb *redis.Client, tokenID string) (bool, error) {
	n, err := rdb.Exists(ctx, "denylist:"+tokenID).Result() // Check for the denylist key
	if err != nil {
		return false, err // Redis error
	}
	return n > 0, nil // Present means revoked
}
