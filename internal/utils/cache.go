package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"errors"        // Sentinel comparison
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Bytes() // Get value from Redis
	if errors.Is(err, redis.Nil) {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal(val, dest) // Unmarshal JSON into dest
}

// SetCache stores value in Redis as JSON for ttl
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

// ProductListCache caches serialized product listings per seller. Each seller
// has a version counter; listings are stored under the version they were read
// at, so a write that raced with an invalidation lands on a dead key.
type ProductListCache struct {
	rdb *redis.Client // Redis client
	ttl time.Duration // Entry lifetime
}

// NewProductListCache returns a listing cache backed by rdb
func NewProductListCache(rdb *redis.Client, ttl time.Duration) *ProductListCache {
	return &ProductListCache{rdb: rdb, ttl: ttl}
}

// productVersionKey holds the listing version of a seller
func productVersionKey(sellerID uint) string {
	return "products:seller:" + strconv.FormatUint(uint64(sellerID), 10) + ":version"
}

// productListKey builds the cache key for a seller's listing at version
func productListKey(sellerID uint, version int64) string {
	return "products:seller:" + strconv.FormatUint(uint64(sellerID), 10) + ":v" + strconv.FormatInt(version, 10)
}

// Version returns the current listing version of sellerID; 0 before any invalidation
func (c *ProductListCache) Version(ctx context.Context, sellerID uint) (int64, error) {
	v, err := c.rdb.Get(ctx, productVersionKey(sellerID)).Int64() // Read version counter
	if errors.Is(err, redis.Nil) {
		return 0, nil // Never invalidated
	}
	return v, err
}

// Get loads the listing of sellerID cached at version into dest
func (c *ProductListCache) Get(ctx context.Context, sellerID uint, version int64, dest any) (bool, error) {
	return GetCache(ctx, c.rdb, productListKey(sellerID, version), dest)
}

// Set stores the listing of sellerID read at version
func (c *ProductListCache) Set(ctx context.Context, sellerID uint, version int64, value any) error {
	return SetCache(ctx, c.rdb, productListKey(sellerID, version), value, c.ttl)
}

// Invalidate bumps the version of sellerID and drops the listing of the previous version
func (c *ProductListCache) Invalidate(ctx context.Context, sellerID uint) error {
	v, err := c.rdb.Incr(ctx, productVersionKey(sellerID)).Result() // Readers move to a fresh key
	if err != nil {
		return err
	}
	return DeleteCache(ctx, c.rdb, productListKey(sellerID, v-1)) // Free the stale entry early
}
