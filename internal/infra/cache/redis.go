package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/xavierca1/ligue-leads/internal/entity"
)

// NewRedisClient connects and pings so a misconfigured address fails at boot,
// not on the first lookup.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return rdb, nil
}

// LeadCache stores full Lead snapshots under lead:<id> with a bounded TTL.
// It is never authoritative; a stale entry is only avoided by deleting on
// every mutation, not by updating in place.
type LeadCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewLeadCache(rdb *redis.Client, ttl time.Duration) *LeadCache {
	return &LeadCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func leadKey(id string) string {
	return "lead:" + id
}

// Get returns (nil, nil) on a miss.
func (c *LeadCache) Get(ctx context.Context, id string) (*entity.Lead, error) {
	data, err := c.rdb.Get(ctx, leadKey(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var lead entity.Lead
	if err := json.Unmarshal(data, &lead); err != nil {
		return nil, fmt.Errorf("cache entry corrupted: %w", err)
	}

	return &lead, nil
}

func (c *LeadCache) Set(ctx context.Context, lead *entity.Lead) error {
	data, err := json.Marshal(lead)
	if err != nil {
		return fmt.Errorf("cache marshal: %w", err)
	}

	if err := c.rdb.Set(ctx, leadKey(lead.ID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}

	return nil
}

func (c *LeadCache) Del(ctx context.Context, id string) error {
	if err := c.rdb.Del(ctx, leadKey(id)).Err(); err != nil {
		return fmt.Errorf("cache del: %w", err)
	}
	return nil
}
