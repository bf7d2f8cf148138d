package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"streamify/internal/models"
)

// RecommendationCache keeps recently computed recommendation lists in Redis.
// A nil *RecommendationCache is valid and behaves as a miss on every call, so
// the service degrades to the database when Redis is not configured.
type RecommendationCache struct {
	rdb *redis.Client
	ttl time.Duration
}

const DefaultTTL = 60 * time.Second

func NewRecommendationCache(addr string, db int, ttl time.Duration) (*RecommendationCache, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &RecommendationCache{rdb: rdb, ttl: ttl}, nil
}

func key(userID int64) string {
	return fmt.Sprintf("streamify:recommendations:%d", userID)
}

// Get returns the cached recommendation list, or (nil, false) on a miss or
// any Redis error.
func (c *RecommendationCache) Get(ctx context.Context, userID int64) ([]models.User, bool) {
	if c == nil {
		return nil, false
	}

	data, err := c.rdb.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return nil, false
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false
	}
	return users, true
}

func (c *RecommendationCache) Set(ctx context.Context, userID int64, users []models.User) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(users)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key(userID), data, c.ttl).Err()
}

// Invalidate drops the cached lists for the given users. Called when the
// social graph changes so stale entries do not outlive the TTL.
func (c *RecommendationCache) Invalidate(ctx context.Context, userIDs ...int64) error {
	if c == nil || len(userIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, key(id))
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *RecommendationCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
