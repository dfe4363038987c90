// Package cache implements Redis-backed caching for computed allocation
// results.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/goal-planner/backend/internal/application/adapter"
	"github.com/goal-planner/backend/internal/domain/entity"
)

// allocationCache implements adapter.AllocationCache over Redis. Only the
// latest result per user is kept; the audit trail lives in the database.
type allocationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewAllocationCache creates a new allocation cache instance.
func NewAllocationCache(client *redis.Client, ttl time.Duration) adapter.AllocationCache {
	return &allocationCache{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(userID uuid.UUID) string {
	return "allocation:latest:" + userID.String()
}

// SetLatest stores the result as the user's latest.
func (c *allocationCache) SetLatest(ctx context.Context, result *entity.GoalAllocationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode allocation result: %w", err)
	}
	return c.client.Set(ctx, cacheKey(result.UserID), payload, c.ttl).Err()
}

// GetLatest returns the cached result, or nil on a miss.
func (c *allocationCache) GetLatest(ctx context.Context, userID uuid.UUID) (*entity.GoalAllocationResult, error) {
	payload, err := c.client.Get(ctx, cacheKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var result entity.GoalAllocationResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("failed to decode cached allocation result: %w", err)
	}
	return &result, nil
}

// Invalidate drops the cached result.
func (c *allocationCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	return c.client.Del(ctx, cacheKey(userID)).Err()
}
