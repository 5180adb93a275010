// Package cache provides the Redis-backed progress snapshot cache. Reads
// fall through to recomputation when a key is missing; a cold or unavailable
// cache is never an error the dashboard sees.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mindhaven/mindhaven-api/internal/models"
)

// ErrMiss is returned when no snapshot is cached for the user
var ErrMiss = errors.New("snapshot not cached")

const (
	snapshotKeyPrefix  = "progress:snapshot:"
	defaultSnapshotTTL = 15 * time.Minute
)

// SnapshotCache stores computed progress snapshots keyed by user ID
type SnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotCache creates a snapshot cache over an existing Redis client.
// A non-positive ttl falls back to the default.
func NewSnapshotCache(client *redis.Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotCache{client: client, ttl: ttl}
}

// Get retrieves a cached snapshot. Returns ErrMiss when absent.
func (c *SnapshotCache) Get(ctx context.Context, userID uuid.UUID) (*models.ProgressSnapshot, error) {
	data, err := c.client.Get(ctx, snapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot cache: %w", err)
	}

	var snapshot models.ProgressSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode cached snapshot: %w", err)
	}
	return &snapshot, nil
}

// Set stores a snapshot with the configured TTL
func (c *SnapshotCache) Set(ctx context.Context, userID uuid.UUID, snapshot *models.ProgressSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	if err := c.client.Set(ctx, snapshotKey(userID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot cache: %w", err)
	}
	return nil
}

// Invalidate drops a user's cached snapshot so the next read recomputes
func (c *SnapshotCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, snapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate snapshot cache: %w", err)
	}
	return nil
}

func snapshotKey(userID uuid.UUID) string {
	return snapshotKeyPrefix + userID.String()
}
