// Package cache keeps fetched thought collections in Redis so a session
// does not hit the conceptarium on every panel.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/nidhogg/ideoscope/internal/thought"
)

const keyFmt = "ideoscope:snapshot:%s"

// Snapshot is a collection as fetched at a given instant.
type Snapshot struct {
	FetchedAt time.Time         `json:"fetched_at"`
	Thoughts  []thought.Thought `json:"thoughts"`
}

// Redis stores snapshots as JSON strings with a TTL.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedis connects to redisURL and verifies the connection.
func NewRedis(ctx context.Context, redisURL string, ttl time.Duration, logger *zap.Logger) (*Redis, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{rdb: rdb, ttl: ttl, logger: logger}, nil
}

// Get returns the snapshot stored under id. ok is false on a miss.
func (c *Redis) Get(ctx context.Context, id string) (snap Snapshot, ok bool, err error) {
	data, err := c.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return snap, true, nil
}

// Put stores snap under id, replacing any previous snapshot.
func (c *Redis) Put(ctx context.Context, id string, snap Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot %s: %w", id, err)
	}
	if err := c.rdb.Set(ctx, key(id), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot %s: %w", id, err)
	}
	c.logger.Debug("snapshot cached",
		zap.String("session", id),
		zap.Int("thoughts", len(snap.Thoughts)),
		zap.Duration("ttl", c.ttl))
	return nil
}

// Delete drops the snapshot stored under id.
func (c *Redis) Delete(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, key(id)).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}

func key(id string) string {
	return fmt.Sprintf(keyFmt, id)
}
