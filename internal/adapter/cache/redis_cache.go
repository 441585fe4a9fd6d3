package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/ports"
)

// RedisConfig configuration untuk snapshot cache
type RedisConfig struct {
	Enabled   bool
	URL       string
	KeyPrefix string
}

// RedisSnapshotCache stores dataset snapshots as JSON documents in Redis
type RedisSnapshotCache struct {
	client    redis.Cmdable
	keyPrefix string
	logger    logger.Logger
}

var _ ports.SnapshotCache = (*RedisSnapshotCache)(nil)

// NewSnapshotCache connects to Redis, or returns a no-op cache when disabled
func NewSnapshotCache(config RedisConfig, log logger.Logger) (ports.SnapshotCache, func() error, error) {
	if !config.Enabled {
		log.Info(context.Background(), "Snapshot cache disabled", nil)
		return NoopCache{}, func() error { return nil }, nil
	}

	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info(ctx, "Snapshot cache initialized", map[string]interface{}{
		"addr":       opt.Addr,
		"key_prefix": config.KeyPrefix,
	})

	return NewRedisSnapshotCache(client, config.KeyPrefix, log), client.Close, nil
}

// NewRedisSnapshotCache wraps an existing client
func NewRedisSnapshotCache(client redis.Cmdable, keyPrefix string, log logger.Logger) *RedisSnapshotCache {
	if keyPrefix == "" {
		keyPrefix = "insights:snapshot:"
	}
	return &RedisSnapshotCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    log.WithFields(map[string]interface{}{"component": "snapshot_cache"}),
	}
}

// Get mengambil snapshot dari Redis
func (c *RedisSnapshotCache) Get(ctx context.Context, key string) ([]domain.ServiceRequest, bool, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read snapshot: %w", err)
	}

	records, err := decodeSnapshot(raw)
	if err != nil {
		return nil, false, err
	}

	c.logger.Debug(ctx, "Snapshot cache hit", map[string]interface{}{
		"key":     key,
		"records": len(records),
	})
	return records, true, nil
}

// Set menyimpan snapshot ke Redis
func (c *RedisSnapshotCache) Set(ctx context.Context, key string, records []domain.ServiceRequest, ttl time.Duration) error {
	raw, err := encodeSnapshot(records)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

type snapshot struct {
	Version  int                     `json:"version"`
	StoredAt time.Time               `json:"stored_at"`
	Records  []domain.ServiceRequest `json:"records"`
}

const snapshotVersion = 1

func encodeSnapshot(records []domain.ServiceRequest) ([]byte, error) {
	raw, err := json.Marshal(snapshot{Version: snapshotVersion, StoredAt: time.Now().UTC(), Records: records})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return raw, nil
}

func decodeSnapshot(raw []byte) ([]domain.ServiceRequest, error) {
	var s snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", s.Version)
	}
	if s.Records == nil {
		s.Records = []domain.ServiceRequest{}
	}
	return s.Records, nil
}

// NoopCache never stores anything
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) ([]domain.ServiceRequest, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(ctx context.Context, key string, records []domain.ServiceRequest, ttl time.Duration) error {
	return nil
}
