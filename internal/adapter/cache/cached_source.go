package cache

import (
	"context"
	"time"

	"github.com/fixora/insights/infrastructure/service/logger"
	"github.com/fixora/insights/internal/domain"
	"github.com/fixora/insights/internal/ports"
)

// CachedSource serves a RequestSource through a SnapshotCache. Cache failures
// are logged and fall through to the underlying source.
type CachedSource struct {
	source ports.RequestSource
	cache  ports.SnapshotCache
	ttl    time.Duration
	logger logger.Logger
}

var (
	_ ports.RequestSource = (*CachedSource)(nil)
	_ ports.Refresher     = (*CachedSource)(nil)
)

// NewCachedSource wraps source with cache
func NewCachedSource(source ports.RequestSource, cache ports.SnapshotCache, ttl time.Duration, log logger.Logger) *CachedSource {
	return &CachedSource{
		source: source,
		cache:  cache,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "cached_source", "source": source.Name()}),
	}
}

// Name reports the wrapped source
func (s *CachedSource) Name() string {
	return s.source.Name()
}

// Load returns the cached snapshot when present, otherwise loads and stores one
func (s *CachedSource) Load(ctx context.Context) ([]domain.ServiceRequest, error) {
	key := s.key(ctx)

	records, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "Snapshot cache read failed", map[string]interface{}{"key": key, "error": err.Error()})
	} else if ok {
		return records, nil
	}

	return s.store(ctx, key)
}

// Refresh bypasses the snapshot, loads from the source and overwrites the
// snapshot with the result
func (s *CachedSource) Refresh(ctx context.Context) ([]domain.ServiceRequest, error) {
	return s.store(ctx, s.key(ctx))
}

func (s *CachedSource) store(ctx context.Context, key string) ([]domain.ServiceRequest, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, records, s.ttl); err != nil {
		s.logger.Warn(ctx, "Snapshot cache write failed", map[string]interface{}{"key": key, "error": err.Error()})
	}
	return records, nil
}

func (s *CachedSource) key(ctx context.Context) string {
	key := s.source.Name()
	fp, ok := s.source.(ports.Fingerprinter)
	if !ok {
		return key
	}
	sum, err := fp.Fingerprint(ctx)
	if err != nil {
		s.logger.Warn(ctx, "Source fingerprint unavailable", map[string]interface{}{"error": err.Error()})
		return key
	}
	return key + ":" + sum
}
