package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheService stores rendered timetable views in Redis. All operations
// degrade to a miss or a no-op when the client is absent or unreachable, so
// a cache outage never fails a request.
type CacheService struct {
	client  *redis.Client
	logger  *zap.Logger
	metrics *MetricsService
	ttl     time.Duration
}

// NewCacheService constructs the cache layer. A nil client disables it.
func NewCacheService(client *redis.Client, logger *zap.Logger, metrics *MetricsService, ttl time.Duration) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{client: client, logger: logger, metrics: metrics, ttl: ttl}
}

func groupedTimetableKey(tenantID string) string {
	return fmt.Sprintf("timetable:grouped:%s", tenantID)
}

// GetGrouped loads a cached grouped view into dest. The boolean reports a
// hit.
func (s *CacheService) GetGrouped(ctx context.Context, tenantID string, dest interface{}) bool {
	if s == nil || s.client == nil {
		return false
	}
	raw, err := s.client.Get(ctx, groupedTimetableKey(tenantID)).Bytes()
	if err != nil {
		s.metrics.RecordCacheOperation(false)
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Warn("discarding undecodable cached timetable", zap.Error(err))
		s.metrics.RecordCacheOperation(false)
		return false
	}
	s.metrics.RecordCacheOperation(true)
	return true
}

// SetGrouped stores a grouped view under the tenant's key.
func (s *CacheService) SetGrouped(ctx context.Context, tenantID string, view interface{}) {
	if s == nil || s.client == nil {
		return
	}
	raw, err := json.Marshal(view)
	if err != nil {
		s.logger.Warn("failed to encode timetable for cache", zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, groupedTimetableKey(tenantID), raw, s.ttl).Err(); err != nil {
		s.logger.Warn("failed to write timetable cache", zap.Error(err))
	}
}

// InvalidateGrouped drops the tenant's cached view after a regeneration.
func (s *CacheService) InvalidateGrouped(ctx context.Context, tenantID string) {
	if s == nil || s.client == nil {
		return
	}
	if err := s.client.Del(ctx, groupedTimetableKey(tenantID)).Err(); err != nil {
		s.logger.Warn("failed to invalidate timetable cache", zap.Error(err))
	}
}
