package notification

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// BadgeService tracks the pending salary change request count shown on the
// dashboard bell. The count lives in Redis so the API and the Kafka consumer
// share one source of truth.
type BadgeService interface {
	PendingCount(ctx context.Context, companyID string) (int64, error)
	Increment(ctx context.Context, companyID string) error
	Decrement(ctx context.Context, companyID string) error
	Reset(ctx context.Context, companyID string, count int64) error
}

type badgeService struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewBadgeService(rdb *redis.Client, logger *zap.Logger) BadgeService {
	return &badgeService{
		rdb:    rdb,
		logger: logger.Named("notification.badge"),
	}
}

func badgeKey(companyID string) string {
	return fmt.Sprintf("badge:pending_salary_requests:%s", companyID)
}

func (s *badgeService) PendingCount(ctx context.Context, companyID string) (int64, error) {
	val, err := s.rdb.Get(ctx, badgeKey(companyID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	count, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		s.logger.Warn("badge counter corrupted, treating as zero",
			zap.String("company_id", companyID),
			zap.String("value", val),
		)
		return 0, nil
	}
	return count, nil
}

func (s *badgeService) Increment(ctx context.Context, companyID string) error {
	return s.rdb.Incr(ctx, badgeKey(companyID)).Err()
}

func (s *badgeService) Decrement(ctx context.Context, companyID string) error {
	count, err := s.rdb.Decr(ctx, badgeKey(companyID)).Result()
	if err != nil {
		return err
	}

	// A decide event replayed after a reset can push the counter negative;
	// floor it rather than show a nonsense badge.
	if count < 0 {
		return s.rdb.Set(ctx, badgeKey(companyID), 0, 0).Err()
	}
	return nil
}

func (s *badgeService) Reset(ctx context.Context, companyID string, count int64) error {
	return s.rdb.Set(ctx, badgeKey(companyID), count, 0).Err()
}
