package ratelimit

import (
	"context"
	"fmt"
	"time"

	"forms-server/internal/clients/redis"
	"forms-server/internal/observability"

	"github.com/google/uuid"
)

const window = time.Minute

// RateLimitResult represents the result of a rate limit check
type RateLimitResult struct {
	Allowed      bool      `json:"allowed"`
	Limit        int       `json:"limit"`
	Remaining    int       `json:"remaining"`
	ResetAt      time.Time `json:"reset_at"`
	RetryAfterMs int       `json:"retry_after_ms,omitempty"`
}

// Service enforces a per-key request budget over a sliding one-minute window
type Service struct {
	redis  *redis.Client
	limit  int
	logger *observability.Logger
}

// NewService creates a rate limiting service. A nil or disabled client allows everything.
func NewService(redis *redis.Client, requestsPerMinute int, logger *observability.Logger) *Service {
	return &Service{
		redis:  redis,
		limit:  requestsPerMinute,
		logger: logger,
	}
}

// CheckRateLimit records one request for key and reports whether it fits the budget.
func (s *Service) CheckRateLimit(ctx context.Context, key string) (RateLimitResult, error) {
	now := time.Now()
	if !s.redis.IsEnabled() || s.limit <= 0 {
		return RateLimitResult{Allowed: true, Limit: s.limit, Remaining: s.limit, ResetAt: now.Add(window)}, nil
	}

	redisKey := fmt.Sprintf("rl:public:%s", key)
	count, err := s.redis.SlidingWindowCount(ctx, redisKey, now.Add(-window))
	if err != nil {
		return RateLimitResult{}, err
	}

	if int(count) >= s.limit {
		resetAt := now.Add(window)
		oldest, ok, err := s.redis.OldestInWindow(ctx, redisKey)
		if err == nil && ok {
			resetAt = oldest.Add(window)
		}
		retryAfter := resetAt.Sub(now)
		if retryAfter < 0 {
			retryAfter = 0
		}
		return RateLimitResult{
			Allowed:      false,
			Limit:        s.limit,
			Remaining:    0,
			ResetAt:      resetAt,
			RetryAfterMs: int(retryAfter.Milliseconds()),
		}, nil
	}

	member := fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString())
	if err := s.redis.RecordInWindow(ctx, redisKey, member, now, 2*window); err != nil {
		return RateLimitResult{}, err
	}

	return RateLimitResult{
		Allowed:   true,
		Limit:     s.limit,
		Remaining: s.limit - int(count) - 1,
		ResetAt:   now.Add(window),
	}, nil
}
