package esp

import (
	"context"
	"time"

	"github.com/esp-integration/backend/pkg/logger"
	"go.uber.org/zap"
)

// RetryPolicy re-runs a transport call for transient failures only. The sleep
// func is injectable so tests never wait on the wall clock.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(time.Duration)
}

func NewRetryPolicy(maxAttempts int, baseDelay time.Duration) RetryPolicy {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return RetryPolicy{
		MaxAttempts: maxAttempts,
		BaseDelay:   baseDelay,
		Sleep:       time.Sleep,
	}
}

// Do invokes fn up to MaxAttempts times with a linear backoff between
// attempts. Non-retryable failures abort immediately; the last failure is
// always returned, never discarded.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) (*Response, error)) (*Response, error) {
	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		resp, err := fn(ctx)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !AsError(err).Retryable() || attempt == p.MaxAttempts {
			break
		}

		logger.Debug("retrying provider call",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		p.Sleep(time.Duration(attempt) * p.BaseDelay)
	}
	return nil, lastErr
}
