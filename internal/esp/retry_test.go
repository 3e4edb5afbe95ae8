package esp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleepPolicy(maxAttempts int) (RetryPolicy, *[]time.Duration) {
	slept := &[]time.Duration{}
	p := NewRetryPolicy(maxAttempts, 100*time.Millisecond)
	p.Sleep = func(d time.Duration) { *slept = append(*slept, d) }
	return p, slept
}

func TestRetryExhaustsBudgetOnServerError(t *testing.T) {
	p, slept := noSleepPolicy(2)

	attempts := 0
	_, err := p.Do(context.Background(), func(ctx context.Context) (*Response, error) {
		attempts++
		return nil, ClassifyResponse(500, nil)
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, KindProviderUnavailable, AsError(err).Kind)
	// linear backoff: one sleep of attempt x base delay
	assert.Equal(t, []time.Duration{100 * time.Millisecond}, *slept)
}

func TestRetryDoesNotRetryClientError(t *testing.T) {
	p, slept := noSleepPolicy(2)

	attempts := 0
	_, err := p.Do(context.Background(), func(ctx context.Context) (*Response, error) {
		attempts++
		return nil, ClassifyResponse(404, nil)
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, *slept)
}

func TestRetryRecoversOnSecondAttempt(t *testing.T) {
	p, _ := noSleepPolicy(2)

	attempts := 0
	resp, err := p.Do(context.Background(), func(ctx context.Context) (*Response, error) {
		attempts++
		if attempts == 1 {
			return nil, ClassifyTransport(context.DeadlineExceeded)
		}
		return &Response{StatusCode: 200}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestRetryKeepsLastFailure(t *testing.T) {
	p, _ := noSleepPolicy(2)

	attempts := 0
	_, err := p.Do(context.Background(), func(ctx context.Context) (*Response, error) {
		attempts++
		if attempts == 1 {
			return nil, ClassifyTransport(context.DeadlineExceeded)
		}
		return nil, ClassifyResponse(503, []byte("maintenance"))
	})

	require.Error(t, err)
	classified := AsError(err)
	assert.Equal(t, KindProviderUnavailable, classified.Kind)
	assert.Equal(t, 503, classified.StatusCode)
}

func TestRetryMinimumOneAttempt(t *testing.T) {
	p := NewRetryPolicy(0, time.Second)
	assert.Equal(t, 1, p.MaxAttempts)
}
