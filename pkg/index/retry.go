package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"
)

// RetryConfig holds the backoff behavior for transient backend failures.
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3)
	MaxRetries int
	// InitialDelay is the delay before the first retry (default: 500ms)
	InitialDelay time.Duration
	// MaxDelay caps the delay between retries (default: 30 seconds)
	MaxDelay time.Duration
	// BackoffMultiplier is the exponential backoff factor (default: 2.0)
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      500 * time.Millisecond,
		MaxDelay:          30 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// Retry wraps a Searcher with retry logic for transient failures.
type Retry struct {
	next   Searcher
	config *RetryConfig
}

// NewRetry creates a retry wrapper around next.
func NewRetry(next Searcher, config *RetryConfig) *Retry {
	if config == nil {
		config = DefaultRetryConfig()
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 3
	}
	if config.InitialDelay <= 0 {
		config.InitialDelay = 500 * time.Millisecond
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Second
	}
	if config.BackoffMultiplier <= 0 {
		config.BackoffMultiplier = 2.0
	}
	return &Retry{next: next, config: config}
}

// MatchPhrase implements Searcher.
func (r *Retry) MatchPhrase(ctx context.Context, field, value string) (*Result, error) {
	return r.do(ctx, func() (*Result, error) {
		return r.next.MatchPhrase(ctx, field, value)
	})
}

// Match implements Searcher.
func (r *Retry) Match(ctx context.Context, field, value string) (*Result, error) {
	return r.do(ctx, func() (*Result, error) {
		return r.next.Match(ctx, field, value)
	})
}

// IDs implements Searcher.
func (r *Retry) IDs(ctx context.Context, ids []string) (*Result, error) {
	return r.do(ctx, func() (*Result, error) {
		return r.next.IDs(ctx, ids)
	})
}

func (r *Retry) do(ctx context.Context, call func() (*Result, error)) (*Result, error) {
	var lastErr error
	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(r.delay(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("index: cancelled during retry backoff: %w", ctx.Err())
			}
		}

		res, err := call()
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !isRetryable(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("index: failed after %d retries: %w", r.config.MaxRetries, lastErr)
}

func (r *Retry) delay(attempt int) time.Duration {
	d := float64(r.config.InitialDelay) * math.Pow(r.config.BackoffMultiplier, float64(attempt-1))
	if d > float64(r.config.MaxDelay) {
		d = float64(r.config.MaxDelay)
	}
	return time.Duration(d)
}

func isRetryable(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	// Transport-level failures from the client library arrive as plain
	// wrapped errors; treat them as transient.
	return true
}
