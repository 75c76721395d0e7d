package index

import (
	"context"
	"errors"
	"testing"
	"time"
)

// flakySearcher fails a fixed number of calls before succeeding.
type flakySearcher struct {
	failures int
	calls    int
	err      error
}

func (f *flakySearcher) do() (*Result, error) {
	f.calls++
	if f.calls <= f.failures {
		return nil, f.err
	}
	return &Result{Total: 1}, nil
}

func (f *flakySearcher) MatchPhrase(ctx context.Context, field, value string) (*Result, error) {
	return f.do()
}

func (f *flakySearcher) Match(ctx context.Context, field, value string) (*Result, error) {
	return f.do()
}

func (f *flakySearcher) IDs(ctx context.Context, ids []string) (*Result, error) {
	return f.do()
}

func fastRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Millisecond,
		MaxDelay:          5 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

func TestRetrySucceedsAfterTransientFailures(t *testing.T) {
	next := &flakySearcher{failures: 2, err: &StatusError{Status: 503}}
	r := NewRetry(next, fastRetryConfig())

	res, err := r.MatchPhrase(context.Background(), "phone", "x")
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if res.Total != 1 {
		t.Errorf("Total = %d, want 1", res.Total)
	}
	if next.calls != 3 {
		t.Errorf("calls = %d, want 3", next.calls)
	}
}

func TestRetryExhaustsAttempts(t *testing.T) {
	next := &flakySearcher{failures: 100, err: &StatusError{Status: 503}}
	r := NewRetry(next, fastRetryConfig())

	_, err := r.Match(context.Background(), "phone", "x")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Errorf("want wrapped StatusError, got %v", err)
	}
	if next.calls != 4 {
		t.Errorf("calls = %d, want 4 (1 initial + 3 retries)", next.calls)
	}
}

func TestRetryFailsFastOnClientError(t *testing.T) {
	next := &flakySearcher{failures: 100, err: &StatusError{Status: 400}}
	r := NewRetry(next, fastRetryConfig())

	_, err := r.IDs(context.Background(), []string{"ad1"})
	if err == nil {
		t.Fatal("expected error")
	}
	if next.calls != 1 {
		t.Errorf("calls = %d, want 1 (client errors are not retried)", next.calls)
	}
}

func TestRetryStopsOnCancelledContext(t *testing.T) {
	next := &flakySearcher{failures: 100, err: &StatusError{Status: 503}}
	r := NewRetry(next, &RetryConfig{
		MaxRetries:        3,
		InitialDelay:      time.Minute,
		MaxDelay:          time.Minute,
		BackoffMultiplier: 2.0,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := r.Match(ctx, "phone", "x")
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("want context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("retry did not observe cancellation during backoff")
	}
	if next.calls != 1 {
		t.Errorf("calls = %d, want 1", next.calls)
	}
}

func TestRetryDoesNotRetryContextErrors(t *testing.T) {
	next := &flakySearcher{failures: 100, err: context.DeadlineExceeded}
	r := NewRetry(next, fastRetryConfig())

	_, err := r.Match(context.Background(), "phone", "x")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want DeadlineExceeded, got %v", err)
	}
	if next.calls != 1 {
		t.Errorf("calls = %d, want 1", next.calls)
	}
}

func TestNewRetryDefaults(t *testing.T) {
	r := NewRetry(&flakySearcher{}, nil)
	if r.config.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", r.config.MaxRetries)
	}
	if r.config.InitialDelay != 500*time.Millisecond {
		t.Errorf("InitialDelay = %v, want 500ms", r.config.InitialDelay)
	}
}
