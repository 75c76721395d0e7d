package index

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/linkalytics/factorlink/pkg/alert"
	"github.com/linkalytics/factorlink/pkg/config"
)

// Breaker wraps a Searcher with circuit breaking. When the backend fails
// repeatedly the breaker opens, calls fail fast with
// gobreaker.ErrOpenState, and an alert is raised.
type Breaker struct {
	next    Searcher
	cb      *gobreaker.CircuitBreaker
	alerter alert.Alerter
	name    string
}

// NewBreaker creates a circuit breaker around next.
func NewBreaker(next Searcher, cfg config.CircuitBreakerConfig, alerter alert.Alerter, name string, logger *slog.Logger) *Breaker {
	if logger == nil {
		logger = slog.Default()
	}

	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    time.Duration(cfg.Interval) * time.Second,
		Timeout:     time.Duration(cfg.Timeout) * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= cfg.ReadyToTripRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			if to == gobreaker.StateOpen && alerter != nil {
				msg := fmt.Sprintf("Circuit breaker '%s' changed status from %s to %s. The search backend is failing.", name, from, to)
				_ = alerter.Alert(fmt.Sprintf("URGENT: Circuit Breaker Tripped - %s", name), msg)
			}
		},
	}

	return &Breaker{
		next:    next,
		cb:      gobreaker.NewCircuitBreaker(st),
		alerter: alerter,
		name:    name,
	}
}

// MatchPhrase implements Searcher.
func (b *Breaker) MatchPhrase(ctx context.Context, field, value string) (*Result, error) {
	return b.execute(func() (*Result, error) {
		return b.next.MatchPhrase(ctx, field, value)
	})
}

// Match implements Searcher.
func (b *Breaker) Match(ctx context.Context, field, value string) (*Result, error) {
	return b.execute(func() (*Result, error) {
		return b.next.Match(ctx, field, value)
	})
}

// IDs implements Searcher.
func (b *Breaker) IDs(ctx context.Context, ids []string) (*Result, error) {
	return b.execute(func() (*Result, error) {
		return b.next.IDs(ctx, ids)
	})
}

func (b *Breaker) execute(call func() (*Result, error)) (*Result, error) {
	res, err := b.cb.Execute(func() (interface{}, error) {
		return call()
	})
	if err != nil {
		return nil, err
	}
	return res.(*Result), nil
}
