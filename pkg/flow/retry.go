package flow

import (
	"context"
	"fmt"
	"log"
	"time"
)

// retryPolicy bounds provider calls: one initial attempt plus at most
// MaxRetries more, with the delay doubling between attempts. Only transient
// errors are retried; everything else fails on the first attempt.
type retryPolicy struct {
	MaxRetries   int
	InitialDelay time.Duration
}

func defaultRetryPolicy() retryPolicy {
	return retryPolicy{MaxRetries: 2, InitialDelay: 200 * time.Millisecond}
}

// run executes fn under the policy. The returned error wraps
// ErrProviderUnavailable when every attempt failed with a transient error.
func (p retryPolicy) run(ctx context.Context, logger *log.Logger, label string, fn func(context.Context) (string, error)) (string, error) {
	delay := p.InitialDelay
	var lastErr error
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if attempt > 0 {
			if logger != nil {
				logger.Printf("[%s] retrying after transient error (attempt %d/%d): %v", label, attempt, p.MaxRetries, lastErr)
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, ctx.Err())
			}
			delay *= 2
		}
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isTransient(err) {
			return "", err
		}
	}
	return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, lastErr)
}
