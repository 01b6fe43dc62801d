// Package retry implements a small attempt-with-backoff helper driven by a
// policy value, so retry behaviour is testable independent of any transport.
package retry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Policy describes how an operation is retried.
type Policy struct {
	// MaxAttempts is the total attempt budget, including the first try.
	MaxAttempts int

	// BaseDelay is the delay unit between attempts. The wait after attempt
	// i is BaseDelay * i: a linear backoff, not an exponential one.
	BaseDelay time.Duration

	// IsRetryable decides whether an error is worth another attempt.
	// A nil func retries every error.
	IsRetryable func(error) bool
}

// Do runs op until it succeeds, the attempt budget is exhausted, the policy
// declares the error non-retryable, or ctx is done. Attempts are strictly
// sequential. The returned error is the one from the last attempt.
func Do(ctx context.Context, p Policy, op func(ctx context.Context) error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}

		if p.IsRetryable != nil && !p.IsRetryable(lastErr) {
			return lastErr
		}

		if attempt == p.MaxAttempts {
			break
		}

		wait := p.BaseDelay * time.Duration(attempt)
		log.Warn().
			Err(lastErr).
			Int("attempt", attempt).
			Int("max_attempts", p.MaxAttempts).
			Dur("wait", wait).
			Msg("attempt failed, retrying")

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return lastErr
}
