package uow

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"fleet-fuel-backend/internal/domain/errs"
)

const DefaultMaxAttempts = 5

type RetryPolicy struct {
	MaxAttempts int
	// Backoff returns the pause before the given (1-based) retry. Nil means JitterBackoff.
	Backoff func(attempt int) time.Duration
	// OnRetry is called after each stale attempt that will be retried.
	OnRetry func(attempt int, err error)
}

// JitterBackoff waits a few milliseconds, growing with the attempt number.
func JitterBackoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 5 * time.Millisecond
	return base + rand.N(5*time.Millisecond)
}

// WithinTxRetry runs fn in a fresh transaction until it stops failing with a stale
// write. Every attempt re-reads from scratch, so nothing leaks between attempts.
// Running out of attempts yields *errs.ConflictError naming the last stale row.
func WithinTxRetry(ctx context.Context, u UnitOfWork, p RetryPolicy, fn func(r Repos) error) error {
	limit := p.MaxAttempts
	if limit <= 0 {
		limit = DefaultMaxAttempts
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = JitterBackoff
	}

	for attempt := 1; ; attempt++ {
		err := u.WithinTx(ctx, fn)
		if !errors.Is(err, errs.ErrStaleWrite) {
			return err
		}
		if attempt >= limit {
			c := &errs.ConflictError{Attempts: attempt}
			var sw *errs.StaleWriteError
			if errors.As(err, &sw) {
				c.Entity, c.ID = sw.Entity, sw.ID
			}
			return c
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}

		t := time.NewTimer(backoff(attempt))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}
