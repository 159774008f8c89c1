// Package retry provides a generic decorator that re-invokes failing
// operations with a linearly scaled delay, classifying client-side
// failures as not worth retrying.
package retry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// permanentMarkers identify failures that cannot succeed on retry; the
// error is returned immediately.
var permanentMarkers = []string{"404", "401", "403"}

type options struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *slog.Logger
}

type Option func(*options)

func WithMaxAttempts(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.baseDelay = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// linearBackOff waits base times the number of failures so far: base after
// the first failure, twice base after the second. The scaling is linear,
// not exponential, and the observable timing is part of the contract.
type linearBackOff struct {
	base     time.Duration
	failures int
}

func (b *linearBackOff) NextBackOff() time.Duration {
	b.failures++
	return b.base * time.Duration(b.failures)
}

func (b *linearBackOff) Reset() {
	b.failures = 0
}

// Do invokes op, retrying transient failures with a linear backoff policy.
// Waiting respects ctx.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts ...Option) (T, error) {
	o := options{
		maxAttempts: DefaultMaxAttempts,
		baseDelay:   DefaultBaseDelay,
		logger:      slog.Default(),
	}
	for _, apply := range opts {
		apply(&o)
	}

	attempt := 0
	operation := func() (T, error) {
		attempt++
		result, err := op(ctx)
		if err != nil && IsPermanent(err) {
			o.logger.Warn("operation failed permanently, not retrying",
				"attempt", attempt, "err", err)
			return result, backoff.Permanent(err)
		}
		return result, err
	}

	notify := func(err error, delay time.Duration) {
		o.logger.Warn("operation failed, retrying",
			"attempt", attempt, "max", o.maxAttempts, "retry_in", delay, "err", err)
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(&linearBackOff{base: o.baseDelay}),
		backoff.WithMaxTries(uint(o.maxAttempts)),
		backoff.WithNotify(notify),
	)
	if err != nil && attempt >= o.maxAttempts {
		o.logger.Error("operation failed after all attempts",
			"attempts", attempt, "err", err)
	}
	return result, err
}

// IsPermanent reports whether err indicates a client-side condition
// (not found, unauthorized, forbidden) that retrying cannot fix.
func IsPermanent(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range permanentMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
