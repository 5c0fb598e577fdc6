package retry

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Config tunes one retry loop.
type Config struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultConfig is the budget for read-path operations (search, prebook).
func DefaultConfig() Config {
	return Config{MaxAttempts: 3, InitialDelay: time.Second, Multiplier: 2}
}

// BookConfig is the deliberately tighter budget for Book: a financial action
// retried at most once, with a longer base delay.
func BookConfig() Config {
	return Config{MaxAttempts: 2, InitialDelay: 2 * time.Second, Multiplier: 2}
}

// Result reports the outcome of one Do invocation.
type Result[T any] struct {
	Value    T
	Err      error
	Attempts int
}

// Success reports whether the operation eventually succeeded.
func (r Result[T]) Success() bool { return r.Err == nil }

// sleepFunc is swappable in tests so backoff growth can be asserted without
// real delays.
type sleepFunc func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Do runs op up to cfg.MaxAttempts times with exponential backoff between
// attempts. A non-retryable failure stops the loop immediately after the
// attempt that produced it. Sleeps suspend only the calling goroutine, so one
// session's backoff never delays another's.
func Do[T any](ctx context.Context, logger *zap.Logger, op func() (T, error), cfg Config) Result[T] {
	return doWithSleep(ctx, logger, op, cfg, realSleep)
}

func doWithSleep[T any](ctx context.Context, logger *zap.Logger, op func() (T, error), cfg Config, sleep sleepFunc) Result[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 2
	}

	var lastErr error
	delay := cfg.InitialDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		value, err := op()
		if err == nil {
			return Result[T]{Value: value, Attempts: attempt}
		}
		lastErr = err

		if !Retryable(err) {
			logger.Warn("non-retryable failure, giving up",
				zap.Int("attempt", attempt),
				zap.Error(err))
			return Result[T]{Err: err, Attempts: attempt}
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		logger.Info("retrying after backoff",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err))
		if err := sleep(ctx, delay); err != nil {
			return Result[T]{Err: err, Attempts: attempt}
		}
		delay = time.Duration(float64(delay) * cfg.Multiplier)
	}

	return Result[T]{Err: lastErr, Attempts: cfg.MaxAttempts}
}
