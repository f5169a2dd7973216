// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resilience wraps calls to remote services with bounded retries,
// exponential backoff and a circuit breaker.
package resilience

import (
	"context"
	"math/rand"
	"time"
)

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxRetries      int                          // Retries after the first attempt
	InitialInterval time.Duration                // Delay before the first retry
	MaxInterval     time.Duration                // Upper bound for a single delay
	Multiplier      float64                      // Exponential backoff multiplier (e.g. 2.0 doubles each attempt)
	Jitter          bool                         // Add up to 25% random jitter to spread retries
	OnRetry         func(attempt int, err error) // Optional callback invoked before each retry
}

// DefaultRetryConfig returns three attempts spaced 1s and 2s apart.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		InitialInterval: 1 * time.Second,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
	}
}

// Attempts returns the total number of calls a RetryConfig permits.
func (c RetryConfig) Attempts() int {
	return max(c.MaxRetries, 0) + 1
}

// Delay returns the wait before retry number attempt (1-based):
// InitialInterval * Multiplier^(attempt-1), capped at MaxInterval when set.
func (c RetryConfig) Delay(attempt int) time.Duration {
	delay := float64(c.InitialInterval)
	for i := 1; i < attempt; i++ {
		delay *= c.Multiplier
	}
	if c.Jitter {
		delay += delay * 0.25 * rand.Float64()
	}
	if c.MaxInterval > 0 {
		return min(time.Duration(delay), c.MaxInterval)
	}
	return time.Duration(delay)
}

// RetryableOperation represents an operation that can be retried.
type RetryableOperation func(ctx context.Context) error

// RetryWithBackoff runs operation until it succeeds, returns a non-retryable
// error, the retries are exhausted or ctx is done.
func RetryWithBackoff(ctx context.Context, config RetryConfig, operation RetryableOperation) error {
	var lastErr error

	for attempt := 0; attempt < config.Attempts(); attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(config.Delay(attempt)):
			}

			if config.OnRetry != nil {
				config.OnRetry(attempt, lastErr)
			}
		}

		err := operation(ctx)
		if err == nil {
			return nil
		}

		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}

	return lastErr
}

// RetryableFunc is a convenience type for retryable functions that return a value.
type RetryableFunc[T any] func(ctx context.Context) (T, error)

// RetryWithResult executes a function that returns a result and error with retry logic.
func RetryWithResult[T any](ctx context.Context, config RetryConfig, fn RetryableFunc[T]) (T, error) {
	var result T
	err := RetryWithBackoff(ctx, config, func(ctx context.Context) error {
		var e error
		result, e = fn(ctx)
		return e
	})
	return result, err
}

// RetryWithCircuitBreaker combines retry logic with circuit breaker protection.
// An open circuit stops the retry loop immediately.
func RetryWithCircuitBreaker(ctx context.Context, retryConfig RetryConfig, cb *CircuitBreaker, operation RetryableOperation) error {
	return RetryWithBackoff(ctx, retryConfig, func(ctx context.Context) error {
		return cb.Execute(ctx, operation)
	})
}
