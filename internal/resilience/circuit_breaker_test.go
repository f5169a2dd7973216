// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("classifier")
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Hour
	cb := NewCircuitBreaker(cfg)

	failing := func(ctx context.Context) error { return NewTransientError("down", nil) }

	for i := 0; i < 2; i++ {
		if err := cb.Execute(context.Background(), failing); err == nil {
			t.Fatal("expected failure")
		}
	}

	if cb.GetState() != StateOpen {
		t.Fatalf("expected OPEN, got %v", cb.GetState())
	}

	calls := 0
	err := cb.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})
	if !IsCircuitBreakerError(err) {
		t.Errorf("expected circuit breaker error, got %v", err)
	}
	if calls != 0 {
		t.Error("operation must not run while the circuit is open")
	}
	if IsRetryable(err) {
		t.Error("open circuit should not be retried")
	}
}

func TestCircuitBreaker_PermanentErrorsDoNotTrip(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("classifier")
	cfg.FailureThreshold = 1
	cb := NewCircuitBreaker(cfg)

	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return NewPermanentError("unauthorized", nil)
	})

	if cb.GetState() != StateClosed {
		t.Errorf("expected CLOSED after permanent error, got %v", cb.GetState())
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	var transitions []string
	cfg := DefaultCircuitBreakerConfig("classifier")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Millisecond
	cfg.OnStateChange = func(name string, from, to CircuitBreakerState) {
		transitions = append(transitions, from.String()+"->"+to.String())
	}
	cb := NewCircuitBreaker(cfg)

	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return NewTransientError("down", nil)
	})
	time.Sleep(5 * time.Millisecond)

	if err := cb.Execute(context.Background(), func(ctx context.Context) error { return nil }); err != nil {
		t.Fatalf("expected half-open probe to run, got %v", err)
	}
	if cb.GetState() != StateClosed {
		t.Errorf("expected CLOSED after successful probe, got %v", cb.GetState())
	}

	want := []string{"CLOSED->OPEN", "OPEN->HALF_OPEN", "HALF_OPEN->CLOSED"}
	if len(transitions) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, transitions)
	}
	for i := range want {
		if transitions[i] != want[i] {
			t.Errorf("transition %d: expected %s, got %s", i, want[i], transitions[i])
		}
	}
}

func TestRetryWithCircuitBreaker_StopsWhenOpen(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("classifier")
	cfg.FailureThreshold = 2
	cfg.Timeout = time.Hour
	cb := NewCircuitBreaker(cfg)

	calls := 0
	err := RetryWithCircuitBreaker(context.Background(), RetryConfig{MaxRetries: 5}, cb, func(ctx context.Context) error {
		calls++
		return NewTransientError("down", nil)
	})

	if calls != 2 {
		t.Errorf("expected 2 calls before the circuit opened, got %d", calls)
	}
	var cbErr *CircuitBreakerError
	if !errors.As(err, &cbErr) {
		t.Errorf("expected circuit breaker error, got %v", err)
	}
}

func TestCircuitBreaker_Reset(t *testing.T) {
	cfg := DefaultCircuitBreakerConfig("classifier")
	cfg.FailureThreshold = 1
	cfg.Timeout = time.Hour
	cb := NewCircuitBreaker(cfg)

	_ = cb.Execute(context.Background(), func(ctx context.Context) error {
		return NewTransientError("down", nil)
	})
	cb.Reset()

	stats := cb.GetStats()
	if stats.State != StateClosed || stats.FailureCount != 0 {
		t.Errorf("expected clean CLOSED breaker after reset, got %+v", stats)
	}
}
