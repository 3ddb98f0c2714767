package retrylimit

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

func fastConfig(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestWithRetrySucceedsAfterFailures(t *testing.T) {
	t.Parallel()
	calls := 0
	err := WithRetryConfig(t.Context(), func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	}, nil, fastConfig(5))
	if err != nil {
		t.Fatalf("error: %v", err)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	t.Parallel()
	calls := 0
	wantErr := errors.New("always fails")
	err := WithRetryConfig(t.Context(), func() error {
		calls++
		return wantErr
	}, nil, fastConfig(3))
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want wrapped %v", err, wantErr)
	}
	if calls != 3 {
		t.Fatalf("calls = %d, want 3", calls)
	}
}

func TestWithRetryStopsOnFatalError(t *testing.T) {
	t.Parallel()
	calls := 0
	inner := errors.New("bad request")
	err := WithRetryConfig(t.Context(), func() error {
		calls++
		return &FatalError{Err: inner}
	}, nil, fastConfig(5))
	if !errors.Is(err, inner) {
		t.Fatalf("error = %v, want %v", err, inner)
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestWithRetryHonorsContextCancel(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetryConfig(ctx, func() error {
		return errors.New("should not matter")
	}, nil, fastConfig(5))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

func TestWithRetryOnRetryCallback(t *testing.T) {
	t.Parallel()
	var attempts []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error) {
		attempts = append(attempts, attempt)
	}
	_ = WithRetryConfig(t.Context(), func() error {
		return errors.New("nope")
	}, nil, cfg)

	if len(attempts) != 3 || attempts[0] != 1 || attempts[2] != 3 {
		t.Fatalf("attempts = %v", attempts)
	}
}

func TestWithRetryNoDelayAfterFinalAttempt(t *testing.T) {
	t.Parallel()
	cfg := RetryConfig{
		MaxAttempts:  2,
		InitialDelay: 150 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   10.0,
	}

	start := time.Now()
	err := WithRetryConfig(t.Context(), func() error {
		return errors.New("always fails")
	}, nil, cfg)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("expected error")
	}
	// One inter-attempt delay, not two: attempt, sleep, attempt, return.
	if elapsed >= 300*time.Millisecond {
		t.Fatalf("elapsed = %v, want a single backoff delay", elapsed)
	}
}

func TestAddJitterTinyDelay(t *testing.T) {
	t.Parallel()
	for _, d := range []time.Duration{0, 1, 2, 3, 4 * time.Nanosecond} {
		if got := addJitter(d); got < d {
			t.Errorf("addJitter(%v) = %v, want >= input", d, got)
		}
	}
}

type statusErr int

func (s statusErr) Error() string   { return "status error" }
func (s statusErr) StatusCode() int { return int(s) }

func TestAdaptiveLimiterBacksOffOnServerErrors(t *testing.T) {
	t.Parallel()
	lim := NewAdaptiveLimiter(8, 1, 16, 1, 0.5)

	start := lim.CurrentLimit()
	lim.RateLimited()
	if got := lim.CurrentLimit(); got >= start {
		t.Fatalf("limit after back-off = %v, want below %v", got, start)
	}

	// Repeated failures bottom out at the minimum.
	for i := 0; i < 10; i++ {
		lim.RateLimited()
	}
	if got := lim.CurrentLimit(); got != 1 {
		t.Fatalf("limit = %v, want floor of 1", got)
	}
}

func TestAdaptiveLimiterSuccessHeldBackAfterError(t *testing.T) {
	t.Parallel()
	lim := NewAdaptiveLimiter(4, 1, 16, 1, 0.5)
	lim.RateLimited()
	limited := lim.CurrentLimit()

	// Success right after an error must not raise the rate yet.
	lim.Success()
	if got := lim.CurrentLimit(); got != limited {
		t.Fatalf("limit = %v, want unchanged %v", got, limited)
	}
}

func TestShouldBackOffLimiter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		err  error
		want bool
	}{
		{statusErr(429), true},
		{statusErr(500), true},
		{statusErr(503), true},
		{statusErr(404), false},
		{statusErr(200), false},
		{errors.New("plain"), false},
		// Wrapped status errors must still trigger back-off.
		{fmt.Errorf("probe failed: %w", statusErr(429)), true},
		{fmt.Errorf("probe failed: %w", statusErr(404)), false},
	}
	for _, tt := range tests {
		if got := shouldBackOffLimiter(tt.err); got != tt.want {
			t.Errorf("shouldBackOffLimiter(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
