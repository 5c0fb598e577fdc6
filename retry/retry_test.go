package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"stayflow/suppliers"
)

func TestBackoffGrowth(t *testing.T) {
	var sleeps []time.Duration
	recordSleep := func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}

	calls := 0
	res := doWithSleep(context.Background(), nil, func() (int, error) {
		calls++
		return 0, errors.New("connection reset")
	}, Config{MaxAttempts: 3, InitialDelay: time.Second, Multiplier: 2}, recordSleep)

	if res.Success() {
		t.Fatalf("expected failure")
	}
	if res.Attempts != 3 || calls != 3 {
		t.Fatalf("attempts = %d (calls %d), want 3", res.Attempts, calls)
	}
	// Sleeps between attempts only: 1s then 2s, none after the final attempt.
	if len(sleeps) != 2 {
		t.Fatalf("got %d sleeps, want 2", len(sleeps))
	}
	if sleeps[0] != time.Second || sleeps[1] != 2*time.Second {
		t.Fatalf("sleeps = %v, want [1s 2s]", sleeps)
	}
}

func TestNonRetryableShortCircuit(t *testing.T) {
	calls := 0
	res := doWithSleep(context.Background(), nil, func() (int, error) {
		calls++
		return 0, errors.New("room is sold out")
	}, Config{MaxAttempts: 5, InitialDelay: time.Millisecond, Multiplier: 2}, func(context.Context, time.Duration) error {
		t.Fatal("must not sleep after a non-retryable failure")
		return nil
	})

	if res.Success() {
		t.Fatalf("expected failure")
	}
	if calls != 1 || res.Attempts != 1 {
		t.Fatalf("attempts = %d (calls %d), want exactly 1", res.Attempts, calls)
	}
}

func TestNoProviderFailsFast(t *testing.T) {
	calls := 0
	res := doWithSleep(context.Background(), nil, func() (int, error) {
		calls++
		return 0, &suppliers.NoProviderError{Op: "search"}
	}, Config{MaxAttempts: 3, InitialDelay: time.Second, Multiplier: 2}, func(context.Context, time.Duration) error {
		t.Fatal("a missing provider must never trigger backoff")
		return nil
	})

	if res.Success() {
		t.Fatalf("expected failure")
	}
	if calls != 1 || res.Attempts != 1 {
		t.Fatalf("attempts = %d (calls %d), want exactly 1", res.Attempts, calls)
	}
	var npe *suppliers.NoProviderError
	if !errors.As(res.Err, &npe) {
		t.Fatalf("expected NoProviderError surfaced as-is, got %v", res.Err)
	}
}

func TestSuccessAfterTransientFailures(t *testing.T) {
	calls := 0
	res := doWithSleep(context.Background(), nil, func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("timeout")
		}
		return "ok", nil
	}, Config{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2}, func(context.Context, time.Duration) error { return nil })

	if !res.Success() {
		t.Fatalf("expected success, got %v", res.Err)
	}
	if res.Value != "ok" || res.Attempts != 3 {
		t.Fatalf("value %q attempts %d, want ok / 3", res.Value, res.Attempts)
	}
}

func TestContextCancelStopsBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Do(ctx, nil, func() (int, error) {
		return 0, errors.New("timeout")
	}, Config{MaxAttempts: 3, InitialDelay: time.Hour, Multiplier: 2})

	if res.Success() {
		t.Fatalf("expected failure")
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", res.Err)
	}
}

func TestRetryableClassification(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"timeout", errors.New("dial tcp: i/o timeout"), true},
		{"status 500", &suppliers.StatusError{Status: 500}, true},
		{"status 503", &suppliers.StatusError{Status: 503}, true},
		{"status 400", &suppliers.StatusError{Status: 400}, false},
		{"status 401", &suppliers.StatusError{Status: 401}, false},
		{"status 403", &suppliers.StatusError{Status: 403}, false},
		{"status 404", &suppliers.StatusError{Status: 404}, false},
		{"no provider", &suppliers.NoProviderError{Op: "search"}, false},
		{"not configured", suppliers.ErrNotConfigured, false},
		{"sold out", errors.New("room sold out"), false},
		{"not available", errors.New("rate not available"), false},
		{"invalid token", errors.New("invalid token supplied"), false},
		{"expired", errors.New("prebook expired"), false},
		{"unauthorized", errors.New("Unauthorized"), false},
		{"forbidden", errors.New("FORBIDDEN"), false},
		{"wrapped status", &suppliers.StatusError{Status: 500, Body: "oops"}, true},
	}
	for _, tc := range cases {
		if got := Retryable(tc.err); got != tc.want {
			t.Errorf("%s: Retryable = %v, want %v", tc.name, got, tc.want)
		}
	}
}
