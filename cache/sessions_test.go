package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sessionBlob struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

func TestMemorySessionsRoundTrip(t *testing.T) {
	s := NewMemorySessions()
	ctx := context.Background()

	if err := s.Put(ctx, "sess-1", sessionBlob{ID: "sess-1", State: "priced"}); err != nil {
		t.Fatalf("put error: %v", err)
	}

	var got sessionBlob
	if err := s.Get(ctx, "sess-1", &got); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if got.State != "priced" {
		t.Fatalf("state = %q, want priced", got.State)
	}
}

func TestMemorySessionsUnknownID(t *testing.T) {
	s := NewMemorySessions()

	var got sessionBlob
	err := s.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestMemorySessionsExpiry(t *testing.T) {
	s := NewMemorySessions()
	ctx := context.Background()

	now := time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.Put(ctx, "sess-1", sessionBlob{ID: "sess-1"})
	now = now.Add(SessionTTL + time.Second)

	var got sessionBlob
	if err := s.Get(ctx, "sess-1", &got); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected an expired session to be gone, got %v", err)
	}
}

func TestMemorySessionsDelete(t *testing.T) {
	s := NewMemorySessions()
	ctx := context.Background()

	s.Put(ctx, "sess-1", sessionBlob{ID: "sess-1"})
	if err := s.Delete(ctx, "sess-1"); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	var got sessionBlob
	if err := s.Get(ctx, "sess-1", &got); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected deleted session to be gone, got %v", err)
	}
}
