package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found or expired")

// SessionTTL bounds how long an idle booking session survives.
const SessionTTL = 30 * time.Minute

// SessionStore persists booking sessions as JSON blobs under their session ID.
type SessionStore interface {
	Put(ctx context.Context, sessionID string, value any) error
	Get(ctx context.Context, sessionID string, out any) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisSessions keeps sessions in redis so any instance can continue a
// caller's booking flow.
type RedisSessions struct {
	client *redis.Client
}

func NewRedisSessions(client *redis.Client) *RedisSessions {
	return &RedisSessions{client: client}
}

func (s *RedisSessions) Put(ctx context.Context, sessionID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, "session:"+sessionID, data, SessionTTL).Err()
}

func (s *RedisSessions) Get(ctx context.Context, sessionID string, out any) error {
	data, err := s.client.Get(ctx, "session:"+sessionID).Result()
	if err == redis.Nil {
		return ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), out)
}

func (s *RedisSessions) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, "session:"+sessionID).Err()
}

// MemorySessions is the in-process SessionStore used in tests and
// single-instance runs.
type MemorySessions struct {
	mu      sync.Mutex
	entries map[string]memorySessionEntry
	now     func() time.Time
}

type memorySessionEntry struct {
	data      []byte
	expiresAt time.Time
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{
		entries: make(map[string]memorySessionEntry),
		now:     time.Now,
	}
}

func (s *MemorySessions) Put(_ context.Context, sessionID string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[sessionID] = memorySessionEntry{data: data, expiresAt: s.now().Add(SessionTTL)}
	s.mu.Unlock()
	return nil
}

func (s *MemorySessions) Get(_ context.Context, sessionID string, out any) error {
	s.mu.Lock()
	entry, ok := s.entries[sessionID]
	if ok && s.now().After(entry.expiresAt) {
		delete(s.entries, sessionID)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	return json.Unmarshal(entry.data, out)
}

func (s *MemorySessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}
