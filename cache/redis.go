package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"stayflow/models"
)

const holdKeyPrefix = "hold:"

// RedisStore keeps reservation holds in redis so the one-live-hold-per-code
// invariant holds across instances, not just per process. Expiry rides on
// redis TTLs; Sweep exists to satisfy the same contract and to clear any key
// that lost its TTL.
type RedisStore struct {
	client *redis.Client
	now    func() time.Time
	logger *zap.Logger
}

// NewRedisStore wraps an already-connected redis client.
func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStore{client: client, now: time.Now, logger: logger}
}

func (s *RedisStore) Save(ctx context.Context, hold models.ReservationHold) (models.ReservationHold, error) {
	now := s.now()
	hold.CreatedAt = now
	hold.ExpiresAt = now.Add(models.HoldTTL)

	data, err := json.Marshal(hold)
	if err != nil {
		return hold, err
	}
	if err := s.client.Set(ctx, holdKeyPrefix+hold.Code, data, models.HoldTTL).Err(); err != nil {
		return hold, err
	}
	s.logger.Debug("hold saved",
		zap.String("code", hold.Code),
		zap.Time("expiresAt", hold.ExpiresAt))
	return hold, nil
}

func (s *RedisStore) Get(ctx context.Context, code string) (*models.ReservationHold, error) {
	data, err := s.client.Get(ctx, holdKeyPrefix+code).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var hold models.ReservationHold
	if err := json.Unmarshal([]byte(data), &hold); err != nil {
		return nil, err
	}
	if hold.Expired(s.now()) {
		s.client.Del(ctx, holdKeyPrefix+code)
		return nil, nil
	}
	return &hold, nil
}

func (s *RedisStore) IsValid(ctx context.Context, code string) bool {
	hold, err := s.Get(ctx, code)
	return err == nil && hold != nil
}

func (s *RedisStore) TimeRemaining(ctx context.Context, code string) time.Duration {
	hold, err := s.Get(ctx, code)
	if err != nil || hold == nil {
		return 0
	}
	return hold.Remaining(s.now())
}

func (s *RedisStore) Evict(ctx context.Context, code string) error {
	return s.client.Del(ctx, holdKeyPrefix+code).Err()
}

// Sweep removes hold keys whose payload is past expiry or that have no TTL
// left to enforce it.
func (s *RedisStore) Sweep(ctx context.Context) (int, error) {
	evicted := 0
	iter := s.client.Scan(ctx, 0, holdKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()

		ttl, err := s.client.TTL(ctx, key).Result()
		if err != nil {
			continue
		}
		if ttl == -1 {
			// Key lost its TTL; the payload's expiresAt is authoritative.
			data, err := s.client.Get(ctx, key).Result()
			if err != nil {
				continue
			}
			var hold models.ReservationHold
			if err := json.Unmarshal([]byte(data), &hold); err != nil || hold.Expired(s.now()) {
				if s.client.Del(ctx, key).Err() == nil {
					evicted++
				}
			}
		}
	}
	if err := iter.Err(); err != nil {
		return evicted, err
	}
	if evicted > 0 {
		s.logger.Info("hold sweep evicted expired entries", zap.Int("count", evicted))
	}
	return evicted, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
