package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"stayflow/models"
)

// sweepInterval is how often the background sweep scans for expired holds.
const sweepInterval = 5 * time.Minute

// MemoryStore is the process-local HoldStore: a mutex-guarded map plus a
// background sweeper. Suitable for tests and single-instance deployments;
// multi-instance deployments use RedisStore behind the same contract.
type MemoryStore struct {
	mu    sync.Mutex
	holds map[string]models.ReservationHold

	now    func() time.Time
	logger *zap.Logger
	stop   chan struct{}
	once   sync.Once
}

// NewMemoryStore builds a store and starts its periodic sweep.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &MemoryStore{
		holds:  make(map[string]models.ReservationHold),
		now:    time.Now,
		logger: logger,
		stop:   make(chan struct{}),
	}
	go s.sweepLoop()
	return s
}

func (s *MemoryStore) Save(_ context.Context, hold models.ReservationHold) (models.ReservationHold, error) {
	now := s.now()
	hold.CreatedAt = now
	hold.ExpiresAt = now.Add(models.HoldTTL)

	s.mu.Lock()
	s.holds[hold.Code] = hold
	s.mu.Unlock()

	s.logger.Debug("hold saved",
		zap.String("code", hold.Code),
		zap.Time("expiresAt", hold.ExpiresAt))
	return hold, nil
}

func (s *MemoryStore) Get(_ context.Context, code string) (*models.ReservationHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hold, ok := s.holds[code]
	if !ok {
		return nil, nil
	}
	if hold.Expired(s.now()) {
		delete(s.holds, code)
		return nil, nil
	}
	return &hold, nil
}

func (s *MemoryStore) IsValid(ctx context.Context, code string) bool {
	hold, _ := s.Get(ctx, code)
	return hold != nil
}

func (s *MemoryStore) TimeRemaining(ctx context.Context, code string) time.Duration {
	hold, _ := s.Get(ctx, code)
	if hold == nil {
		return 0
	}
	return hold.Remaining(s.now())
}

func (s *MemoryStore) Evict(_ context.Context, code string) error {
	s.mu.Lock()
	delete(s.holds, code)
	s.mu.Unlock()
	return nil
}

// Sweep evicts every expired hold in one scan. The lock is held only for the
// scan, never for any network work.
func (s *MemoryStore) Sweep(_ context.Context) (int, error) {
	now := s.now()

	s.mu.Lock()
	evicted := 0
	for code, hold := range s.holds {
		if hold.Expired(now) {
			delete(s.holds, code)
			evicted++
		}
	}
	s.mu.Unlock()

	if evicted > 0 {
		s.logger.Info("hold sweep evicted expired entries", zap.Int("count", evicted))
	}
	return evicted, nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.stop) })
	return nil
}

func (s *MemoryStore) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(context.Background())
		}
	}
}
