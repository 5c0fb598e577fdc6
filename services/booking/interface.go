package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"stayflow/cache"
	bookingsRepo "stayflow/database/repository/bookings"
	"stayflow/models"
	"stayflow/retry"
	"stayflow/suppliers"
)

// HoldInfo is what the caller sees after a successful PreBook: the token plus
// a visible countdown.
type HoldInfo struct {
	Code             string  `json:"code"`
	Token            string  `json:"token"`
	ConfirmedPrice   float64 `json:"confirmedPrice"`
	Currency         string  `json:"currency,omitempty"`
	ProviderUsed     string  `json:"providerUsed"`
	RemainingMinutes int     `json:"remainingMinutes"`
}

// Service is the four-operation booking protocol exposed to the UI layer.
// The UI never touches suppliers, holds, or retry policy directly.
type Service interface {
	Search(ctx context.Context, sessionID string, query models.SearchQuery) (*models.BookingSession, error)
	PreBook(ctx context.Context, sessionID, code string) (*HoldInfo, error)
	Book(ctx context.Context, sessionID, token string, guest models.GuestDetails, agencyRef string) (*models.BookingRecord, error)
	Cancel(ctx context.Context, sessionID, bookingID string) (*models.CancelResult, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, int, error)
	RefreshHoldIfNeeded(ctx context.Context, code string) error
}

// DefaultService composes the failover router, hold store, validator, retry
// policy, and booking archive into the protocol state machine.
type DefaultService struct {
	Router    *suppliers.Router
	Holds     cache.HoldStore
	Sessions  cache.SessionStore
	Records   bookingsRepo.BookingRepository
	Validator *Validator
	Logger    *zap.Logger

	SearchRetry  retry.Config
	PreBookRetry retry.Config
	BookRetry    retry.Config

	// OnHoldSaved fires after a prebook hold lands in the store. The worker
	// uses it to schedule a near-expiry refresh check.
	OnHoldSaved func(hold models.ReservationHold)

	now func() time.Time
}

// Option tweaks a DefaultService at construction.
type Option func(*DefaultService)

// WithRetryConfigs overrides the per-operation retry budgets.
func WithRetryConfigs(search, preBook, book retry.Config) Option {
	return func(s *DefaultService) {
		s.SearchRetry = search
		s.PreBookRetry = preBook
		s.BookRetry = book
	}
}

// NewService wires a booking service with the default retry budgets: three
// attempts for search and prebook, two for the side-effecting book.
func NewService(router *suppliers.Router, holds cache.HoldStore, sessions cache.SessionStore, records bookingsRepo.BookingRepository, logger *zap.Logger, opts ...Option) *DefaultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DefaultService{
		Router:       router,
		Holds:        holds,
		Sessions:     sessions,
		Records:      records,
		Validator:    NewValidator(holds),
		Logger:       logger,
		SearchRetry:  retry.DefaultConfig(),
		PreBookRetry: retry.DefaultConfig(),
		BookRetry:    retry.BookConfig(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	// Book must always keep a strictly smaller budget than search/prebook.
	if s.BookRetry.MaxAttempts > 2 {
		s.BookRetry.MaxAttempts = 2
	}
	return s
}
