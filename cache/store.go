// Package cache owns the reservation holds created by PreBook. A hold maps a
// room offer code to its live token and dies by expiry sweep, by consumption
// inside a successful Book, or by invalidation after a failed one.
package cache

import (
	"context"
	"time"

	"stayflow/models"
)

// HoldStore is the reservation-hold contract. Both implementations guarantee
// at most one live hold per code: Save is last-write-wins, and an expired hold
// is treated as absent even if still physically present pending sweep.
type HoldStore interface {
	// Save overwrites any existing hold for hold.Code and stamps
	// CreatedAt / ExpiresAt (now + 30 minutes).
	Save(ctx context.Context, hold models.ReservationHold) (models.ReservationHold, error)

	// Get returns the live hold for code, or nil when missing or expired.
	// An expired hold found on read is evicted.
	Get(ctx context.Context, code string) (*models.ReservationHold, error)

	// IsValid reports whether a live, unexpired hold exists for code.
	IsValid(ctx context.Context, code string) bool

	// TimeRemaining returns the time left before expiry, zero when absent
	// or expired.
	TimeRemaining(ctx context.Context, code string) time.Duration

	// Evict removes the hold for code, whether expired or not. Used when a
	// Book consumes the token or a failed Book invalidates it.
	Evict(ctx context.Context, code string) error

	// Sweep scans the whole store and evicts every expired hold, returning
	// the eviction count. Runs periodically so memory does not grow
	// unbounded even without reads.
	Sweep(ctx context.Context) (int, error)

	Close() error
}

// RemainingMinutes converts a store's remaining duration into the whole
// minutes surfaced to callers as the hold countdown.
func RemainingMinutes(ctx context.Context, s HoldStore, code string) int {
	return int(s.TimeRemaining(ctx, code) / time.Minute)
}
