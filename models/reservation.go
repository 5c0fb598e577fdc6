package models

import (
	"encoding/json"
	"time"
)

// HoldTTL is how long a pre-book hold stays usable for Book.
const HoldTTL = 30 * time.Minute

// RequestSnapshot carries the exact upstream request payload a PreBook was made
// with, so Book can re-derive its context. The raw bytes are opaque; the schema
// version tags the shape they were written in.
type RequestSnapshot struct {
	Raw           json.RawMessage `json:"raw"`
	SchemaVersion int             `json:"schemaVersion"`
}

// ReservationHold is a live pre-book token for one room offer code.
// At most one hold exists per code; a newer PreBook replaces the older hold.
type ReservationHold struct {
	Code           string          `json:"code"` // RoomOffer.Code
	Token          string          `json:"token"`
	PreBookID      string          `json:"preBookId,omitempty"`
	ConfirmedPrice float64         `json:"confirmedPrice"`
	Currency       string          `json:"currency,omitempty"`
	Snapshot       RequestSnapshot `json:"snapshot"`
	ProviderUsed   string          `json:"providerUsed"`
	CreatedAt      time.Time       `json:"createdAt"`
	ExpiresAt      time.Time       `json:"expiresAt"`
}

// Expired reports whether the hold is past its TTL at the given instant.
func (h ReservationHold) Expired(now time.Time) bool {
	return !now.Before(h.ExpiresAt)
}

// Remaining returns the time left before expiry, floored at zero.
func (h ReservationHold) Remaining(now time.Time) time.Duration {
	if h.Expired(now) {
		return 0
	}
	return h.ExpiresAt.Sub(now)
}

// PreBookResult is the normalized outcome of a supplier PreBook call.
type PreBookResult struct {
	Code           string  `json:"code"`
	Token          string  `json:"token"`
	PreBookID      string  `json:"preBookId,omitempty"`
	ConfirmedPrice float64 `json:"priceConfirmed"`
	Currency       string  `json:"currency"`
	ProviderUsed   string  `json:"providerUsed"`
}
