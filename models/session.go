package models

import "time"

// Booking session states. A session walks Search -> PreBook -> Book -> Cancel;
// Failed is reachable from any state on a terminal error.
const (
	StateIdle       = "idle"
	StateSearching  = "searching"
	StatePriced     = "priced"
	StateReserving  = "reserving"
	StateReserved   = "reserved"
	StateBooking    = "booking"
	StateBooked     = "booked"
	StateCancelling = "cancelling"
	StateCancelled  = "cancelled"
	StateFailed     = "failed"
)

// BookingSession holds context between search and final booking for one caller.
// Persisted as JSON in the session cache under SessionID.
type BookingSession struct {
	SessionID    string         `json:"sessionId"`
	State        string         `json:"state"`
	Query        SearchQuery    `json:"query"`
	Offers       []RoomOffer    `json:"offers,omitempty"`
	SelectedCode string         `json:"selectedCode,omitempty"`
	ProviderUsed string         `json:"providerUsed,omitempty"`
	Booking      *BookingRecord `json:"booking,omitempty"`
	LastError    string         `json:"lastError,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// SelectedOffer returns the offer matching SelectedCode, if any.
func (s *BookingSession) SelectedOffer() (RoomOffer, bool) {
	for _, o := range s.Offers {
		if o.Code == s.SelectedCode {
			return o, true
		}
	}
	return RoomOffer{}, false
}

// FindOffer returns the offer with the given code, if present.
func (s *BookingSession) FindOffer(code string) (RoomOffer, bool) {
	for _, o := range s.Offers {
		if o.Code == code {
			return o, true
		}
	}
	return RoomOffer{}, false
}
