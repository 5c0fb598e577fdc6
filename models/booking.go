package models

import "time"

// Booking statuses reported to callers.
const (
	BookingConfirmed = "confirmed"
	BookingFailed    = "failed"
)

// BookingRecord is the immutable outcome of a successful Book call.
// Cancellation produces a separate CancellationOutcome; it never mutates this.
type BookingRecord struct {
	BookingID         string    `bson:"bookingId" json:"bookingId"`
	SupplierReference string    `bson:"supplierReference" json:"supplierReference"`
	Status            string    `bson:"status" json:"status"`
	ProviderUsed      string    `bson:"providerUsed" json:"providerUsed"`
	Code              string    `bson:"code" json:"code"`
	HotelID           string    `bson:"hotelId" json:"hotelId"`
	CheckIn           string    `bson:"checkIn" json:"checkIn"`
	CheckOut          string    `bson:"checkOut" json:"checkOut"`
	Price             float64   `bson:"price" json:"price"`
	Currency          string    `bson:"currency" json:"currency"`
	LeadGuest         string    `bson:"leadGuest" json:"leadGuest"`
	AgencyReference   string    `bson:"agencyReference,omitempty" json:"agencyReference,omitempty"`
	CreatedAt         time.Time `bson:"createdAt" json:"createdAt"`
}

// CancellationOutcome records the result of a cancel attempt against a booking.
type CancellationOutcome struct {
	BookingID    string    `bson:"bookingId" json:"bookingId"`
	Success      bool      `bson:"success" json:"success"`
	Penalty      float64   `bson:"penalty,omitempty" json:"penalty,omitempty"`
	ProviderUsed string    `bson:"providerUsed" json:"providerUsed"`
	Reason       string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// BookResult is the normalized outcome of a supplier Book call.
type BookResult struct {
	BookingID         string `json:"bookingId"`
	SupplierReference string `json:"supplierReference"`
	Status            string `json:"status"`
	ProviderUsed      string `json:"providerUsed"`
}

// CancelResult is the normalized outcome of a supplier Cancel call.
type CancelResult struct {
	Success      bool    `json:"success"`
	Penalty      float64 `json:"penalty,omitempty"`
	ProviderUsed string  `json:"providerUsed"`
}
