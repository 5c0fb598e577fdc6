package models

// Guest titles accepted by both suppliers.
const (
	TitleMr  = "MR"
	TitleMrs = "MRS"
	TitleMs  = "MS"
)

// GuestDetails is the lead guest supplied at Book time. Nothing here is
// trusted past the booking validator.
type GuestDetails struct {
	Title      string `json:"title"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Country    string `json:"country,omitempty"` // ISO-2
	City       string `json:"city,omitempty"`
	Address    string `json:"address,omitempty"`
	PostalCode string `json:"zip,omitempty"`
}
