package suppliers

import "context"

// Raw wire shapes shared by both suppliers. The failover router normalizes
// these into the public models; nothing above it sees supplier payloads.

type SearchRequest struct {
	DateFrom  string    `json:"dateFrom"`
	DateTo    string    `json:"dateTo"`
	HotelName string    `json:"hotelName,omitempty"`
	City      string    `json:"city,omitempty"`
	Pax       []PaxItem `json:"pax"`
	Stars     int       `json:"stars,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

type PaxItem struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children,omitempty"`
}

type RawOffer struct {
	Code             string   `json:"code"`
	HotelID          string   `json:"hotelId"`
	HotelName        string   `json:"hotelName"`
	RoomType         string   `json:"roomType"`
	Board            string   `json:"board"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	CancellationType string   `json:"cancellationType"`
	Images           []string `json:"images"`
}

type SearchResponse struct {
	Offers []RawOffer `json:"offers"`
}

type PreBookRequest struct {
	Code     string `json:"code"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
	HotelID  string `json:"hotelId"`
	Adults   int    `json:"adults"`
	Children []int  `json:"children,omitempty"`
}

type PreBookResponse struct {
	Token          string  `json:"token"`
	PreBookID      string  `json:"preBookId"`
	Status         string  `json:"status"` // "done" = success
	PriceConfirmed float64 `json:"priceConfirmed"`
	Currency       string  `json:"currency"`
}

type Customer struct {
	Title     string `json:"title"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Address   string `json:"address,omitempty"`
	Zip       string `json:"zip,omitempty"`
}

type BookRequest struct {
	Code            string   `json:"code"`
	Token           string   `json:"token"`
	PreBookID       string   `json:"preBookId,omitempty"`
	DateFrom        string   `json:"dateFrom"`
	DateTo          string   `json:"dateTo"`
	HotelID         string   `json:"hotelId"`
	Adults          int      `json:"adults"`
	Children        []int    `json:"children,omitempty"`
	Customer        Customer `json:"customer"`
	VoucherEmail    string   `json:"voucherEmail,omitempty"`
	AgencyReference string   `json:"agencyReference,omitempty"`
}

type BookResponse struct {
	BookingID         string `json:"bookingId"`
	SupplierReference string `json:"supplierReference"`
	Status            string `json:"status"` // "confirmed" = success
}

type CancelRequest struct {
	PreBookID string `json:"preBookId,omitempty"`
	BookingID string `json:"bookingId,omitempty"`
}

type CancelResponse struct {
	Success bool    `json:"success"`
	Penalty float64 `json:"penalty,omitempty"`
}

// Client is one upstream hotel-inventory supplier. Each call is a single
// synchronous round-trip with no internal retry; retry and failover are
// layered above.
type Client interface {
	Name() string
	IsConfigured() bool
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	PreBook(ctx context.Context, req PreBookRequest) (*PreBookResponse, error)
	Book(ctx context.Context, req BookRequest) (*BookResponse, error)
	Cancel(ctx context.Context, req CancelRequest) (*CancelResponse, error)
}
