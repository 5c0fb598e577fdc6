package models

// PaxRoom describes the occupancy of one room in a search.
type PaxRoom struct {
	Adults   int   `json:"adults"`
	Children []int `json:"children,omitempty"`
}

// SearchQuery is the normalized search input sent to a supplier.
// HotelName and City are mutually exclusive; exactly one must be set.
type SearchQuery struct {
	DateFrom  string    `json:"dateFrom"` // YYYY-MM-DD
	DateTo    string    `json:"dateTo"`   // YYYY-MM-DD
	HotelName string    `json:"hotelName,omitempty"`
	City      string    `json:"city,omitempty"`
	Pax       []PaxRoom `json:"pax"`
	Stars     int       `json:"stars,omitempty"`
	Limit     int       `json:"limit,omitempty"`
}

// TotalAdults sums adults across all requested rooms.
func (q SearchQuery) TotalAdults() int {
	total := 0
	for _, p := range q.Pax {
		total += p.Adults
	}
	return total
}

// ChildAges flattens children ages across all requested rooms.
func (q SearchQuery) ChildAges() []int {
	var ages []int
	for _, p := range q.Pax {
		ages = append(ages, p.Children...)
	}
	return ages
}

// RoomOffer is one priced room/date/occupancy combination returned by Search.
// Immutable once returned; never mutated downstream.
type RoomOffer struct {
	Code             string   `json:"code"` // opaque supplier identifier
	HotelID          string   `json:"hotelId"`
	HotelName        string   `json:"hotelName"`
	RoomType         string   `json:"roomType"`
	Board            string   `json:"board,omitempty"`
	CheckIn          string   `json:"checkIn"`
	CheckOut         string   `json:"checkOut"`
	Adults           int      `json:"adults"`
	ChildAges        []int    `json:"childAges,omitempty"`
	Price            float64  `json:"price"`
	Currency         string   `json:"currency"`
	CancellationType string   `json:"cancellationType,omitempty"`
	Images           []string `json:"images,omitempty"`
}

// SearchResult is the normalized outcome of a supplier search.
type SearchResult struct {
	Offers       []RoomOffer `json:"offers"`
	ProviderUsed string      `json:"providerUsed"`
}
