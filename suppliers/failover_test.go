package suppliers

import (
	"context"
	"errors"
	"testing"

	"stayflow/models"
)

// stubClient scripts one supplier's behavior per operation and counts calls.
type stubClient struct {
	name       string
	configured bool

	searchResp  *SearchResponse
	searchErr   error
	searchCalls int

	preBookResp  *PreBookResponse
	preBookErr   error
	preBookCalls int

	bookResp  *BookResponse
	bookErr   error
	bookCalls int

	cancelResp  *CancelResponse
	cancelErr   error
	cancelCalls int
}

func (s *stubClient) Name() string       { return s.name }
func (s *stubClient) IsConfigured() bool { return s.configured }

func (s *stubClient) Search(context.Context, SearchRequest) (*SearchResponse, error) {
	s.searchCalls++
	return s.searchResp, s.searchErr
}

func (s *stubClient) PreBook(context.Context, PreBookRequest) (*PreBookResponse, error) {
	s.preBookCalls++
	return s.preBookResp, s.preBookErr
}

func (s *stubClient) Book(context.Context, BookRequest) (*BookResponse, error) {
	s.bookCalls++
	return s.bookResp, s.bookErr
}

func (s *stubClient) Cancel(context.Context, CancelRequest) (*CancelResponse, error) {
	s.cancelCalls++
	return s.cancelResp, s.cancelErr
}

var testFailoverStatuses = []int{401, 403, 500, 501, 503}

func testQuery() models.SearchQuery {
	return models.SearchQuery{
		DateFrom: "2025-09-10",
		DateTo:   "2025-09-13",
		City:     "Lisbon",
		Pax:      []models.PaxRoom{{Adults: 2}},
	}
}

func TestFailoverOnWhitelistedStatus(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		searchErr:  &StatusError{Provider: "alpha", Op: "search", Status: 403, Body: "denied"},
	}
	secondary := &stubClient{
		name:       "beta",
		configured: true,
		searchResp: &SearchResponse{Offers: []RawOffer{{Code: "R1", Price: 450, Currency: "USD"}}},
	}
	r := NewRouter(primary, secondary, testFailoverStatuses, nil)

	result, err := r.SearchHotels(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if primary.searchCalls != 1 || secondary.searchCalls != 1 {
		t.Fatalf("calls primary=%d secondary=%d, want 1/1", primary.searchCalls, secondary.searchCalls)
	}
	if result.ProviderUsed != "beta" {
		t.Fatalf("providerUsed = %q, want beta", result.ProviderUsed)
	}
	if len(result.Offers) != 1 || result.Offers[0].Code != "R1" {
		t.Fatalf("unexpected offers: %+v", result.Offers)
	}
}

func TestNoFailoverOnBusinessError(t *testing.T) {
	primaryErr := &StatusError{Provider: "alpha", Op: "search", Status: 400, Body: "bad request"}
	primary := &stubClient{name: "alpha", configured: true, searchErr: primaryErr}
	secondary := &stubClient{name: "beta", configured: true}
	r := NewRouter(primary, secondary, testFailoverStatuses, nil)

	_, err := r.SearchHotels(context.Background(), testQuery())
	if err == nil {
		t.Fatalf("expected the primary error to propagate")
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Status != 400 {
		t.Fatalf("expected status 400 propagated untouched, got %v", err)
	}
	if secondary.searchCalls != 0 {
		t.Fatalf("secondary was called %d times on a non-eligible failure", secondary.searchCalls)
	}
}

func TestBothProvidersExhausted(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		searchErr:  &StatusError{Provider: "alpha", Op: "search", Status: 500, Body: "boom"},
	}
	secondary := &stubClient{
		name:       "beta",
		configured: true,
		searchErr:  &StatusError{Provider: "beta", Op: "search", Status: 503, Body: "down"},
	}
	r := NewRouter(primary, secondary, testFailoverStatuses, nil)

	_, err := r.SearchHotels(context.Background(), testQuery())
	var npe *NoProviderError
	if !errors.As(err, &npe) {
		t.Fatalf("expected NoProviderError, got %v", err)
	}
	if npe.Op != "search" {
		t.Fatalf("op = %q, want search", npe.Op)
	}
}

func TestUnconfiguredPrimarySkipped(t *testing.T) {
	primary := &stubClient{name: "alpha", configured: false}
	secondary := &stubClient{
		name:       "beta",
		configured: true,
		searchResp: &SearchResponse{Offers: []RawOffer{{Code: "R1"}}},
	}
	r := NewRouter(primary, secondary, testFailoverStatuses, nil)

	result, err := r.SearchHotels(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("search error: %v", err)
	}
	if primary.searchCalls != 0 {
		t.Fatalf("unconfigured primary must not be called")
	}
	if result.ProviderUsed != "beta" {
		t.Fatalf("providerUsed = %q, want beta", result.ProviderUsed)
	}
}

func TestNeitherProviderConfigured(t *testing.T) {
	r := NewRouter(&stubClient{name: "alpha"}, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	_, err := r.SearchHotels(context.Background(), testQuery())
	var npe *NoProviderError
	if !errors.As(err, &npe) {
		t.Fatalf("expected NoProviderError, got %v", err)
	}
}

func TestSearchNormalizesOffers(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		searchResp: &SearchResponse{Offers: []RawOffer{{
			Code: "R1", HotelID: "H9", HotelName: "Hotel Rio",
			RoomType: "double", Board: "BB", Price: 450, Currency: "USD",
		}}},
	}
	r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	q := testQuery()
	q.Pax = []models.PaxRoom{{Adults: 2, Children: []int{4, 9}}, {Adults: 1}}
	result, err := r.SearchHotels(context.Background(), q)
	if err != nil {
		t.Fatalf("search error: %v", err)
	}

	offer := result.Offers[0]
	if offer.CheckIn != q.DateFrom || offer.CheckOut != q.DateTo {
		t.Fatalf("offer dates %s/%s, want %s/%s", offer.CheckIn, offer.CheckOut, q.DateFrom, q.DateTo)
	}
	if offer.Adults != 3 {
		t.Fatalf("offer adults = %d, want 3", offer.Adults)
	}
	if len(offer.ChildAges) != 2 || offer.ChildAges[0] != 4 || offer.ChildAges[1] != 9 {
		t.Fatalf("offer child ages = %v, want [4 9]", offer.ChildAges)
	}
}

func TestPreBookRequiresDoneStatus(t *testing.T) {
	primary := &stubClient{
		name:        "alpha",
		configured:  true,
		preBookResp: &PreBookResponse{Token: "tok", Status: "pending"},
	}
	r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	_, _, err := r.PreBook(context.Background(), models.RoomOffer{Code: "R1"})
	if err == nil {
		t.Fatalf("expected an error for prebook status other than done")
	}
}

func TestPreBookSnapshotsRequest(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		preBookResp: &PreBookResponse{
			Token: "tok-1", PreBookID: "pb-1", Status: "done",
			PriceConfirmed: 455, Currency: "USD",
		},
	}
	r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	offer := models.RoomOffer{Code: "R1", HotelID: "H9", CheckIn: "2025-09-10", CheckOut: "2025-09-13", Adults: 2}
	result, snapshot, err := r.PreBook(context.Background(), offer)
	if err != nil {
		t.Fatalf("prebook error: %v", err)
	}
	if result.Token != "tok-1" || result.ConfirmedPrice != 455 {
		t.Fatalf("unexpected prebook result: %+v", result)
	}
	if len(snapshot.Raw) == 0 || snapshot.SchemaVersion != 1 {
		t.Fatalf("expected a versioned request snapshot, got %+v", snapshot)
	}
}

func TestBookRequiresConfirmedWithID(t *testing.T) {
	cases := []struct {
		name string
		resp *BookResponse
	}{
		{"wrong status", &BookResponse{BookingID: "B1", Status: "pending"}},
		{"missing id", &BookResponse{Status: "confirmed"}},
	}
	for _, tc := range cases {
		primary := &stubClient{name: "alpha", configured: true, bookResp: tc.resp}
		r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

		_, err := r.BookRoom(context.Background(), BookParams{
			Offer: models.RoomOffer{Code: "R1"},
			Hold:  models.ReservationHold{Token: "tok"},
		})
		if err == nil {
			t.Fatalf("%s: expected an error", tc.name)
		}
	}
}

func TestBookSuccess(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		bookResp:   &BookResponse{BookingID: "B1", SupplierReference: "SR-7", Status: "confirmed"},
	}
	r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	result, err := r.BookRoom(context.Background(), BookParams{
		Offer: models.RoomOffer{Code: "R1"},
		Hold:  models.ReservationHold{Token: "tok"},
		Guest: models.GuestDetails{FirstName: "Ana", LastName: "Silva"},
	})
	if err != nil {
		t.Fatalf("book error: %v", err)
	}
	if result.BookingID != "B1" || result.Status != models.BookingConfirmed {
		t.Fatalf("unexpected book result: %+v", result)
	}
	if result.ProviderUsed != "alpha" {
		t.Fatalf("providerUsed = %q, want alpha", result.ProviderUsed)
	}
}

func TestCancelReportsPenalty(t *testing.T) {
	primary := &stubClient{
		name:       "alpha",
		configured: true,
		cancelResp: &CancelResponse{Success: true, Penalty: 50},
	}
	r := NewRouter(primary, &stubClient{name: "beta"}, testFailoverStatuses, nil)

	result, err := r.CancelRoom(context.Background(), CancelRef{BookingID: "B1"})
	if err != nil {
		t.Fatalf("cancel error: %v", err)
	}
	if !result.Success || result.Penalty != 50 {
		t.Fatalf("unexpected cancel result: %+v", result)
	}
}
