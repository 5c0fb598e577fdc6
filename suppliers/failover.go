package suppliers

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"stayflow/models"
)

// Router drives every supplier operation across the primary/secondary pair.
// Failover policy is decided here and only here: a primary failure whose
// status is in the whitelist falls through to the secondary, anything else
// propagates untouched. The router never retries the same provider; retry is
// a separate concern layered above it.
type Router struct {
	Primary   Client
	Secondary Client

	// Statuses on which a primary failure is eligible for failover.
	FailoverStatuses []int

	Logger *zap.Logger
}

// NewRouter wires a failover router over the given provider pair.
func NewRouter(primary, secondary Client, failoverStatuses []int, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Router{
		Primary:          primary,
		Secondary:        secondary,
		FailoverStatuses: failoverStatuses,
		Logger:           logger,
	}
}

// BookParams carries everything the Book wire call needs.
type BookParams struct {
	Offer           models.RoomOffer
	Hold            models.ReservationHold
	Guest           models.GuestDetails
	VoucherEmail    string
	AgencyReference string
}

// CancelRef identifies the reservation to cancel on the supplier side.
type CancelRef struct {
	BookingID string
	PreBookID string
}

// FailoverEligible reports whether a primary failure with this error may fall
// over to the secondary supplier.
func (r *Router) FailoverEligible(err error) bool {
	status := StatusOf(err)
	if status == 0 {
		return false
	}
	for _, s := range r.FailoverStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// SearchHotels runs Search across the pair and normalizes the winning
// response into offers carrying the query's dates and occupancy.
func (r *Router) SearchHotels(ctx context.Context, q models.SearchQuery) (*models.SearchResult, error) {
	req := SearchRequest{
		DateFrom:  q.DateFrom,
		DateTo:    q.DateTo,
		HotelName: q.HotelName,
		City:      q.City,
		Stars:     q.Stars,
		Limit:     q.Limit,
	}
	for _, p := range q.Pax {
		req.Pax = append(req.Pax, PaxItem{Adults: p.Adults, Children: p.Children})
	}

	resp, provider, err := failover(ctx, r, "search", func(c Client) (*SearchResponse, error) {
		return c.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	result := &models.SearchResult{ProviderUsed: provider}
	for _, raw := range resp.Offers {
		result.Offers = append(result.Offers, models.RoomOffer{
			Code:             raw.Code,
			HotelID:          raw.HotelID,
			HotelName:        raw.HotelName,
			RoomType:         raw.RoomType,
			Board:            raw.Board,
			CheckIn:          q.DateFrom,
			CheckOut:         q.DateTo,
			Adults:           q.TotalAdults(),
			ChildAges:        q.ChildAges(),
			Price:            raw.Price,
			Currency:         raw.Currency,
			CancellationType: raw.CancellationType,
			Images:           raw.Images,
		})
	}
	return result, nil
}

// PreBook locks price and availability for one offer. The request payload is
// snapshotted so Book can later re-derive the same upstream context.
func (r *Router) PreBook(ctx context.Context, offer models.RoomOffer) (*models.PreBookResult, models.RequestSnapshot, error) {
	req := PreBookRequest{
		Code:     offer.Code,
		DateFrom: offer.CheckIn,
		DateTo:   offer.CheckOut,
		HotelID:  offer.HotelID,
		Adults:   offer.Adults,
		Children: offer.ChildAges,
	}

	raw, _ := json.Marshal(req)
	snapshot := models.RequestSnapshot{Raw: raw, SchemaVersion: 1}

	resp, provider, err := failover(ctx, r, "prebook", func(c Client) (*PreBookResponse, error) {
		return c.PreBook(ctx, req)
	})
	if err != nil {
		return nil, snapshot, err
	}
	if resp.Status != "done" {
		return nil, snapshot, &StatusError{
			Provider: provider,
			Op:       "prebook",
			Status:   0,
			Body:     "prebook status " + resp.Status,
		}
	}

	return &models.PreBookResult{
		Code:           offer.Code,
		Token:          resp.Token,
		PreBookID:      resp.PreBookID,
		ConfirmedPrice: resp.PriceConfirmed,
		Currency:       resp.Currency,
		ProviderUsed:   provider,
	}, snapshot, nil
}

// BookRoom confirms a held reservation. Success is reported only when the
// upstream explicitly answered status "confirmed" with a booking ID.
func (r *Router) BookRoom(ctx context.Context, p BookParams) (*models.BookResult, error) {
	req := BookRequest{
		Code:      p.Offer.Code,
		Token:     p.Hold.Token,
		PreBookID: p.Hold.PreBookID,
		DateFrom:  p.Offer.CheckIn,
		DateTo:    p.Offer.CheckOut,
		HotelID:   p.Offer.HotelID,
		Adults:    p.Offer.Adults,
		Children:  p.Offer.ChildAges,
		Customer: Customer{
			Title:     p.Guest.Title,
			FirstName: p.Guest.FirstName,
			LastName:  p.Guest.LastName,
			Email:     p.Guest.Email,
			Phone:     p.Guest.Phone,
			Country:   p.Guest.Country,
			City:      p.Guest.City,
			Address:   p.Guest.Address,
			Zip:       p.Guest.PostalCode,
		},
		VoucherEmail:    p.VoucherEmail,
		AgencyReference: p.AgencyReference,
	}

	resp, provider, err := failover(ctx, r, "book", func(c Client) (*BookResponse, error) {
		return c.Book(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if resp.Status != "confirmed" || resp.BookingID == "" {
		return nil, &StatusError{
			Provider: provider,
			Op:       "book",
			Status:   0,
			Body:     "booking not confirmed by supplier (status " + resp.Status + ")",
		}
	}

	return &models.BookResult{
		BookingID:         resp.BookingID,
		SupplierReference: resp.SupplierReference,
		Status:            models.BookingConfirmed,
		ProviderUsed:      provider,
	}, nil
}

// CancelRoom cancels a confirmed booking on whichever supplier answers.
func (r *Router) CancelRoom(ctx context.Context, ref CancelRef) (*models.CancelResult, error) {
	req := CancelRequest{BookingID: ref.BookingID, PreBookID: ref.PreBookID}

	resp, provider, err := failover(ctx, r, "cancel", func(c Client) (*CancelResponse, error) {
		return c.Cancel(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return &models.CancelResult{
		Success:      resp.Success,
		Penalty:      resp.Penalty,
		ProviderUsed: provider,
	}, nil
}

// failover runs one operation primary-first with whitelist-gated fallback.
// Shape is identical for all four operations.
func failover[T any](ctx context.Context, r *Router, op string, call func(Client) (T, error)) (T, string, error) {
	var zero T

	primaryErr := error(nil)
	if r.Primary != nil && r.Primary.IsConfigured() {
		start := time.Now()
		out, err := call(r.Primary)
		elapsed := time.Since(start)
		if err == nil {
			r.Logger.Info("supplier call succeeded",
				zap.String("provider", r.Primary.Name()),
				zap.String("op", op),
				zap.Duration("elapsed", elapsed))
			return out, r.Primary.Name(), nil
		}
		r.Logger.Warn("primary supplier call failed",
			zap.String("provider", r.Primary.Name()),
			zap.String("op", op),
			zap.Int("status", StatusOf(err)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))

		if !r.FailoverEligible(err) {
			// Business-logic failure: propagate untouched, no fallback.
			return zero, r.Primary.Name(), err
		}
		primaryErr = err
	}

	if r.Secondary != nil && r.Secondary.IsConfigured() {
		r.Logger.Info("failing over to secondary supplier",
			zap.String("op", op),
			zap.Int("primaryStatus", StatusOf(primaryErr)))
		start := time.Now()
		out, err := call(r.Secondary)
		elapsed := time.Since(start)
		if err == nil {
			r.Logger.Info("supplier call succeeded",
				zap.String("provider", r.Secondary.Name()),
				zap.String("op", op),
				zap.Duration("elapsed", elapsed))
			return out, r.Secondary.Name(), nil
		}
		r.Logger.Warn("secondary supplier call failed",
			zap.String("provider", r.Secondary.Name()),
			zap.String("op", op),
			zap.Int("status", StatusOf(err)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		if !r.FailoverEligible(err) {
			return zero, r.Secondary.Name(), err
		}
	}

	return zero, "", &NoProviderError{Op: op}
}
