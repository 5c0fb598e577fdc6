package booking

import (
	"context"

	"go.uber.org/zap"

	"stayflow/models"
	"stayflow/retry"
	"stayflow/suppliers"
)

// Book runs Reserved -> Booking -> Booked. The validator must pass before any
// network call is attempted; a hold that died while the caller typed pushes
// them back to search. On success the hold is consumed; on failure it is
// invalidated so a stale token can never be replayed.
func (s *DefaultService) Book(ctx context.Context, sessionID, token string, guest models.GuestDetails, agencyRef string) (*models.BookingRecord, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	offer, ok := session.SelectedOffer()
	if !ok {
		return nil, &SessionError{SessionID: sessionID, Message: "no offer selected, run prebook first"}
	}

	hold, err := s.Holds.Get(ctx, offer.Code)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		session.State = models.StateIdle
		session.SelectedCode = ""
		s.saveSession(ctx, session)
		return nil, &TokenExpiredError{Code: offer.Code}
	}

	// Full pre-flight: all defects collected, no network round-trip wasted.
	check := s.Validator.ValidateBooking(ctx, offer.Code, token, guest, hold.ConfirmedPrice)
	for _, w := range check.Warnings {
		s.Logger.Warn("booking validation warning",
			zap.String("sessionId", sessionID),
			zap.String("warning", w))
	}
	if !check.Valid {
		return nil, check.Err()
	}

	session.State = models.StateBooking
	s.saveSession(ctx, session)

	res := retry.Do(ctx, s.Logger, func() (*models.BookResult, error) {
		return s.Router.BookRoom(ctx, suppliers.BookParams{
			Offer:           offer,
			Hold:            *hold,
			Guest:           guest,
			VoucherEmail:    guest.Email,
			AgencyReference: agencyRef,
		})
	}, s.BookRetry)

	if !res.Success() {
		// The token may have been burned upstream; never allow its reuse.
		if evictErr := s.Holds.Evict(ctx, offer.Code); evictErr != nil {
			s.Logger.Error("failed to invalidate hold after book failure",
				zap.String("code", offer.Code),
				zap.Error(evictErr))
		}
		session.State = models.StateFailed
		session.LastError = res.Err.Error()
		s.saveSession(ctx, session)
		return nil, res.Err
	}

	// Token consumed by the successful book.
	if err := s.Holds.Evict(ctx, offer.Code); err != nil {
		s.Logger.Error("failed to evict consumed hold",
			zap.String("code", offer.Code),
			zap.Error(err))
	}

	record := models.BookingRecord{
		BookingID:         res.Value.BookingID,
		SupplierReference: res.Value.SupplierReference,
		Status:            models.BookingConfirmed,
		ProviderUsed:      res.Value.ProviderUsed,
		Code:              offer.Code,
		HotelID:           offer.HotelID,
		CheckIn:           offer.CheckIn,
		CheckOut:          offer.CheckOut,
		Price:             hold.ConfirmedPrice,
		Currency:          hold.Currency,
		LeadGuest:         guest.FirstName + " " + guest.LastName,
		AgencyReference:   agencyRef,
		CreatedAt:         s.now(),
	}
	if s.Records != nil {
		// Archive failure must not turn a confirmed booking into an error.
		if err := s.Records.Create(ctx, record); err != nil {
			s.Logger.Error("failed to archive booking record",
				zap.String("bookingId", record.BookingID),
				zap.Error(err))
		}
	}

	session.State = models.StateBooked
	session.Booking = &record
	s.saveSession(ctx, session)

	s.Logger.Info("booking confirmed",
		zap.String("sessionId", sessionID),
		zap.String("bookingId", record.BookingID),
		zap.String("provider", record.ProviderUsed),
		zap.Int("attempts", res.Attempts))
	return &record, nil
}
