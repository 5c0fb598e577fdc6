package booking

import (
	"context"

	"go.uber.org/zap"

	"stayflow/models"
	"stayflow/suppliers"
)

// Cancel runs Booked -> Cancelling -> Cancelled. A cancel failure is reported
// to the caller and leaves the session Booked; it is never silently treated
// as success. sessionID may be empty when the caller only has the booking ID.
func (s *DefaultService) Cancel(ctx context.Context, sessionID, bookingID string) (*models.CancelResult, error) {
	var session *models.BookingSession
	if sessionID != "" {
		loaded, err := s.loadSession(ctx, sessionID)
		if err == nil {
			session = loaded
			session.State = models.StateCancelling
			s.saveSession(ctx, session)
		}
	}

	ref := suppliers.CancelRef{BookingID: bookingID}
	if s.Records != nil {
		record, err := s.Records.GetByID(ctx, bookingID)
		if err == nil && record == nil {
			s.Logger.Warn("cancelling a booking missing from the archive",
				zap.String("bookingId", bookingID))
		}
	}

	result, err := s.Router.CancelRoom(ctx, ref)

	outcome := models.CancellationOutcome{BookingID: bookingID, CreatedAt: s.now()}
	if err != nil {
		outcome.Success = false
		outcome.Reason = err.Error()
	} else {
		outcome.Success = result.Success
		outcome.Penalty = result.Penalty
		outcome.ProviderUsed = result.ProviderUsed
		if !result.Success {
			outcome.Reason = "supplier declined cancellation"
		}
	}
	if s.Records != nil {
		if archErr := s.Records.CreateCancellation(ctx, outcome); archErr != nil {
			s.Logger.Error("failed to archive cancellation outcome",
				zap.String("bookingId", bookingID),
				zap.Error(archErr))
		}
	}

	if err != nil || !result.Success {
		if session != nil {
			session.State = models.StateBooked
			s.saveSession(ctx, session)
		}
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	if session != nil {
		session.State = models.StateCancelled
		s.saveSession(ctx, session)
	}
	s.Logger.Info("booking cancelled",
		zap.String("bookingId", bookingID),
		zap.String("provider", result.ProviderUsed))
	return result, nil
}
