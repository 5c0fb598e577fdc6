package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stayflow/cache"
	"stayflow/models"
	"stayflow/retry"
)

// errEmptyResults marks a search that came back with zero offers. Supplier
// emptiness is frequently transient, so the retry loop treats it as
// retryable; only after the budget is spent does it become "no availability".
var errEmptyResults = errors.New("supplier returned no offers")

// Search runs Idle -> Searching -> Priced. An empty result set after the full
// retry budget is a valid terminal outcome, not an error: the session lands
// in Priced with zero offers.
func (s *DefaultService) Search(ctx context.Context, sessionID string, query models.SearchQuery) (*models.BookingSession, error) {
	if dates := s.Validator.ValidateDates(query.DateFrom, query.DateTo); !dates.Valid {
		return nil, dates.Err()
	}
	if guests := s.Validator.ValidateGuests(query.TotalAdults(), query.ChildAges()); !guests.Valid {
		return nil, guests.Err()
	}
	if (query.City == "") == (query.HotelName == "") {
		return nil, (&ValidationResult{Errors: []string{"exactly one of city or hotel name must be set"}}).Err()
	}

	session := &models.BookingSession{
		SessionID: sessionID,
		Query:     query,
		CreatedAt: s.now(),
	}
	if sessionID == "" {
		session.SessionID = uuid.New().String()
	}
	session.State = models.StateSearching

	res := retry.Do(ctx, s.Logger, func() (*models.SearchResult, error) {
		result, err := s.Router.SearchHotels(ctx, query)
		if err != nil {
			return nil, err
		}
		if len(result.Offers) == 0 {
			return nil, errEmptyResults
		}
		return result, nil
	}, s.SearchRetry)

	switch {
	case res.Success():
		session.Offers = res.Value.Offers
		session.ProviderUsed = res.Value.ProviderUsed
		session.State = models.StatePriced
	case errors.Is(res.Err, errEmptyResults):
		// No availability: terminal but not a failure.
		session.Offers = nil
		session.State = models.StatePriced
	default:
		session.State = models.StateFailed
		session.LastError = res.Err.Error()
		s.saveSession(ctx, session)
		return nil, res.Err
	}

	s.saveSession(ctx, session)
	s.Logger.Info("search completed",
		zap.String("sessionId", session.SessionID),
		zap.Int("offers", len(session.Offers)),
		zap.Int("attempts", res.Attempts))
	return session, nil
}

// GetSession returns a session plus the hold countdown in minutes for its
// selected offer (zero when nothing is held).
func (s *DefaultService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, int, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, 0, err
	}

	remaining := 0
	if session.SelectedCode != "" {
		remaining = cache.RemainingMinutes(ctx, s.Holds, session.SelectedCode)
		if remaining == 0 && session.State == models.StateReserved {
			// The hold died under the session; push the caller back to search.
			session.State = models.StateIdle
			s.saveSession(ctx, session)
		}
	}
	return session, remaining, nil
}

func (s *DefaultService) loadSession(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	if sessionID == "" {
		return nil, &SessionError{SessionID: sessionID, Message: "session id required"}
	}
	var session models.BookingSession
	if err := s.Sessions.Get(ctx, sessionID, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *DefaultService) saveSession(ctx context.Context, session *models.BookingSession) {
	session.UpdatedAt = s.now()
	if err := s.Sessions.Put(ctx, session.SessionID, session); err != nil {
		s.Logger.Error("failed to persist booking session",
			zap.String("sessionId", session.SessionID),
			zap.Error(err))
	}
}
