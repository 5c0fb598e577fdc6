package booking

import (
	"context"

	"go.uber.org/zap"

	"stayflow/cache"
	"stayflow/models"
	"stayflow/retry"
)

// PreBook runs Priced -> Reserving -> Reserved for one offer the caller
// selected. On success the hold is already in the store before this returns,
// and the caller gets the token plus the countdown.
func (s *DefaultService) PreBook(ctx context.Context, sessionID, code string) (*HoldInfo, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	offer, ok := session.FindOffer(code)
	if !ok {
		return nil, &SessionError{SessionID: sessionID, Message: "offer " + code + " is not part of this session's results"}
	}

	session.State = models.StateReserving
	session.SelectedCode = code
	s.saveSession(ctx, session)

	hold, err := s.preBookWithRetry(ctx, offer)
	if err != nil {
		if retry.Retryable(err) {
			// Budget exhausted on transient failures: try once to recover by
			// re-searching and re-holding the same offer.
			hold, err = s.RecoverFromPreBookFailure(ctx, session.Query, code)
		}
		if err != nil {
			session.State = models.StateFailed
			session.LastError = err.Error()
			s.saveSession(ctx, session)
			return nil, err
		}
	}

	session.State = models.StateReserved
	session.ProviderUsed = hold.ProviderUsed
	s.saveSession(ctx, session)

	s.Logger.Info("offer held",
		zap.String("sessionId", sessionID),
		zap.String("code", code),
		zap.String("provider", hold.ProviderUsed),
		zap.Time("expiresAt", hold.ExpiresAt))

	return &HoldInfo{
		Code:             hold.Code,
		Token:            hold.Token,
		ConfirmedPrice:   hold.ConfirmedPrice,
		Currency:         hold.Currency,
		ProviderUsed:     hold.ProviderUsed,
		RemainingMinutes: cache.RemainingMinutes(ctx, s.Holds, code),
	}, nil
}

// preBookWithRetry runs the supplier PreBook under the default retry budget
// and writes the resulting hold into the store before returning.
func (s *DefaultService) preBookWithRetry(ctx context.Context, offer models.RoomOffer) (*models.ReservationHold, error) {
	type preBookOutcome struct {
		result   *models.PreBookResult
		snapshot models.RequestSnapshot
	}

	res := retry.Do(ctx, s.Logger, func() (preBookOutcome, error) {
		result, snapshot, err := s.Router.PreBook(ctx, offer)
		return preBookOutcome{result: result, snapshot: snapshot}, err
	}, s.PreBookRetry)
	if !res.Success() {
		return nil, res.Err
	}

	hold, err := s.Holds.Save(ctx, models.ReservationHold{
		Code:           offer.Code,
		Token:          res.Value.result.Token,
		PreBookID:      res.Value.result.PreBookID,
		ConfirmedPrice: res.Value.result.ConfirmedPrice,
		Currency:       res.Value.result.Currency,
		Snapshot:       res.Value.snapshot,
		ProviderUsed:   res.Value.result.ProviderUsed,
	})
	if err != nil {
		return nil, err
	}
	if s.OnHoldSaved != nil {
		s.OnHoldSaved(hold)
	}
	return &hold, nil
}
