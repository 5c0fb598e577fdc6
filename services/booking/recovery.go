package booking

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"stayflow/models"
	"stayflow/retry"
	"stayflow/suppliers"
)

// refreshThreshold is the remaining hold time under which RefreshHoldIfNeeded
// proactively re-runs PreBook.
const refreshThreshold = 5 * time.Minute

// RecoverFromPreBookFailure re-runs the original search, locates the same
// offer by code in the fresh results, and re-attempts PreBook. If the offer
// is gone from the fresh results the failure is terminal: the room is no
// longer available and further retrying cannot bring it back.
func (s *DefaultService) RecoverFromPreBookFailure(ctx context.Context, query models.SearchQuery, code string) (*models.ReservationHold, error) {
	s.Logger.Info("recovering from prebook failure via re-search",
		zap.String("code", code))

	res := retry.Do(ctx, s.Logger, func() (*models.SearchResult, error) {
		return s.Router.SearchHotels(ctx, query)
	}, s.SearchRetry)
	if !res.Success() {
		return nil, res.Err
	}

	for _, offer := range res.Value.Offers {
		if offer.Code == code {
			return s.preBookWithRetry(ctx, offer)
		}
	}
	return nil, &RoomGoneError{Code: code}
}

// RefreshHoldIfNeeded re-runs PreBook for a hold that is about to expire,
// replacing it with a fresh one. Holds with more than five minutes left are
// left alone; absent holds are nothing to refresh.
func (s *DefaultService) RefreshHoldIfNeeded(ctx context.Context, code string) error {
	hold, err := s.Holds.Get(ctx, code)
	if err != nil {
		return err
	}
	if hold == nil || hold.Remaining(s.now()) >= refreshThreshold {
		return nil
	}

	var req suppliers.PreBookRequest
	if err := json.Unmarshal(hold.Snapshot.Raw, &req); err != nil {
		s.Logger.Error("hold snapshot unreadable, cannot refresh",
			zap.String("code", code),
			zap.Error(err))
		return err
	}

	offer := models.RoomOffer{
		Code:      req.Code,
		HotelID:   req.HotelID,
		CheckIn:   req.DateFrom,
		CheckOut:  req.DateTo,
		Adults:    req.Adults,
		ChildAges: req.Children,
	}
	if _, err := s.preBookWithRetry(ctx, offer); err != nil {
		return err
	}

	s.Logger.Info("hold refreshed before expiry", zap.String("code", code))
	return nil
}
