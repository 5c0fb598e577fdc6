package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"stayflow/cache"
	bookingsRepo "stayflow/database/repository/bookings"
	"stayflow/models"
	"stayflow/services/booking"
	"stayflow/suppliers"
	"stayflow/utils"
)

// BookingHandler exposes the four protocol operations over HTTP. The UI layer
// only ever sees plain result objects; suppliers, holds, and retry policy stay
// behind the service. The repository is read-only here, for archive lookups.
type BookingHandler struct {
	Service booking.Service
	Records bookingsRepo.BookingRepository
}

func NewBookingHandler(service booking.Service, records bookingsRepo.BookingRepository) *BookingHandler {
	return &BookingHandler{Service: service, Records: records}
}

// Search starts (or restarts) a session and runs the availability search.
func (h *BookingHandler) Search(c *gin.Context) {
	var input struct {
		SessionID string             `json:"sessionId"`
		Query     models.SearchQuery `json:"query"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	session, err := h.Service.Search(c.Request.Context(), input.SessionID, input.Query)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	resp := gin.H{
		"sessionId": session.SessionID,
		"state":     session.State,
		"offers":    session.Offers,
	}
	if len(session.Offers) == 0 {
		resp["message"] = "no availability for these dates"
	}
	c.JSON(http.StatusOK, resp)
}

// PreBook holds the selected offer and returns the token with its countdown.
func (h *BookingHandler) PreBook(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hold, err := h.Service.PreBook(c.Request.Context(), sessionID, input.Code)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, hold)
}

// Book confirms the held reservation with the caller's guest details.
func (h *BookingHandler) Book(c *gin.Context) {
	sessionID := c.Param("sessionID")
	var input struct {
		Token string              `json:"token" binding:"required"`
		Guest models.GuestDetails `json:"guest"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	record, err := h.Service.Book(c.Request.Context(), sessionID, input.Token, input.Guest, c.GetString("agencyID"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// Cancel cancels a confirmed booking.
func (h *BookingHandler) Cancel(c *gin.Context) {
	bookingID := c.Param("bookingID")
	var input struct {
		SessionID string `json:"sessionId"`
	}
	// Body is optional; callers with only a booking ID send none.
	_ = c.ShouldBindJSON(&input)

	result, err := h.Service.Cancel(c.Request.Context(), input.SessionID, bookingID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "supplier declined the cancellation",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetSession reports the session state and the hold countdown.
func (h *BookingHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("sessionID")

	session, remaining, err := h.Service.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":          session,
		"remainingMinutes": remaining,
	})
}

// ListBookings returns every archived booking placed by the calling agency.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	agencyID := c.GetString("agencyID")

	records, err := h.Records.ListByAgencyReference(c.Request.Context(), agencyID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list bookings", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

// GetCancellation returns the archived outcome of a cancel attempt.
func (h *BookingHandler) GetCancellation(c *gin.Context) {
	bookingID := c.Param("bookingID")

	outcome, err := h.Records.GetCancellation(c.Request.Context(), bookingID)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to load cancellation", err.Error())
		return
	}
	if outcome == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cancellation recorded for " + bookingID})
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// respondServiceError maps the service error taxonomy onto HTTP statuses with
// a human-readable reason.
func respondServiceError(c *gin.Context, err error) {
	var (
		validationErr *booking.ValidationError
		tokenErr      *booking.TokenExpiredError
		roomGoneErr   *booking.RoomGoneError
		sessionErr    *booking.SessionError
		noProviderErr *suppliers.NoProviderError
		statusErr     *suppliers.StatusError
	)

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "validation failed",
			"errors":   validationErr.Errors,
			"warnings": validationErr.Warnings,
		})
	case errors.As(err, &tokenErr):
		c.JSON(http.StatusGone, gin.H{"error": tokenErr.Error()})
	case errors.As(err, &roomGoneErr):
		c.JSON(http.StatusGone, gin.H{"error": roomGoneErr.Error()})
	case errors.As(err, &sessionErr):
		c.JSON(http.StatusNotFound, gin.H{"error": sessionErr.Error()})
	case errors.Is(err, cache.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
	case errors.As(err, &noProviderErr):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": noProviderErr.Error()})
	case errors.As(err, &statusErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": statusErr.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}
