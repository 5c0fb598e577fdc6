package routes

import (
	"github.com/gin-gonic/gin"

	"stayflow/handlers"
	"stayflow/middleware"
)

// RegisterBookingRoutes registers all endpoints for the booking engine.
func RegisterBookingRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	api := r.Group("/api/booking")
	api.Use(middleware.AgencyAuthMiddleware())
	{
		api.POST("/search", bh.Search)                          // Phase 1: search availability
		api.GET("/session/:sessionID", bh.GetSession)           // Session state + hold countdown
		api.POST("/session/:sessionID/prebook", bh.PreBook)     // Phase 2: hold an offer
		api.POST("/session/:sessionID/book", bh.Book)           // Phase 3: confirm the booking
		api.POST("/cancel/:bookingID", bh.Cancel)               // Phase 4: cancel a booking
		api.GET("/bookings", bh.ListBookings)                   // Archive: agency's bookings
		api.GET("/cancellation/:bookingID", bh.GetCancellation) // Archive: cancel outcome
	}
}

// RegisterSystemRoutes registers health and token-issuing endpoints.
func RegisterSystemRoutes(r *gin.Engine) {
	r.GET("/health", handlers.Health)
	r.POST("/auth/token", handlers.IssueToken)
}
