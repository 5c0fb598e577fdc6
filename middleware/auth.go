package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"stayflow/utils"
)

// AgencyAuthMiddleware guards the booking API. Callers present a bearer JWT
// issued to their agency; the agency ID lands in the request context.
func AgencyAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		agencyID, err := utils.ExtractAgencyID(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("agencyID", agencyID)
		c.Next()
	}
}
