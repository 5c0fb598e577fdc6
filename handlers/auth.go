package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"stayflow/config"
	"stayflow/utils"
)

// agencyTokenTTL bounds how long an issued agency token stays valid.
const agencyTokenTTL = 24 * time.Hour

// IssueToken mints an agency JWT for the booking API. Guarded by the admin
// API key; issuance is disabled entirely when no key is configured.
func IssueToken(c *gin.Context) {
	adminKey := config.AppConfig.AdminAPIKey
	if adminKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "token issuance is not enabled"})
		return
	}
	if c.GetHeader("X-Admin-Key") != adminKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
		return
	}

	var input struct {
		AgencyID string `json:"agencyId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	token, err := utils.GenerateToken(input.AgencyID, agencyTokenTTL)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(agencyTokenTTL.Seconds()),
	})
}
