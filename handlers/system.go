package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"stayflow/utils"
)

// Health reports the latest stored dependency health snapshot.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, utils.GetHealthStatus())
}
