package handlers

import (
	"net/http"

	"jenga/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
}
