package handlers

import (
	"net/http"

	"astromitra/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles GET /health from the in-memory snapshot.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.DocumentStore {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
