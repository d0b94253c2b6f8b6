// Package health exposes the liveness endpoint every service serves.
package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler reports the service as healthy. The shape mirrors the contract
// the platform's dashboards already scrape.
func Handler(service string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"service":   service,
			"timestamp": time.Now().UTC(),
		})
	}
}
