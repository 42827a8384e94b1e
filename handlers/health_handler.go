package handlers

import (
	"context"
	"net/http"
	"time"

	"neighborhelp-backend/logging"

	"github.com/gin-gonic/gin"
)

// Pinger is satisfied by *pgxpool.Pool
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports liveness of the server and its database
type HealthHandler struct {
	db  Pinger
	log logging.Logger
}

// NewHealthHandler creates a health handler. A nil db reports ok, which is
// the case for the in-memory driver.
func NewHealthHandler(db Pinger, log logging.Logger) *HealthHandler {
	return &HealthHandler{db: db, log: log}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := h.db.Ping(ctx); err != nil {
			h.log.Error(ctx, "health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
