package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"chatdesk/internal/model"
	"chatdesk/internal/pkg/mongodb"
)

// HealthHandler reports liveness and store connectivity.
type HealthHandler struct {
	mongo *mongodb.Client
}

// NewHealthHandler creates the health handler. mongo may be nil when the
// server runs without a store.
func NewHealthHandler(mongo *mongodb.Client) *HealthHandler {
	return &HealthHandler{mongo: mongo}
}

// Health returns server status and whether the store answers a ping.
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.HealthResponse
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	connected := false
	if h.mongo != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		connected = h.mongo.Ping(ctx) == nil
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:         "Server is running",
		Timestamp:      time.Now().UTC(),
		StoreConnected: connected,
	})
}
