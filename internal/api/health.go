package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler provides liveness and readiness endpoints.
//
// Responsibilities:
//   - /healthz: basic liveness probe (always 200 OK).
//   - /readyz: readiness probe, 200 once the trade dataset can be served.
type HealthHandler struct {
	ready func() error // reports whether the dataset is servable
}

// NewHealthHandler constructs a HealthHandler. ready is typically a closure
// that attempts a (cached) dataset load.
func NewHealthHandler(ready func() error) *HealthHandler {
	return &HealthHandler{ready: ready}
}

// Register mounts the health and readiness endpoints.
//
// Routes:
//   - GET /healthz: always 200 OK.
//   - GET /readyz: 200 when the dataset loads, 503 otherwise.
func (h *HealthHandler) Register(r *gin.Engine) {
	// @Summary      Liveness probe
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Router       /healthz [get]
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// @Summary      Readiness probe
	// @Tags         health
	// @Produce      json
	// @Success      200  {object}  map[string]string
	// @Failure      503  {object}  map[string]string
	// @Router       /readyz [get]
	r.GET("/readyz", func(c *gin.Context) {
		if h.ready == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		if err := h.ready(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
}
