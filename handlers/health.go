package handlers

import (
	"net/http"

	"chargesphere/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness plus the latest dependency probe.
type HealthHandler struct {
	Snapshot func() utils.HealthStatus
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{Snapshot: utils.GetHealthStatus}
}

// HealthCheck always answers 200 while the process serves; "degraded" flags a failed probe.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	snap := h.Snapshot()
	status := "ok"
	if !snap.Healthy() {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{"status": status, "message": "ChargeSphere API is running", "dependencies": snap})
}
