package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/billmaster-api/internal/presentation/http/dto/response"
)

// HealthHandler answers liveness probes
type HealthHandler struct {
	appName string
	storage string
	started time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(appName, storage string) *HealthHandler {
	return &HealthHandler{appName: appName, storage: storage, started: time.Now()}
}

// Health reports that the process is up
func (h *HealthHandler) Health(c *gin.Context) {
	response.OK(c, "OK", gin.H{
		"status":  "healthy",
		"service": h.appName,
		"storage": h.storage,
		"uptime":  time.Since(h.started).Round(time.Second).String(),
	})
}
