package handler

import (
	"net/http"
	"time"

	"github.com/Payphone-Digital/accounts/internal/constants"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	now func() time.Time
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{now: time.Now}
}

// BasicHealth is a liveness probe; it does not check dependencies.
func (h *HealthHandler) BasicHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   constants.AppVersion,
	})
}
