package gateway

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/specdraft/specdraft/internal/models"
)

// Status godoc
// @Summary Service health summary
// @Description Probe storage connectivity and Gemini reachability
// @Tags status
// @Produce json
// @Success 200 {object} models.StatusResponse
// @Failure 503 {object} models.StatusResponse
// @Router /status [get]
//
// Status never fails the request itself: every probe failure is
// downgraded to an error state for that probe only.
func (h *Handler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	status := models.StatusResponse{
		Backend:  models.HealthOK,
		Database: models.HealthDisconnected,
		Gemini:   models.HealthDisconnected,
	}

	if err := h.store.Ping(ctx); err != nil {
		status.Database = models.HealthError
		log.Printf(`{"level":"error","message":"Database connection error","error":"%v"}`, err)
	} else {
		status.Database = models.HealthConnected
	}

	if h.generator.CheckConnection(ctx) {
		status.Gemini = models.HealthConnected
	} else {
		status.Gemini = models.HealthError
	}

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, status)
}
