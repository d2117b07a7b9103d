package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/config"
)

// HealthController reports service liveness
type HealthController struct {
	cfg *config.Config
}

// NewHealthController creates a new HealthController
func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{cfg: cfg}
}

// Check returns service status and effective rate-limit settings
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse "Service status"
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		Mode:   c.cfg.Server.Mode,
		RateLimit: dto.RateLimitInfo{
			Enabled:           c.cfg.RateLimit.Enabled,
			RequestsPerWindow: c.cfg.RateLimit.RequestsPerWindow,
			WindowSeconds:     c.cfg.RateLimit.WindowSeconds,
		},
	})
}
