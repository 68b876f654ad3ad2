package handler

import (
	"context"
	"time"

	"quiz-synth/internal/domain"
	"quiz-synth/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

// HealthHandler reports service health
type HealthHandler struct {
	cache domain.Cache
}

// NewHealthHandler creates a HealthHandler. cache may be nil.
func NewHealthHandler(cache domain.Cache) *HealthHandler {
	return &HealthHandler{cache: cache}
}

// Check handles GET /health. The service stays up without its cache, so a
// failing cache degrades the report instead of failing it.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			logger.Get().Warn("Cache health check failed", zap.Error(err))
			cacheStatus = "unavailable"
		} else {
			cacheStatus = "ok"
		}
	}
	return c.JSON(fiber.Map{"status": "ok", "cache": cacheStatus})
}
