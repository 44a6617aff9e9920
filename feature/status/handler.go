package status

import (
	"time"

	"listing-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleStatus)
	group.Get("/limits", h.HandleLimits)
	group.Get("/health", h.HandleHealth)

	app.Post("/schema/reload", h.HandleSchemaReload)
}

// HandleStatus returns the engine state.
// @Summary Status
// @Tags status
// @Produce json
// @Success 200 {object} Report
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Status())
}

// HandleLimits returns the listing counters.
// @Summary Listing Limits
// @Tags status
// @Produce json
// @Success 200 {object} listingapi.Limits
// @Failure 502 {object} map[string]string "Listing service error"
// @Router /status/limits [get]
func (h *Handler) HandleLimits(c *fiber.Ctx) error {
	limits, err := h.service.Limits(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to read listing limits", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(limits)
}

// HandleHealth probes the listing service.
// @Summary Listing Service Health
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Failure 503 {object} map[string]string "Unreachable"
// @Router /status/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	start := time.Now()
	size, err := h.service.Health(c.Context())
	elapsed := time.Since(start)

	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Listing service health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"status":     "healthy",
		"bytes":      size,
		"latency_ms": elapsed.Milliseconds(),
	})
}

// HandleSchemaReload rebuilds the item schema.
// @Summary Reload Schema
// @Description Reloads the item schema from storage or the database. The previous schema stays active on failure.
// @Tags status
// @Produce json
// @Success 200 {object} map[string]interface{} "Reloaded"
// @Failure 500 {object} map[string]string "Reload failed"
// @Router /schema/reload [post]
func (h *Handler) HandleSchemaReload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Reloading item schema")

	start := time.Now()
	items, err := h.service.ReloadSchema(c.Context())
	if err != nil {
		l.Error("Schema reload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Schema reloaded", zap.Int("items", items), zap.Duration("duration", time.Since(start)))
	return c.JSON(fiber.Map{"status": "reloaded", "items": items})
}
