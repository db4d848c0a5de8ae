package analytics

import (
	"bytes"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/beauty-dashboard-backend/internal/logger"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/analytics", h.getSummary)
	app.Get("/api/v1/analytics/export", h.exportCSV)
}

func (h *Handler) getSummary(c *fiber.Ctx) error {
	top := DefaultTop
	if t := c.Query("top"); t != "" {
		if v, err := strconv.Atoi(t); err == nil && v > 0 {
			top = v
		}
	}

	summary, err := h.service.Summary(c.UserContext(), top)
	if err != nil {
		logger.FromCtx(c).Error("analytics summary", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "failed to read interactions"})
	}
	return c.JSON(summary)
}

func (h *Handler) exportCSV(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := h.service.Export(c.UserContext(), &buf); err != nil {
		logger.FromCtx(c).Error("analytics export", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "failed to export interactions"})
	}

	c.Attachment(ExportFileName)
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
