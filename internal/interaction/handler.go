package interaction

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
	"github.com/wichananm65/beauty-dashboard-backend/internal/logger"
)

const defaultRecentLimit = 100

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/interactions", h.getInteractions)
	app.Post("/api/v1/interactions", h.saveInteraction)
}

type saveRequest struct {
	Brand    string `json:"brand"`
	SkinType string `json:"skinType"`
}

func (h *Handler) saveInteraction(c *fiber.Ctx) error {
	payload := new(saveRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Brand == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "brand is required"})
	}
	skin, err := catalog.ParseSkinType(payload.SkinType)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid skinType"})
	}

	rec, err := h.service.Save(c.UserContext(), payload.Brand, skin)
	if err != nil {
		switch {
		case errors.Is(err, ErrUnknownProduct):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "product not found"})
		case errors.Is(err, ErrInvalidRecord):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		default:
			logger.FromCtx(c).Error("save interaction", zap.String("backend", h.service.Backend()), zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "save failed"})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *Handler) getInteractions(c *fiber.Ctx) error {
	limit := defaultRecentLimit
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}

	records, err := h.service.Recent(c.UserContext(), limit)
	if err != nil {
		logger.FromCtx(c).Error("read interactions", zap.String("backend", h.service.Backend()), zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "failed to read interactions"})
	}
	return c.JSON(records)
}
