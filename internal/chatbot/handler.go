package chatbot

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
)

// QueryObserver is told the intent of every answered query.
type QueryObserver interface {
	IncChat(intent string)
}

type Service struct {
	responder *Responder
	observer  QueryObserver
}

func NewService(r *Responder, observer QueryObserver) *Service {
	return &Service{responder: r, observer: observer}
}

type Answer struct {
	Intent Intent `json:"intent"`
	Answer string `json:"answer"`
}

func (s *Service) Ask(query string, mood Mood, skin catalog.SkinType, priceMax int) Answer {
	intent := Classify(query)
	if s.observer != nil {
		s.observer.IncChat(string(intent))
	}
	return Answer{Intent: intent, Answer: s.responder.Respond(query, mood, skin, priceMax)}
}

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/v1/chat", h.ask)
}

type askRequest struct {
	Query    string `json:"query"`
	Mood     string `json:"mood"`
	SkinType string `json:"skinType"`
	PriceMax *int   `json:"priceMax"`
}

func (h *Handler) ask(c *fiber.Ctx) error {
	payload := new(askRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	skin := catalog.Oily
	if payload.SkinType != "" {
		st, err := catalog.ParseSkinType(payload.SkinType)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "invalid skinType"})
		}
		skin = st
	}
	priceMax := catalog.PriceCeiling
	if payload.PriceMax != nil {
		if *payload.PriceMax < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "priceMax must be >= 0"})
		}
		priceMax = *payload.PriceMax
	}

	return c.JSON(h.service.Ask(payload.Query, ParseMood(payload.Mood), skin, priceMax))
}
