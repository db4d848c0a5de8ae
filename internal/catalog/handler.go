package catalog

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/v1/brands", h.getBrands)
	app.Get("/api/v1/skin-types", h.getSkinTypes)
	app.Get("/api/v1/products", h.getProducts)
	app.Get("/api/v1/matches", h.getMatches)
}

func (h *Handler) getBrands(c *fiber.Ctx) error {
	return c.JSON(h.service.Profiles(splitList(c.Query("brands"))))
}

func (h *Handler) getSkinTypes(c *fiber.Ctx) error {
	return c.JSON(SkinTypes)
}

// getProducts returns the whole catalog unless a filter parameter is present.
func (h *Handler) getProducts(c *fiber.Ctx) error {
	if c.Query("brands") == "" && c.Query("skinType") == "" &&
		c.Query("priceMin") == "" && c.Query("priceMax") == "" {
		return c.JSON(h.service.List())
	}

	f, err := ParseFilter(c, h.service.Catalog())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	products, err := h.service.Filtered(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": errors.Unwrap(err).Error()})
	}
	return c.JSON(products)
}

func (h *Handler) getMatches(c *fiber.Ctx) error {
	f, err := ParseFilter(c, h.service.Catalog())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	res, err := h.service.Search(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": errors.Unwrap(err).Error()})
	}
	return c.JSON(res)
}

// ParseFilter reads brands, skinType, priceMin and priceMax from the query
// string. Missing values fall back to DefaultFilter.
func ParseFilter(c *fiber.Ctx, cat *Catalog) (Filter, error) {
	f := DefaultFilter(cat)
	if b := splitList(c.Query("brands")); len(b) > 0 {
		f.Brands = b
	}
	if s := c.Query("skinType"); s != "" {
		st, err := ParseSkinType(s)
		if err != nil {
			return Filter{}, err
		}
		f.SkinType = st
	}
	if v := c.Query("priceMin"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, errors.New("invalid priceMin")
		}
		f.PriceMin = n
	}
	if v := c.Query("priceMax"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Filter{}, errors.New("invalid priceMax")
		}
		f.PriceMax = n
	}
	if f.PriceMin > f.PriceMax {
		return Filter{}, ErrInvalidRange
	}
	return f, nil
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
