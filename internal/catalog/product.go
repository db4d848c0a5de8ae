package catalog

import (
	"errors"
	"strings"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
)

var (
	ErrInvalidSkinType = errors.New("invalid skin type")
	ErrInvalidRange    = errors.New("priceMin must not exceed priceMax")
	ErrNotFound        = errors.New("product not found")
)

type SkinType string

const (
	Oily        SkinType = "Oily"
	Dry         SkinType = "Dry"
	Combination SkinType = "Combination"
	Sensitive   SkinType = "Sensitive"
	Normal      SkinType = "Normal"
)

// SkinTypes lists the supported skin types in display order.
var SkinTypes = []SkinType{Oily, Dry, Combination, Sensitive, Normal}

// ParseSkinType matches case-insensitively and returns the canonical value.
func ParseSkinType(s string) (SkinType, error) {
	s = strings.TrimSpace(s)
	for _, st := range SkinTypes {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", ErrInvalidSkinType
}

// Product is one catalog entry. A brand carries at most one product per skin type.
type Product struct {
	Brand       string   `json:"brand"`
	SkinType    SkinType `json:"skinType"`
	Name        string   `json:"productName"`
	Price       int      `json:"productPrice"`
	Description string   `json:"productDesc"`
}

// Profile is the per-brand metadata used by the chatbot and the insight panels.
// Interest and forecast figures are simulated.
type Profile struct {
	Brand       string          `json:"brand"`
	PriceTier   bracket.Bracket `json:"priceTier"`
	BestFor     SkinType        `json:"bestFor"`
	AvgInterest float64         `json:"avgInterest"`
	Forecast    float64         `json:"forecast"`
}
