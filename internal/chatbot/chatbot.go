// Package chatbot answers canned questions about the catalog from the current filter state.
package chatbot

import (
	"fmt"
	"strings"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
)

type Mood string

const (
	Sweet        Mood = "sweet"
	Savage       Mood = "savage"
	Professional Mood = "professional"
)

// ParseMood reads the first word of s, so "Sweet 💖" is Sweet. Anything
// unrecognised is Professional.
func ParseMood(s string) Mood {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return Professional
	}
	switch Mood(fields[0]) {
	case Sweet:
		return Sweet
	case Savage:
		return Savage
	}
	return Professional
}

// Decorate wraps a computed answer in the mood's prefix and suffix.
func (m Mood) Decorate(resp string) string {
	switch m {
	case Sweet:
		return "💖 " + resp + " You're glowing already!"
	case Savage:
		return "😈 " + resp + " Do better or buy better."
	default:
		return "💼 " + resp
	}
}

type Intent string

const (
	IntentEmpty     Intent = "empty"
	IntentTrend     Intent = "trend"
	IntentForecast  Intent = "forecast"
	IntentRecommend Intent = "recommend"
	IntentPrice     Intent = "price"
	IntentFallback  Intent = "fallback"
)

var keywords = []struct {
	intent Intent
	words  []string
}{
	{IntentTrend, []string{"trend", "popular"}},
	{IntentForecast, []string{"forecast"}},
	{IntentRecommend, []string{"recommend", "best"}},
	{IntentPrice, []string{"price"}},
}

// Classify checks keyword groups in priority order on the lower-cased query.
func Classify(query string) Intent {
	if strings.TrimSpace(query) == "" {
		return IntentEmpty
	}
	q := strings.ToLower(query)
	for _, k := range keywords {
		for _, w := range k.words {
			if strings.Contains(q, w) {
				return k.intent
			}
		}
	}
	return IntentFallback
}

const (
	EmptyPrompt    = "Ask me something about product recommendations, trends, or pricing."
	trendAnswer    = "The Ordinary and Clinique show consistently high interest in our dataset. The Ordinary is strong among budget buyers."
	forecastAnswer = "Forecast models predict steady interest into early 2026 for ingredient-driven brands (simulated)."
	noMatchAnswer  = "No exact match with current filters; consider The Ordinary for versatility."
	fallbackAnswer = "Try: 'best for dry skin', 'popular brands', or 'forecast'."
)

// Responder holds the brand metadata table the answers are computed from.
type Responder struct {
	profiles []catalog.Profile
}

func NewResponder(profiles []catalog.Profile) *Responder {
	p := make([]catalog.Profile, len(profiles))
	copy(p, profiles)
	return &Responder{profiles: p}
}

var defaultResponder = NewResponder(catalog.Default().Profiles())

// Respond answers against the built-in catalog.
func Respond(query string, mood Mood, skin catalog.SkinType, priceMax int) string {
	return defaultResponder.Respond(query, mood, skin, priceMax)
}

// Respond is deterministic. An empty query gets the same prompt for every mood.
func (r *Responder) Respond(query string, mood Mood, skin catalog.SkinType, priceMax int) string {
	var resp string
	switch Classify(query) {
	case IntentEmpty:
		return EmptyPrompt
	case IntentTrend:
		resp = trendAnswer
	case IntentForecast:
		resp = forecastAnswer
	case IntentRecommend:
		resp = r.recommend(skin, bracket.ForChat(priceMax))
	case IntentPrice:
		resp = r.priceTiers()
	default:
		resp = fallbackAnswer
	}
	return mood.Decorate(resp)
}

func (r *Responder) recommend(skin catalog.SkinType, tier bracket.Bracket) string {
	var candidates []string
	for _, p := range r.profiles {
		if p.BestFor == skin && p.PriceTier == tier {
			candidates = append(candidates, p.Brand)
		}
	}
	if len(candidates) == 0 {
		for _, p := range r.profiles {
			if p.BestFor == skin {
				candidates = append(candidates, p.Brand)
			}
		}
	}
	if len(candidates) == 0 {
		return noMatchAnswer
	}
	return fmt.Sprintf("Recommended for **%s** skin in the **%s** price bracket: **%s**.",
		skin, tier, strings.Join(candidates, ", "))
}

func (r *Responder) priceTiers() string {
	tiers := []bracket.Bracket{bracket.Budget, bracket.MidRange, bracket.Luxury}
	parts := make([]string, 0, len(tiers))
	for _, t := range tiers {
		var brands []string
		for _, p := range r.profiles {
			if p.PriceTier == t {
				brands = append(brands, p.Brand)
			}
		}
		if len(brands) > 0 {
			parts = append(parts, fmt.Sprintf("%s: %s", t, strings.Join(brands, ", ")))
		}
	}
	return strings.Join(parts, " | ")
}
