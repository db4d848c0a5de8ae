package catalog

import "sort"

const (
	PriceFloor   = 0
	PriceCeiling = 6000

	// NoMatchSuggestion is shown when a filter matches no brand.
	NoMatchSuggestion = "No exact match — try adjusting filters. (The Ordinary is a versatile option.)"
	// PreferenceNote accompanies every insight panel.
	PreferenceNote = "Consumers prefer performance & transparency over price for skincare products."
)

// Filter is the transient per-query filter state.
type Filter struct {
	Brands   []string
	SkinType SkinType
	PriceMin int
	PriceMax int
}

// DefaultFilter selects every brand, oily skin and the full price range.
func DefaultFilter(c *Catalog) Filter {
	return Filter{
		Brands:   c.Brands(),
		SkinType: Oily,
		PriceMin: PriceFloor,
		PriceMax: PriceCeiling,
	}
}

func (f Filter) Validate() error {
	if _, err := ParseSkinType(string(f.SkinType)); err != nil {
		return err
	}
	if f.PriceMin > f.PriceMax {
		return ErrInvalidRange
	}
	return nil
}

// Match returns the selected brands that carry a product for skin priced within
// [priceMin, priceMax]. Each brand appears once and the result is sorted.
func Match(c *Catalog, selected []string, skin SkinType, priceMin, priceMax int) []string {
	seen := make(map[string]struct{}, len(selected))
	out := make([]string, 0, len(selected))
	for _, b := range selected {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		p, ok := c.Lookup(b, skin)
		if !ok {
			continue
		}
		if p.Price >= priceMin && p.Price <= priceMax {
			out = append(out, b)
		}
	}
	sort.Strings(out)
	return out
}

// Recommend returns the product cards for the filter, in selection order.
func Recommend(c *Catalog, f Filter) []Product {
	seen := make(map[string]struct{}, len(f.Brands))
	out := make([]Product, 0)
	for _, b := range f.Brands {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		p, ok := c.Lookup(b, f.SkinType)
		if ok && p.Price >= f.PriceMin && p.Price <= f.PriceMax {
			out = append(out, p)
		}
	}
	return out
}

type BrandInterest struct {
	Brand       string  `json:"brand"`
	AvgInterest float64 `json:"avgInterest"`
}

type Insights struct {
	Top  BrandInterest `json:"top"`
	Low  BrandInterest `json:"low"`
	Note string        `json:"note"`
}

// InsightsFor picks the highest and lowest simulated interest among the
// selected brands. Ties go to the brand listed first in the catalog.
func InsightsFor(c *Catalog, selected []string) (Insights, bool) {
	want := make(map[string]struct{}, len(selected))
	for _, b := range selected {
		want[b] = struct{}{}
	}

	var top, low *Profile
	for _, p := range c.Profiles() {
		if _, ok := want[p.Brand]; !ok {
			continue
		}
		p := p
		if top == nil || p.AvgInterest > top.AvgInterest {
			top = &p
		}
		if low == nil || p.AvgInterest < low.AvgInterest {
			low = &p
		}
	}
	if top == nil {
		return Insights{}, false
	}
	return Insights{
		Top:  BrandInterest{Brand: top.Brand, AvgInterest: top.AvgInterest},
		Low:  BrandInterest{Brand: low.Brand, AvgInterest: low.AvgInterest},
		Note: PreferenceNote,
	}, true
}

// ProfilesFor returns the metadata of the selected brands in catalog order.
func ProfilesFor(c *Catalog, selected []string) []Profile {
	want := make(map[string]struct{}, len(selected))
	for _, b := range selected {
		want[b] = struct{}{}
	}
	out := make([]Profile, 0, len(selected))
	for _, p := range c.Profiles() {
		if _, ok := want[p.Brand]; ok {
			out = append(out, p)
		}
	}
	return out
}
