package catalog

import "github.com/wichananm65/beauty-dashboard-backend/internal/bracket"

// Catalog is a read-only brand -> skin type -> product mapping with brand
// metadata. Brand order is the order profiles were supplied in.
type Catalog struct {
	brands   []string
	products map[string]map[SkinType]Product
	profiles map[string]Profile
}

func New(profiles []Profile, products []Product) *Catalog {
	c := &Catalog{
		brands:   make([]string, 0, len(profiles)),
		products: make(map[string]map[SkinType]Product, len(profiles)),
		profiles: make(map[string]Profile, len(profiles)),
	}
	for _, p := range profiles {
		if _, ok := c.profiles[p.Brand]; ok {
			continue
		}
		c.brands = append(c.brands, p.Brand)
		c.profiles[p.Brand] = p
	}
	for _, p := range products {
		byType, ok := c.products[p.Brand]
		if !ok {
			if _, known := c.profiles[p.Brand]; !known {
				c.brands = append(c.brands, p.Brand)
			}
			byType = make(map[SkinType]Product)
			c.products[p.Brand] = byType
		}
		byType[p.SkinType] = p
	}
	return c
}

// Default returns the demo catalog.
func Default() *Catalog {
	return New(defaultProfiles, defaultProducts)
}

func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// Has reports whether brand is a catalog key.
func (c *Catalog) Has(brand string) bool {
	_, ok := c.products[brand]
	return ok
}

func (c *Catalog) Lookup(brand string, skin SkinType) (Product, bool) {
	p, ok := c.products[brand][skin]
	return p, ok
}

// Products returns every product, brands in catalog order and skin types in display order.
func (c *Catalog) Products() []Product {
	out := make([]Product, 0)
	for _, b := range c.brands {
		for _, st := range SkinTypes {
			if p, ok := c.products[b][st]; ok {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Catalog) Profile(brand string) (Profile, bool) {
	p, ok := c.profiles[brand]
	return p, ok
}

// Profiles returns brand metadata in catalog order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, 0, len(c.profiles))
	for _, b := range c.brands {
		if p, ok := c.profiles[b]; ok {
			out = append(out, p)
		}
	}
	return out
}

var defaultProfiles = []Profile{
	{Brand: "The Ordinary", PriceTier: bracket.Budget, BestFor: Oily, AvgInterest: 57.8, Forecast: 1369.9},
	{Brand: "Clinique", PriceTier: bracket.MidRange, BestFor: Sensitive, AvgInterest: 43.7, Forecast: 1475.1},
	{Brand: "Laneige", PriceTier: bracket.MidRange, BestFor: Dry, AvgInterest: 26.1, Forecast: 1399.9},
	{Brand: "Drunk Elephant", PriceTier: bracket.Luxury, BestFor: Combination, AvgInterest: 10.2, Forecast: 1386.5},
	{Brand: "Briogeo", PriceTier: bracket.MidRange, BestFor: Dry, AvgInterest: 4.8, Forecast: 1417.1},
}

var defaultProducts = []Product{
	{Brand: "The Ordinary", SkinType: Oily, Name: "Niacinamide 10% + Zinc 1%", Price: 650, Description: "Balances sebum and clears acne."},
	{Brand: "The Ordinary", SkinType: Dry, Name: "Hyaluronic Acid 2% + B5", Price: 750, Description: "Hydrates dry, dull skin deeply."},
	{Brand: "The Ordinary", SkinType: Combination, Name: "Salicylic Acid 2% Masque", Price: 850, Description: "Exfoliates and decongests pores."},
	{Brand: "The Ordinary", SkinType: Sensitive, Name: "Squalane Cleanser", Price: 900, Description: "Gentle cleanser for sensitive skin."},
	{Brand: "The Ordinary", SkinType: Normal, Name: "Multi-Peptide Serum", Price: 1200, Description: "General skin-strengthening serum."},
	{Brand: "Clinique", SkinType: Sensitive, Name: "Moisture Surge 100H Hydrator", Price: 3900, Description: "Calms & hydrates sensitive skin."},
	{Brand: "Clinique", SkinType: Normal, Name: "Even Better Clinical", Price: 4200, Description: "Brightening & evening serum."},
	{Brand: "Laneige", SkinType: Dry, Name: "Water Sleeping Mask EX", Price: 2400, Description: "Overnight hydration for dry skin."},
	{Brand: "Laneige", SkinType: Normal, Name: "Lip Sleeping Mask", Price: 1200, Description: "Hydrating lip treatment."},
	{Brand: "Drunk Elephant", SkinType: Combination, Name: "Protini Polypeptide Cream", Price: 5600, Description: "Protein-rich moisturizer for balance."},
	{Brand: "Drunk Elephant", SkinType: Normal, Name: "C-Firma Day Serum", Price: 4200, Description: "Vitamin C antioxidant serum."},
	{Brand: "Briogeo", SkinType: Dry, Name: "Don't Despair, Repair!", Price: 3600, Description: "Nourishing mask for dry hair & scalp."},
	{Brand: "Briogeo", SkinType: Combination, Name: "Scalp Revival", Price: 2200, Description: "Scalp treatment for flakiness."},
}
