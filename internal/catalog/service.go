package catalog

import "fmt"

type Service struct {
	catalog *Catalog
}

func NewService(c *Catalog) *Service {
	return &Service{catalog: c}
}

func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// SearchResult is everything the dashboard shows for one filter state.
type SearchResult struct {
	Matches    []string  `json:"matches"`
	Suggestion string    `json:"suggestion,omitempty"`
	Products   []Product `json:"products"`
	Insights   *Insights `json:"insights,omitempty"`
}

func (s *Service) Search(f Filter) (SearchResult, error) {
	const op = "catalog.Service.Search"

	if err := f.Validate(); err != nil {
		return SearchResult{}, fmt.Errorf("%s: %w", op, err)
	}

	res := SearchResult{
		Matches:  Match(s.catalog, f.Brands, f.SkinType, f.PriceMin, f.PriceMax),
		Products: Recommend(s.catalog, f),
	}
	if len(res.Matches) == 0 {
		res.Suggestion = NoMatchSuggestion
	}
	if ins, ok := InsightsFor(s.catalog, f.Brands); ok {
		res.Insights = &ins
	}
	return res, nil
}

func (s *Service) List() []Product {
	return s.catalog.Products()
}

func (s *Service) Filtered(f Filter) ([]Product, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("catalog.Service.Filtered: %w", err)
	}
	return Recommend(s.catalog, f), nil
}

func (s *Service) Profiles(brands []string) []Profile {
	if len(brands) == 0 {
		return s.catalog.Profiles()
	}
	return ProfilesFor(s.catalog, brands)
}

func (s *Service) GetProduct(brand string, skin SkinType) (Product, error) {
	p, ok := s.catalog.Lookup(brand, skin)
	if !ok {
		return Product{}, ErrNotFound
	}
	return p, nil
}
