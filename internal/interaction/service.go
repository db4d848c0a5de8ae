package interaction

import (
	"context"
	"fmt"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
	"github.com/wichananm65/beauty-dashboard-backend/internal/catalog"
)

// SaveObserver is notified of every save attempt.
type SaveObserver interface {
	IncSaved(backend, result string)
}

type Service struct {
	repo     Repository
	catalog  *catalog.Catalog
	observer SaveObserver
}

func NewService(repo Repository, cat *catalog.Catalog, observer SaveObserver) *Service {
	return &Service{repo: repo, catalog: cat, observer: observer}
}

func (s *Service) Backend() string {
	return s.repo.Backend()
}

// Save records that the catalog product for brand and skin type was saved.
// The timestamp is assigned by the backend.
func (s *Service) Save(ctx context.Context, brand string, skin catalog.SkinType) (Record, error) {
	const op = "interaction.Service.Save"

	p, ok := s.catalog.Lookup(brand, skin)
	if !ok {
		return Record{}, fmt.Errorf("%s: %w: %s/%s", op, ErrUnknownProduct, brand, skin)
	}

	rec, err := s.Append(ctx, Record{
		Brand:       p.Brand,
		ProductName: p.Name,
		SkinType:    string(p.SkinType),
		PriceRange:  bracket.ForRecord(p.Price),
		PriceValue:  p.Price,
	})
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w", op, err)
	}
	return rec, nil
}

// Append validates rec and writes it to the log.
func (s *Service) Append(ctx context.Context, rec Record) (Record, error) {
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}

	stored, err := s.repo.Append(ctx, rec)
	s.observe(err)
	if err != nil {
		return Record{}, err
	}
	return stored, nil
}

func (s *Service) ReadAll(ctx context.Context) ([]Record, error) {
	return s.repo.ReadAll(ctx)
}

// Recent returns up to limit records, newest first. A limit <= 0 means all.
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	records, err := s.repo.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	SortRecent(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

func (s *Service) observe(err error) {
	if s.observer == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.observer.IncSaved(s.repo.Backend(), result)
}
