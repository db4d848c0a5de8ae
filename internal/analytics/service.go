package analytics

import (
	"context"
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/wichananm65/beauty-dashboard-backend/internal/interaction"
)

const (
	DefaultTop     = 10
	RecentLimit    = 100
	ExportFileName = "saved_interactions.csv"
)

// Source is the read side of the interaction log.
type Source interface {
	ReadAll(ctx context.Context) ([]interaction.Record, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

type Summary struct {
	Total      int                  `json:"total"`
	ByProduct  []Count              `json:"byProduct"`
	ByBrand    []Count              `json:"byBrand"`
	BySkinType []Count              `json:"bySkinType"`
	Recent     []interaction.Record `json:"recent"`
}

// Summarize is the pure part of Summary. Counts run over records in canonical
// order so ties resolve to the most recently seen key first.
func Summarize(records []interaction.Record, top int) Summary {
	sorted := make([]interaction.Record, len(records))
	copy(sorted, records)
	interaction.SortRecent(sorted)

	recent := sorted
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	return Summary{
		Total:      len(sorted),
		ByProduct:  Top(CountBy(sorted, func(r interaction.Record) string { return r.ProductName }), top),
		ByBrand:    CountBy(sorted, func(r interaction.Record) string { return r.Brand }),
		BySkinType: CountBy(sorted, func(r interaction.Record) string { return r.SkinType }),
		Recent:     recent,
	}
}

func (s *Service) Summary(ctx context.Context, top int) (Summary, error) {
	records, err := s.source.ReadAll(ctx)
	if err != nil {
		return Summary{}, fmt.Errorf("analytics.Service.Summary: %w", err)
	}
	return Summarize(records, top), nil
}

// csvRow is the flat export shape; an unknown timestamp is an empty cell.
type csvRow struct {
	Brand       string `csv:"brand"`
	ProductName string `csv:"product_name"`
	SkinType    string `csv:"skin_type"`
	PriceRange  string `csv:"price_range"`
	PriceValue  int    `csv:"price_value"`
	Timestamp   string `csv:"timestamp"`
}

// WriteCSV encodes one row per record with a header line.
func WriteCSV(w io.Writer, records []interaction.Record) error {
	rows := make([]*csvRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, &csvRow{
			Brand:       r.Brand,
			ProductName: r.ProductName,
			SkinType:    r.SkinType,
			PriceRange:  string(r.PriceRange),
			PriceValue:  r.PriceValue,
			Timestamp:   r.Timestamp.String(),
		})
	}
	return gocsv.Marshal(rows, w)
}

// Export writes the whole log, newest first.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	const op = "analytics.Service.Export"

	records, err := s.source.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	interaction.SortRecent(records)
	if err := WriteCSV(w, records); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
