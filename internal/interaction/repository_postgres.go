package interaction

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/wichananm65/beauty-dashboard-backend/internal/bracket"
)

type PostgresRepository struct {
	db       *sql.DB
	pageSize int

	insertQuery string
	listQuery   string
}

// NewPostgresRepository expects the table created by the migrations in /migrations.
func NewPostgresRepository(db *sql.DB, table string, pageSize int) *PostgresRepository {
	t := pq.QuoteIdentifier(table)
	return &PostgresRepository{
		db:       db,
		pageSize: pageSize,
		insertQuery: fmt.Sprintf(`
		INSERT INTO %s (id, brand, product_name, skin_type, price_range, price_value, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, now()))
		RETURNING created_at
	`, t),
		listQuery: fmt.Sprintf(`
		SELECT brand, product_name, skin_type, price_range, price_value, created_at
		FROM %s
		ORDER BY created_at DESC NULLS LAST
		LIMIT $1
	`, t),
	}
}

func (r *PostgresRepository) Backend() string { return BackendPostgres }

func (r *PostgresRepository) Append(ctx context.Context, rec Record) (Record, error) {
	const op = "PostgresRepository.Append"

	var ts sql.NullTime
	if rec.Timestamp.Valid {
		ts = sql.NullTime{Time: rec.Timestamp.Time, Valid: true}
	}

	var created sql.NullTime
	err := r.db.QueryRowContext(ctx, r.insertQuery,
		uuid.NewString(),
		rec.Brand,
		rec.ProductName,
		rec.SkinType,
		string(rec.PriceRange),
		rec.PriceValue,
		ts,
	).Scan(&created)
	if err != nil {
		return Record{}, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	if created.Valid {
		rec.Timestamp = NewTimestamp(created.Time)
	}
	return rec, nil
}

func (r *PostgresRepository) ReadAll(ctx context.Context) ([]Record, error) {
	const op = "PostgresRepository.ReadAll"

	limit := r.pageSize
	if limit <= 0 {
		limit = defaultPageSize
	}
	rows, err := r.db.QueryContext(ctx, r.listQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
	}
	return out, nil
}

func (r *PostgresRepository) Close(context.Context) error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(scanner rowScanner) (Record, error) {
	var (
		rec        Record
		priceRange string
		created    sql.NullTime
	)
	if err := scanner.Scan(&rec.Brand, &rec.ProductName, &rec.SkinType, &priceRange, &rec.PriceValue, &created); err != nil {
		return Record{}, err
	}
	rec.PriceRange = bracket.Bracket(priceRange)
	if created.Valid {
		rec.Timestamp = NewTimestamp(created.Time)
	}
	return rec, nil
}
