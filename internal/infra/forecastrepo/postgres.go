package forecastrepo

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

// PostgresRepository implements solunar.HistoryRepository using pgx.
//
// Expected schema:
//
//	CREATE TABLE solunar_forecasts (
//	    id UUID PRIMARY KEY,
//	    latitude DOUBLE PRECISION NOT NULL,
//	    longitude DOUBLE PRECISION NOT NULL,
//	    forecast_date TEXT NOT NULL,
//	    timezone TEXT NOT NULL,
//	    rating TEXT NOT NULL,
//	    average_score DOUBLE PRECISION NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL
//	);
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Save inserts one forecast summary.
func (r *PostgresRepository) Save(ctx context.Context, record solunar.Record) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO solunar_forecasts
			(id, latitude, longitude, forecast_date, timezone, rating, average_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, record.ID, record.Latitude, record.Longitude, record.Date, record.Timezone,
		string(record.Rating), record.AverageScore, record.CreatedAt)
	return err
}

// Recent returns the newest forecast summaries.
func (r *PostgresRepository) Recent(ctx context.Context, limit int) ([]solunar.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, latitude, longitude, forecast_date, timezone, rating, average_score, created_at
		FROM solunar_forecasts
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []solunar.Record
	for rows.Next() {
		var (
			record solunar.Record
			rating string
		)
		if err := rows.Scan(&record.ID, &record.Latitude, &record.Longitude, &record.Date,
			&record.Timezone, &rating, &record.AverageScore, &record.CreatedAt); err != nil {
			return nil, err
		}
		record.Rating = solunar.Rating(rating)
		records = append(records, record)
	}
	return records, rows.Err()
}

var _ solunar.HistoryRepository = (*PostgresRepository)(nil)
