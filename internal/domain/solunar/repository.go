package solunar

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record summarizes a computed forecast for the history log.
type Record struct {
	ID           uuid.UUID `json:"id"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Date         string    `json:"date"`
	Timezone     string    `json:"timezone"`
	Rating       Rating    `json:"rating"`
	AverageScore float64   `json:"averageScore"`
	CreatedAt    time.Time `json:"createdAt"`
}

// HistoryRepository persists forecast summaries.
type HistoryRepository interface {
	Save(ctx context.Context, record Record) error
	Recent(ctx context.Context, limit int) ([]Record, error)
}

// Cache stores full results for solunar-only requests keyed by
// location/date/resolution.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Set(ctx context.Context, key string, result Result, ttl time.Duration) error
}
