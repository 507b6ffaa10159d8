package forecastrepo

import (
	"context"
	"sync"

	"github.com/alkias2/SolunarBase/internal/domain/solunar"
)

// MemoryRepository is an in-memory HistoryRepository used for tests/dev.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []solunar.Record
}

// NewMemoryRepository constructs a repo backed by process memory.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Save implements solunar.HistoryRepository. Newest records sort first.
func (r *MemoryRepository) Save(_ context.Context, record solunar.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append([]solunar.Record{record}, r.records...)
	return nil
}

// Recent implements solunar.HistoryRepository.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]solunar.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]solunar.Record, limit)
	copy(out, r.records[:limit])
	return out, nil
}

var _ solunar.HistoryRepository = (*MemoryRepository)(nil)
