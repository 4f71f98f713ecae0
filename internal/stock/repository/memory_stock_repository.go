package repository

import (
	"context"
	"sync"

	"stockdesk/internal/domain"
)

type MemoryRepository struct {
	mu     sync.RWMutex
	levels map[string]domain.StockLevel
}

func NewMemoryRepository(levels ...domain.StockLevel) *MemoryRepository {
	r := &MemoryRepository{levels: make(map[string]domain.StockLevel, len(levels))}
	for _, level := range levels {
		r.levels[level.ProductCode] = level
	}
	return r
}

// Put replaces the stock level of a product code.
func (r *MemoryRepository) Put(level domain.StockLevel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.levels[level.ProductCode] = level
}

func (r *MemoryRepository) FindByCodes(ctx context.Context, codes []string) ([]domain.StockLevel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var levels []domain.StockLevel
	for _, code := range codes {
		if level, ok := r.levels[code]; ok {
			levels = append(levels, level)
		}
	}
	return levels, nil
}
