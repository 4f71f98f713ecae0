package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"stockdesk/internal/domain"
	apperrors "stockdesk/internal/errors"
)

// MemoryOrderRepository keeps orders in process. Every read and write
// copies the order so callers never share line slices with the store.
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	now    func() time.Time
}

func NewMemoryOrderRepository(seed ...domain.Order) *MemoryOrderRepository {
	r := &MemoryOrderRepository{
		orders: make(map[string]*domain.Order, len(seed)),
		now:    time.Now,
	}
	for i := range seed {
		order := seed[i].Clone()
		ts := r.now().UTC()
		order.CreatedAt, order.UpdatedAt = ts, ts
		r.orders[order.ID] = order
	}
	return r
}

func (r *MemoryOrderRepository) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", id))
	}
	return order.Clone(), nil
}

func (r *MemoryOrderRepository) List(ctx context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]domain.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orders = append(orders, *order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })

	return orders, nil
}

func (r *MemoryOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.ID]; exists {
		return apperrors.NewConflictError(fmt.Sprintf("order with id %s already exists", order.ID))
	}

	stored := order.Clone()
	ts := r.now().UTC()
	stored.CreatedAt, stored.UpdatedAt = ts, ts
	r.orders[order.ID] = stored

	return nil
}

func (r *MemoryOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.orders[order.ID]
	if !ok {
		return apperrors.NewNotFoundError(fmt.Sprintf("order with id %s not found", order.ID))
	}

	stored := order.Clone()
	stored.CreatedAt = existing.CreatedAt
	stored.UpdatedAt = r.now().UTC()
	r.orders[order.ID] = stored

	return nil
}
