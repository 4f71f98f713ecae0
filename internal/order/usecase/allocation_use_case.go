package usecase

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
	"stockdesk/internal/dto"
	apperrors "stockdesk/internal/errors"
)

type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	Create(ctx context.Context, order *domain.Order) error
	Update(ctx context.Context, order *domain.Order) error
}

type AvailabilityProvider interface {
	AvailableByCodes(ctx context.Context, codes []string) (map[string]int, error)
}

type AllocationService interface {
	Evaluate(lines []domain.OrderLine) (*allocation.Evaluation, error)
	Record(eval *allocation.Evaluation)
	Reconcile(lines []domain.OrderLine) ([]domain.OrderLine, error)
	ApplyAllocation(order *domain.Order, productCode string, qty int) (*domain.Order, error)
	ApplyAvailability(order *domain.Order, available map[string]int) (*domain.Order, error)
}

type AllocationUseCase struct {
	orderRepo        OrderRepository
	availability     AvailabilityProvider
	allocationSvc    AllocationService
	logger           *zap.Logger
	maxRetryAttempts int
	sleep            func(ctx context.Context, d time.Duration) error
}

func NewAllocationUseCase(
	orderRepo OrderRepository,
	availability AvailabilityProvider,
	allocationSvc AllocationService,
	logger *zap.Logger,
	maxRetryAttempts int,
) *AllocationUseCase {
	if maxRetryAttempts < 1 {
		maxRetryAttempts = 1
	}
	return &AllocationUseCase{
		orderRepo:        orderRepo,
		availability:     availability,
		allocationSvc:    allocationSvc,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
		sleep:            sleepContext,
	}
}

func (uc *AllocationUseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResult, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return uc.evaluate(order)
}

func (uc *AllocationUseCase) ListOrders(ctx context.Context) ([]dto.OrderResult, error) {
	orders, err := uc.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]dto.OrderResult, 0, len(orders))
	for i := range orders {
		result, err := uc.evaluate(&orders[i])
		if err != nil {
			// stored orders that fail classification are left out of the list
			uc.logger.Warn("skipping order with invalid quantities", zap.String("orderId", orders[i].ID), zap.Error(err))
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}

// CreateOrder stores a new order. An empty id gets a generated one.
func (uc *AllocationUseCase) CreateOrder(ctx context.Context, id string, lines []domain.OrderLine) (*dto.OrderResult, error) {
	if id == "" {
		id = uuid.NewString()
	}

	order, err := domain.NewOrder(id, lines)
	if err != nil {
		return nil, err
	}

	order.Lines, err = uc.allocationSvc.Reconcile(order.Lines)
	if err != nil {
		return nil, err
	}

	if err := uc.withRetry(ctx, id, func() error { return uc.orderRepo.Create(ctx, order) }); err != nil {
		return nil, err
	}

	uc.logger.Info("order created", zap.String("orderId", id), zap.Int("lineCount", len(order.Lines)))

	result, err := uc.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.allocationSvc.Record(result.Evaluation)

	return result, nil
}

// ReplaceLines is the updateOrder operation: the whole line set is
// swapped after validation and the edit policy.
func (uc *AllocationUseCase) ReplaceLines(ctx context.Context, id string, lines []domain.OrderLine) (*dto.OrderResult, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reconciled, err := uc.allocationSvc.Reconcile(lines)
	if err != nil {
		return nil, err
	}
	order.Lines = reconciled

	return uc.save(ctx, order, "order lines replaced")
}

func (uc *AllocationUseCase) AllocateLine(ctx context.Context, id, productCode string, qty int) (*dto.OrderResult, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := uc.allocationSvc.ApplyAllocation(order, productCode, qty)
	if err != nil {
		if _, ok := apperrors.IsInvalidQuantityError(err); ok {
			uc.logger.Warn("allocation rejected", zap.String("orderId", id), zap.String("productCode", productCode), zap.Int("allocatedQty", qty), zap.Error(err))
		}
		return nil, err
	}

	return uc.save(ctx, updated, "line allocated")
}

// RefreshAvailability pulls current stock figures for every line of the
// order and persists them.
func (uc *AllocationUseCase) RefreshAvailability(ctx context.Context, id string) (*dto.OrderResult, error) {
	order, err := uc.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	codes := make([]string, len(order.Lines))
	for i, line := range order.Lines {
		codes[i] = line.ProductCode
	}

	available, err := uc.availability.AvailableByCodes(ctx, codes)
	if err != nil {
		return nil, apperrors.NewInternalError("loading stock availability", err)
	}

	updated, err := uc.allocationSvc.ApplyAvailability(order, available)
	if err != nil {
		return nil, err
	}

	return uc.save(ctx, updated, "availability refreshed")
}

// Classify evaluates lines that are not stored anywhere, for live previews
// in the order editor.
func (uc *AllocationUseCase) Classify(lines []domain.OrderLine) (*allocation.Evaluation, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}

	eval, err := uc.allocationSvc.Evaluate(lines)
	if err != nil {
		return nil, err
	}
	uc.allocationSvc.Record(eval)

	return eval, nil
}

func (uc *AllocationUseCase) save(ctx context.Context, order *domain.Order, msg string) (*dto.OrderResult, error) {
	eval, err := uc.allocationSvc.Evaluate(order.Lines)
	if err != nil {
		return nil, err
	}

	if err := uc.withRetry(ctx, order.ID, func() error { return uc.orderRepo.Update(ctx, order) }); err != nil {
		return nil, err
	}
	uc.allocationSvc.Record(eval)

	uc.logger.Info(msg, zap.String("orderId", order.ID), zap.String("status", string(eval.Status)), zap.Int("outstandingQty", eval.OutstandingQty))

	stored, err := uc.orderRepo.FindByID(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	return &dto.OrderResult{Order: stored, Evaluation: eval}, nil
}

func (uc *AllocationUseCase) evaluate(order *domain.Order) (*dto.OrderResult, error) {
	eval, err := uc.allocationSvc.Evaluate(order.Lines)
	if err != nil {
		return nil, err
	}
	return &dto.OrderResult{Order: order, Evaluation: eval}, nil
}

func (uc *AllocationUseCase) withRetry(ctx context.Context, orderID string, fn func() error) error {
	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}

		if !isDeadlockError(err) {
			return err
		}

		if attempt == uc.maxRetryAttempts {
			break
		}

		uc.logger.Warn("deadlock detected, retrying", zap.Int("attempt", attempt), zap.Int("maxAttempts", uc.maxRetryAttempts), zap.String("orderId", orderID))
		if err := uc.sleep(ctx, retryBackoff(attempt)); err != nil {
			return err
		}
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

// retryBackoff grows by 100ms per attempt with ±20% jitter.
func retryBackoff(attempt int) time.Duration {
	base := time.Duration(attempt) * 100 * time.Millisecond
	jitter := 0.8 + rand.Float64()*0.4
	return time.Duration(float64(base) * jitter)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	return false
}
