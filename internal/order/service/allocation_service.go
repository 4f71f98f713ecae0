package service

import (
	"fmt"

	"go.uber.org/zap"

	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
	apperrors "stockdesk/internal/errors"
)

type Engine interface {
	ClassifyLine(line domain.OrderLine) (domain.LineStatus, error)
	Evaluate(lines []domain.OrderLine) (*allocation.Evaluation, error)
}

type EvaluationObserver interface {
	ObserveEvaluation(status string)
}

type AllocationService struct {
	engine   Engine
	policy   allocation.EditPolicy
	observer EvaluationObserver
	logger   *zap.Logger
}

func NewAllocationService(engine Engine, policy allocation.EditPolicy, observer EvaluationObserver, logger *zap.Logger) *AllocationService {
	return &AllocationService{
		engine:   engine,
		policy:   policy,
		observer: observer,
		logger:   logger,
	}
}

func (s *AllocationService) Policy() allocation.EditPolicy {
	return s.policy
}

func (s *AllocationService) Evaluate(lines []domain.OrderLine) (*allocation.Evaluation, error) {
	return s.engine.Evaluate(lines)
}

// Record reports an allocation outcome to the observer. Callers record
// writes and explicit classifications, never plain reads.
func (s *AllocationService) Record(eval *allocation.Evaluation) {
	if s.observer == nil || eval == nil {
		return
	}
	s.observer.ObserveEvaluation(string(eval.Status))
}

// Reconcile applies the edit policy to every line. Under reject the lines
// come back unchanged or the first invalid line's error is returned.
func (s *AllocationService) Reconcile(lines []domain.OrderLine) ([]domain.OrderLine, error) {
	out := make([]domain.OrderLine, len(lines))
	for i, line := range lines {
		reconciled, err := s.reconcileLine(line)
		if err != nil {
			return nil, err
		}
		out[i] = reconciled
	}
	return out, nil
}

// ApplyAllocation sets the allocated quantity of one line on a copy of the
// order.
func (s *AllocationService) ApplyAllocation(order *domain.Order, productCode string, qty int) (*domain.Order, error) {
	idx, ok := order.LineIndex(productCode)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("product code %s not found in order %s", productCode, order.ID))
	}

	updated := order.Clone()
	updated.Lines[idx].AllocatedQty = qty

	line, err := s.reconcileLine(updated.Lines[idx])
	if err != nil {
		return nil, err
	}
	if line.AllocatedQty != qty {
		s.logger.Info("allocation clamped",
			zap.String("orderId", order.ID),
			zap.String("productCode", productCode),
			zap.Int("requested", qty),
			zap.Int("applied", line.AllocatedQty),
		)
	}
	updated.Lines[idx] = line

	return updated, nil
}

// ApplyAvailability overwrites availableQty with fresh stock figures and
// reconciles allocations that no longer fit. Lines missing from available
// keep their current figure.
func (s *AllocationService) ApplyAvailability(order *domain.Order, available map[string]int) (*domain.Order, error) {
	updated := order.Clone()
	for i := range updated.Lines {
		qty, ok := available[updated.Lines[i].ProductCode]
		if !ok {
			continue
		}
		updated.Lines[i].AvailableQty = qty
	}

	lines, err := s.Reconcile(updated.Lines)
	if err != nil {
		return nil, err
	}
	updated.Lines = lines

	return updated, nil
}

func (s *AllocationService) reconcileLine(line domain.OrderLine) (domain.OrderLine, error) {
	if s.policy == allocation.EditPolicyClamp {
		line.AllocatedQty = clamp(line.AllocatedQty, 0, line.AvailableQty)
	}
	if _, err := s.engine.ClassifyLine(line); err != nil {
		return domain.OrderLine{}, err
	}
	return line, nil
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
