// Package allocation derives line and order allocation status from
// requested, available and allocated quantities. Everything here is pure:
// callers pass the current quantities on every call and nothing is cached.
package allocation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"stockdesk/internal/domain"
	apperrors "stockdesk/internal/errors"
)

// ZeroRequestedPolicy decides how a line that requests nothing is classified.
type ZeroRequestedPolicy string

const (
	// ZeroRequestedFulfilled treats requestedQty == 0 as FullyAllocated,
	// since allocatedQty >= requestedQty holds.
	ZeroRequestedFulfilled ZeroRequestedPolicy = "fulfilled"
	// ZeroRequestedUnallocated treats a line with nothing requested and
	// nothing allocated as NotAllocated.
	ZeroRequestedUnallocated ZeroRequestedPolicy = "unallocated"
)

func ParseZeroRequestedPolicy(s string) (ZeroRequestedPolicy, error) {
	switch p := ZeroRequestedPolicy(s); p {
	case ZeroRequestedFulfilled, ZeroRequestedUnallocated:
		return p, nil
	case "":
		return ZeroRequestedFulfilled, nil
	default:
		return "", fmt.Errorf("unknown zero-requested policy %q", s)
	}
}

type Engine struct {
	zeroRequested ZeroRequestedPolicy
}

type Option func(*Engine)

func WithZeroRequestedPolicy(p ZeroRequestedPolicy) Option {
	return func(e *Engine) {
		e.zeroRequested = p
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{zeroRequested: ZeroRequestedFulfilled}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ZeroRequested reports the policy the engine was built with.
func (e *Engine) ZeroRequested() ZeroRequestedPolicy {
	return e.zeroRequested
}

// ClassifyLine returns the allocation status of a single line. Negative
// quantities and allocation above the available quantity are rejected with
// an InvalidQuantityError; the engine never clamps.
func (e *Engine) ClassifyLine(line domain.OrderLine) (domain.LineStatus, error) {
	if err := checkQuantities(line); err != nil {
		return "", err
	}

	if line.RequestedQty == 0 && line.AllocatedQty == 0 && e.zeroRequested == ZeroRequestedUnallocated {
		return domain.LineStatusNotAllocated, nil
	}

	switch {
	case line.AllocatedQty >= line.RequestedQty:
		return domain.LineStatusFullyAllocated, nil
	case line.AllocatedQty > 0:
		return domain.LineStatusPartiallyAllocated, nil
	default:
		return domain.LineStatusNotAllocated, nil
	}
}

// ClassifyOrder aggregates the line statuses. The result does not depend on
// line order.
func (e *Engine) ClassifyOrder(lines []domain.OrderLine) (domain.OrderStatus, error) {
	if len(lines) == 0 {
		return domain.OrderStatusDraft, nil
	}

	var fully, partial int
	for _, line := range lines {
		status, err := e.ClassifyLine(line)
		if err != nil {
			return "", err
		}
		switch status {
		case domain.LineStatusFullyAllocated:
			fully++
		case domain.LineStatusPartiallyAllocated:
			partial++
		}
	}

	return orderStatus(len(lines), fully, partial), nil
}

// TotalValue sums allocatedQty * unitPrice over the lines.
func (e *Engine) TotalValue(lines []domain.OrderLine) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		if err := checkQuantities(line); err != nil {
			return decimal.Zero, err
		}
		total = total.Add(lineValue(line))
	}
	return total, nil
}

func orderStatus(lineCount, fully, partial int) domain.OrderStatus {
	switch {
	case lineCount == 0:
		return domain.OrderStatusDraft
	case fully == lineCount:
		return domain.OrderStatusFullyAllocated
	case fully > 0 || partial > 0:
		return domain.OrderStatusPartiallyAllocated
	default:
		return domain.OrderStatusPendingAllocation
	}
}

func lineValue(line domain.OrderLine) decimal.Decimal {
	return line.UnitPrice.Mul(decimal.NewFromInt(int64(line.AllocatedQty)))
}

func checkQuantities(line domain.OrderLine) error {
	switch {
	case line.RequestedQty < 0:
		return apperrors.NewInvalidQuantityError(line.ProductCode, "requestedQty", line.RequestedQty, 0)
	case line.AvailableQty < 0:
		return apperrors.NewInvalidQuantityError(line.ProductCode, "availableQty", line.AvailableQty, 0)
	case line.AllocatedQty < 0:
		return apperrors.NewInvalidQuantityError(line.ProductCode, "allocatedQty", line.AllocatedQty, 0)
	case line.AllocatedQty > line.AvailableQty:
		return apperrors.NewInvalidQuantityError(line.ProductCode, "allocatedQty", line.AllocatedQty, line.AvailableQty)
	}
	return nil
}
