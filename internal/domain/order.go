package domain

import (
	"fmt"
	"time"

	apperrors "stockdesk/internal/errors"
)

type OrderStatus string

const (
	OrderStatusDraft              OrderStatus = "DRAFT"
	OrderStatusPendingAllocation  OrderStatus = "PENDING_ALLOCATION"
	OrderStatusPartiallyAllocated OrderStatus = "PARTIALLY_ALLOCATED"
	OrderStatusFullyAllocated     OrderStatus = "FULLY_ALLOCATED"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusDraft:              "Draft",
	OrderStatusPendingAllocation:  "Pending Allocation",
	OrderStatusPartiallyAllocated: "Partially Allocated",
	OrderStatusFullyAllocated:     "Fully Allocated",
}

// Label returns the text the back-office screens show for the status.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Order holds quantities only. Its status is derived by the allocation
// engine on every read and is never persisted.
type Order struct {
	ID        string
	Lines     []OrderLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewOrder validates the order id and every line, and rejects duplicate
// product codes. Line order is kept as given.
func NewOrder(id string, lines []OrderLine) (*Order, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("invalid order", apperrors.ValidationDetail{
			Field:   "id",
			Message: "id is required",
		})
	}

	if err := ValidateLines(lines); err != nil {
		return nil, err
	}

	copied := make([]OrderLine, len(lines))
	copy(copied, lines)

	return &Order{ID: id, Lines: copied}, nil
}

// ValidateLines checks each line and the uniqueness of product codes.
func ValidateLines(lines []OrderLine) error {
	seen := make(map[string]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, dup := seen[line.ProductCode]; dup {
			return apperrors.NewConflictError(fmt.Sprintf("product code %s appears more than once", line.ProductCode))
		}
		seen[line.ProductCode] = struct{}{}
	}
	return nil
}

// LineIndex returns the position of the line with the given product code.
func (o *Order) LineIndex(productCode string) (int, bool) {
	for i, line := range o.Lines {
		if line.ProductCode == productCode {
			return i, true
		}
	}
	return -1, false
}

func (o *Order) Clone() *Order {
	clone := *o
	clone.Lines = make([]OrderLine, len(o.Lines))
	copy(clone.Lines, o.Lines)
	return &clone
}
