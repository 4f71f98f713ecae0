package domain

import (
	"github.com/shopspring/decimal"

	apperrors "stockdesk/internal/errors"
)

type LineStatus string

const (
	LineStatusNotAllocated       LineStatus = "NOT_ALLOCATED"
	LineStatusPartiallyAllocated LineStatus = "PARTIALLY_ALLOCATED"
	LineStatusFullyAllocated     LineStatus = "FULLY_ALLOCATED"
)

var lineStatusLabels = map[LineStatus]string{
	LineStatusNotAllocated:       "Not Allocated",
	LineStatusPartiallyAllocated: "Partially Allocated",
	LineStatusFullyAllocated:     "Fully Allocated",
}

func (s LineStatus) Label() string {
	if label, ok := lineStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

type OrderLine struct {
	ProductCode  string
	RequestedQty int
	AvailableQty int
	AllocatedQty int
	UnitPrice    decimal.Decimal
}

// NewOrderLine builds a validated line. A zero unit price is allowed.
// Allocation above availability is left to the allocation engine so that
// callers can choose between rejecting and clamping the edit.
func NewOrderLine(productCode string, requested, available, allocated int, unitPrice decimal.Decimal) (OrderLine, error) {
	line := OrderLine{
		ProductCode:  productCode,
		RequestedQty: requested,
		AvailableQty: available,
		AllocatedQty: allocated,
		UnitPrice:    unitPrice,
	}
	if err := line.Validate(); err != nil {
		return OrderLine{}, err
	}
	return line, nil
}

func (l OrderLine) Validate() error {
	if l.ProductCode == "" {
		return apperrors.NewValidationError("invalid order line", apperrors.ValidationDetail{
			Field:   "productCode",
			Message: "productCode is required",
		})
	}

	quantities := []struct {
		field string
		value int
	}{
		{"requestedQty", l.RequestedQty},
		{"availableQty", l.AvailableQty},
		{"allocatedQty", l.AllocatedQty},
	}
	for _, q := range quantities {
		if q.value < 0 {
			return apperrors.NewInvalidQuantityError(l.ProductCode, q.field, q.value, 0)
		}
	}

	if l.UnitPrice.IsNegative() {
		return apperrors.NewValidationError("invalid order line", apperrors.ValidationDetail{
			Field:   "unitPrice",
			Message: "unitPrice must be non-negative",
		})
	}

	return nil
}

// OutstandingQty is the requested quantity not yet covered by allocation.
func (l OrderLine) OutstandingQty() int {
	if l.AllocatedQty >= l.RequestedQty {
		return 0
	}
	return l.RequestedQty - l.AllocatedQty
}
