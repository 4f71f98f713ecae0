package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockdesk/internal/errors"
)

func TestNewOrderLine_Success(t *testing.T) {
	line, err := NewOrderLine("SKU-1", 10, 8, 8, decimal.NewFromFloat(12.5))
	require.NoError(t, err)

	assert.Equal(t, "SKU-1", line.ProductCode)
	assert.Equal(t, 10, line.RequestedQty)
	assert.Equal(t, 8, line.AvailableQty)
	assert.Equal(t, 8, line.AllocatedQty)
	assert.True(t, line.UnitPrice.Equal(decimal.NewFromFloat(12.5)))
}

func TestNewOrderLine_AllocationAboveAvailableIsAccepted(t *testing.T) {
	line, err := NewOrderLine("SKU-1", 10, 5, 7, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, 7, line.AllocatedQty)
}

func TestNewOrderLine_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		requested int
		available int
		allocated int
		price     decimal.Decimal
		field     string
		quantity  bool
	}{
		{name: "missing product code", code: "", requested: 1, field: "productCode"},
		{name: "negative requested", code: "A", requested: -1, field: "requestedQty", quantity: true},
		{name: "negative available", code: "A", available: -2, field: "availableQty", quantity: true},
		{name: "negative allocated", code: "A", allocated: -3, field: "allocatedQty", quantity: true},
		{name: "negative unit price", code: "A", price: decimal.NewFromInt(-1), field: "unitPrice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrderLine(tt.code, tt.requested, tt.available, tt.allocated, tt.price)
			require.Error(t, err)

			if tt.quantity {
				qe, ok := apperrors.IsInvalidQuantityError(err)
				require.True(t, ok)
				assert.Equal(t, tt.field, qe.Field)
				return
			}

			ve, ok := apperrors.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tt.field, ve.Details[0].Field)
		})
	}
}

func TestOrderLine_OutstandingQty(t *testing.T) {
	assert.Equal(t, 6, OrderLine{RequestedQty: 10, AllocatedQty: 4}.OutstandingQty())
	assert.Equal(t, 0, OrderLine{RequestedQty: 10, AllocatedQty: 10}.OutstandingQty())
	assert.Equal(t, 0, OrderLine{RequestedQty: 0, AllocatedQty: 0}.OutstandingQty())
}

func TestLineStatus_Label(t *testing.T) {
	assert.Equal(t, "Not Allocated", LineStatusNotAllocated.Label())
	assert.Equal(t, "Partially Allocated", LineStatusPartiallyAllocated.Label())
	assert.Equal(t, "Fully Allocated", LineStatusFullyAllocated.Label())
}
