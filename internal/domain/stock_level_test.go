package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int {
	return &i
}

func TestStockLevel_AvailableStock(t *testing.T) {
	tests := []struct {
		name     string
		level    StockLevel
		expected int
	}{
		{name: "on hand minus reserved", level: StockLevel{OnHand: intPtr(10), Reserved: intPtr(3)}, expected: 7},
		{name: "nil reserved counts as zero", level: StockLevel{OnHand: intPtr(10)}, expected: 10},
		{name: "nil on hand", level: StockLevel{Reserved: intPtr(3)}, expected: 0},
		{name: "over reserved floors at zero", level: StockLevel{OnHand: intPtr(2), Reserved: intPtr(5)}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.AvailableStock())
		})
	}
}
