package domain

import "time"

// StockLevel is the warehouse position of a product code.
type StockLevel struct {
	ProductCode string
	OnHand      *int
	Reserved    *int
	UpdatedAt   time.Time
}

func (s StockLevel) AvailableStock() int {
	if s.OnHand == nil {
		return 0
	}
	reserved := 0
	if s.Reserved != nil {
		reserved = *s.Reserved
	}
	available := *s.OnHand - reserved
	if available < 0 {
		return 0
	}
	return available
}
