package dto

import (
	"stockdesk/internal/allocation"
	"stockdesk/internal/domain"
)

// OrderResult is an order together with its freshly derived allocation
// state.
type OrderResult struct {
	Order      *domain.Order
	Evaluation *allocation.Evaluation
}
