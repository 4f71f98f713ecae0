package dto

import "github.com/shopspring/decimal"

type LineRequest struct {
	ProductCode  string          `json:"productCode"`
	RequestedQty int             `json:"requestedQty"`
	AvailableQty int             `json:"availableQty"`
	AllocatedQty int             `json:"allocatedQty"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
}

type CreateOrderRequest struct {
	ID    string        `json:"id"`
	Lines []LineRequest `json:"lines"`
}

type ReplaceLinesRequest struct {
	Lines []LineRequest `json:"lines"`
}

type AllocateLineRequest struct {
	AllocatedQty *int `json:"allocatedQty"`
}

type ClassifyRequest struct {
	Lines []LineRequest `json:"lines"`
}
