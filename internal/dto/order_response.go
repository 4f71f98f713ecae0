package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderResponse struct {
	TraceID     string          `json:"traceId,omitempty"`
	OrderID     string          `json:"orderId"`
	Status      string          `json:"status"`
	StatusLabel string          `json:"statusLabel"`
	Lines       []LineResponse  `json:"lines"`
	Summary     SummaryResponse `json:"summary"`
	CreatedAt   *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
}

type LineResponse struct {
	ProductCode    string          `json:"productCode"`
	RequestedQty   int             `json:"requestedQty"`
	AvailableQty   int             `json:"availableQty"`
	AllocatedQty   int             `json:"allocatedQty"`
	OutstandingQty int             `json:"outstandingQty"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Value          decimal.Decimal `json:"value"`
	Status         string          `json:"status"`
	StatusLabel    string          `json:"statusLabel"`
}

type SummaryResponse struct {
	LineCount          int             `json:"lineCount"`
	FullyAllocated     int             `json:"fullyAllocated"`
	PartiallyAllocated int             `json:"partiallyAllocated"`
	NotAllocated       int             `json:"notAllocated"`
	RequestedQty       int             `json:"requestedQty"`
	AllocatedQty       int             `json:"allocatedQty"`
	OutstandingQty     int             `json:"outstandingQty"`
	TotalValue         decimal.Decimal `json:"totalValue"`
}

type OrderListResponse struct {
	TraceID   string          `json:"traceId"`
	Orders    []OrderResponse `json:"orders"`
	Timestamp time.Time       `json:"timestamp"`
}

type ErrorResponse struct {
	TraceID   string        `json:"traceId"`
	Status    int           `json:"status"`
	Message   string        `json:"message"`
	Code      string        `json:"code"`
	OrderID   string        `json:"orderId,omitempty"`
	Details   *ErrorDetails `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

type ErrorDetails struct {
	ProductCode string `json:"productCode,omitempty"`
	Field       string `json:"field,omitempty"`
	Value       int    `json:"value"`
	Limit       int    `json:"limit"`
}
